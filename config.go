package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront/database"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Port     string
	Postgres database.Config

	RedisURL string
	CartTTL  time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	StripeAPIKey string

	JWTSecret string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	GeocoderURL    string
	GeocoderAPIKey string
	RendererURL    string

	Currency      string
	TaxRate       float64
	PointsRate    float64
	RedeemRate    float64
	MinRedeem     int
	MinOrderValue float64
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Postgres: database.Config{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Name:     os.Getenv("POSTGRES_DB"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "Europe/Dublin"),
		},

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		KafkaTopic: getEnv("KAFKA_TOPIC", "storefront.orders"),

		StripeAPIKey: os.Getenv("STRIPE_API_KEY"),
		JWTSecret:    os.Getenv("JWT_SECRET"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),

		GeocoderURL:    os.Getenv("GEOCODER_URL"),
		GeocoderAPIKey: os.Getenv("GEOCODER_API_KEY"),
		RendererURL:    os.Getenv("RENDERER_URL"),

		Currency: getEnv("CURRENCY", "EUR"),
	}

	if cfg.Postgres.Host == "" || cfg.Postgres.User == "" || cfg.Postgres.Name == "" {
		return nil, fmt.Errorf("POSTGRES_HOST, POSTGRES_USER and POSTGRES_DB are required")
	}

	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}

	var err error
	if cfg.CartTTL, err = time.ParseDuration(getEnv("CART_TTL", "72h")); err != nil {
		return nil, fmt.Errorf("invalid CART_TTL: %w", err)
	}
	if cfg.TaxRate, err = parseFloat("TAX_RATE", "0.23"); err != nil {
		return nil, err
	}
	if cfg.PointsRate, err = parseFloat("LOYALTY_POINTS_RATE", "1"); err != nil {
		return nil, err
	}
	if cfg.RedeemRate, err = parseFloat("LOYALTY_REDEEM_RATE", "0.05"); err != nil {
		return nil, err
	}
	if cfg.MinOrderValue, err = parseFloat("MIN_ORDER_VALUE", "10"); err != nil {
		return nil, err
	}
	if cfg.MinRedeem, err = strconv.Atoi(getEnv("LOYALTY_MIN_REDEEM", "100")); err != nil {
		return nil, fmt.Errorf("invalid LOYALTY_MIN_REDEEM: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseFloat(key, fallback string) (float64, error) {
	v, err := strconv.ParseFloat(getEnv(key, fallback), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
