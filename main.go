package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"storefront/controllers"
	"storefront/database"
	"storefront/kafka"
	"storefront/models"
	"storefront/providers"
	"storefront/repository"
	"storefront/routes"
	"storefront/sender"
	"storefront/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Config load failed", zap.Error(err))
	}

	// --- Database ---
	if err := database.Connect(cfg.Postgres); err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	defer database.Close()
	if err := database.DB.AutoMigrate(
		&models.MenuItem{},
		&models.CustomizationGroup{},
		&models.CustomizationOption{},
		&models.DeliveryZone{},
		&models.DiscountCode{},
		&models.DiscountUsage{},
		&models.Order{},
		&models.OrderLine{},
		&models.OrderStatusEvent{},
		&models.PaymentMethod{},
		&models.StockLedgerEntry{},
		&models.LoyaltyAccount{},
		&models.PointsTransaction{},
		&models.LoyaltyReward{},
		&models.Invoice{},
		&models.InvoiceLine{},
	); err != nil {
		logger.Fatal("DB migration failed", zap.Error(err))
	}

	// --- Redis (cart store) ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	redisClient, err := repository.NewRedisClient(ctx, cfg.RedisURL)
	cancel()
	if err != nil {
		logger.Fatal("Redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	// --- Kafka ---
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	// --- Collaborators ---
	gateway := providers.NewStripeGateway(cfg.StripeAPIKey)
	geocoder := providers.NewHTTPGeocoder(cfg.GeocoderURL, cfg.GeocoderAPIKey)
	renderer := providers.NewHTTPDocumentRenderer(cfg.RendererURL)

	emailSender, err := sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if err != nil {
		logger.Fatal("SMTP sender init failed", zap.Error(err))
	}
	smsSender, err := sender.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	if err != nil {
		logger.Fatal("Twilio sender init failed", zap.Error(err))
	}

	// --- Repositories ---
	menuRepo := repository.NewGormMenuRepository(database.DB)
	zoneRepo := repository.NewGormZoneRepository(database.DB)
	discountRepo := repository.NewGormDiscountRepository(database.DB)
	checkoutRepo := repository.NewGormCheckoutRepository(database.DB)
	orderRepo := repository.NewGormOrderRepository(database.DB)
	loyaltyRepo := repository.NewGormLoyaltyRepository(database.DB)
	methodRepo := repository.NewGormPaymentMethodRepository(database.DB)
	cartStore := repository.NewRedisCartStore(redisClient, cfg.CartTTL)

	// --- Services ---
	pricingSvc := services.NewPricingService(menuRepo, logger)
	zoneSvc := services.NewZoneService(zoneRepo, logger)
	discountSvc := services.NewDiscountService(discountRepo, logger)
	checkoutSvc := services.NewCheckoutService(
		pricingSvc, zoneSvc, discountSvc,
		checkoutRepo, cartStore, methodRepo,
		geocoder, gateway, renderer,
		producer, emailSender, smsSender,
		services.CheckoutConfig{
			TaxRate:       cfg.TaxRate,
			PointsRate:    cfg.PointsRate,
			Currency:      cfg.Currency,
			MinOrderValue: cfg.MinOrderValue,
		},
		logger,
	)
	cartSvc := services.NewCartService(cartStore, menuRepo, logger)
	orderSvc := services.NewOrderService(orderRepo, logger)
	statusSvc := services.NewStatusService(orderRepo, gateway, logger)
	loyaltySvc := services.NewLoyaltyService(loyaltyRepo, services.LoyaltyConfig{
		RedeemRate:      cfg.RedeemRate,
		MinRedeemPoints: cfg.MinRedeem,
		RewardValidity:  90 * 24 * time.Hour,
	}, logger)

	// --- HTTP ---
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-ID", "X-User-ID", "X-User-Role"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.Register(router, routes.Controllers{
		Checkout: controllers.NewCheckoutController(checkoutSvc, logger),
		Cart:     controllers.NewCartController(cartSvc, logger),
		Orders:   controllers.NewOrderController(orderSvc, statusSvc, logger),
		Loyalty:  controllers.NewLoyaltyController(loyaltySvc, logger),
	}, cfg.JWTSecret)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// requestLogger logs one structured line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
