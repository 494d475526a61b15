package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"storefront/models"
	"time"

	"github.com/redis/go-redis/v9"
)

// CartStore is the external keyed blob store holding carts: one JSON
// record per session/user key, independent of the relational order
// schema. Writers follow single-writer-per-key discipline.
type CartStore interface {
	Get(ctx context.Context, key string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, key string) error
}

// RedisCartStore implements CartStore on Redis with a TTL per cart.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore creates a new RedisCartStore.
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func (s *RedisCartStore) cartKey(key string) string {
	return fmt.Sprintf("cart:%s", key)
}

// Get returns the cart for a key, or nil when none exists.
func (s *RedisCartStore) Get(ctx context.Context, key string) (*models.Cart, error) {
	data, err := s.client.Get(ctx, s.cartKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save stores the cart blob, refreshing its TTL.
func (s *RedisCartStore) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.cartKey(cart.Key), data, s.ttl).Err()
}

// Delete removes the cart blob (checkout clears the cart this way).
func (s *RedisCartStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.cartKey(key)).Err()
}

// NewRedisClient initializes and pings a Redis client.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
