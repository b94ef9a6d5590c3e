package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	rentalapp "github.com/alquileres/backend/internal/application/rental"
	"github.com/redis/go-redis/v9"
)

const defaultListingKey = "rental:properties:listing"

// RedisListingCache caches the property listing in Redis as a single
// JSON-encoded collection entry. Suitable for multi-instance deployments
// where every instance must observe invalidations.
type RedisListingCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisListingCache creates a new Redis-backed listing cache
func NewRedisListingCache(cfg RedisConfig, ttl time.Duration) (*RedisListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisListingCache{
		client: client,
		key:    defaultListingKey,
		ttl:    ttl,
	}, nil
}

// NewRedisListingCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisListingCacheWithClient(client *redis.Client, key string, ttl time.Duration) *RedisListingCache {
	if key == "" {
		key = defaultListingKey
	}
	return &RedisListingCache{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Get returns the cached listing and whether a live entry was present
func (c *RedisListingCache) Get(ctx context.Context) ([]rentalapp.PropertyListItem, bool, error) {
	payload, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read listing cache: %w", err)
	}

	var items []rentalapp.PropertyListItem
	if err := json.Unmarshal(payload, &items); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it
		return nil, false, nil
	}
	return items, true, nil
}

// Set stores the listing, replacing any previous entry
func (c *RedisListingCache) Set(ctx context.Context, items []rentalapp.PropertyListItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode listing cache entry: %w", err)
	}

	if err := c.client.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write listing cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached listing
func (c *RedisListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate listing cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisListingCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisListingCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisListingCache implements ListingCache
var _ rentalapp.ListingCache = (*RedisListingCache)(nil)
