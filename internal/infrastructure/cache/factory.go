package cache

import (
	"fmt"

	rentalapp "github.com/alquileres/backend/internal/application/rental"
	"github.com/alquileres/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ListingCacheFactory creates listing caches based on configuration
type ListingCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ListingCacheFactoryOption is a functional option for configuring the factory
type ListingCacheFactoryOption func(*ListingCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ListingCacheFactoryOption {
	return func(f *ListingCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) ListingCacheFactoryOption {
	return func(f *ListingCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewListingCacheFactory creates a new factory
func NewListingCacheFactory(cfg config.RedisConfig, opts ...ListingCacheFactoryOption) *ListingCacheFactory {
	f := &ListingCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed listing cache
func (f *ListingCacheFactory) CreateRedisCache() (rentalapp.ListingCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisListingCache(redisCfg, f.redisConfig.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis listing cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates an in-memory listing cache
func (f *ListingCacheFactory) CreateInMemoryCache() rentalapp.ListingCache {
	return NewInMemoryListingCache(f.redisConfig.CacheTTL)
}

// CreateCache creates a listing cache based on the configuration. When Redis
// is disabled it returns the in-memory cache directly; otherwise it tries
// Redis first and falls back to in-memory if allowed.
func (f *ListingCacheFactory) CreateCache() (rentalapp.ListingCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("using in-memory listing cache")
		return f.CreateInMemoryCache(), nil
	}

	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis listing cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for listing cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory listing cache. "+
		"Invalidations will not propagate across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
