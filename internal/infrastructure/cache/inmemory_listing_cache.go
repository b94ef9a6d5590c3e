// Package cache provides property-listing cache implementations.
package cache

import (
	"context"
	"sync"
	"time"

	rentalapp "github.com/alquileres/backend/internal/application/rental"
)

// InMemoryListingCache caches the property listing in process memory.
// Suitable for single-instance deployments and testing; state is not
// shared across instances.
type InMemoryListingCache struct {
	mu        sync.RWMutex
	items     []rentalapp.PropertyListItem
	populated bool
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// InMemoryListingCacheOption is a functional option for configuring the cache
type InMemoryListingCacheOption func(*InMemoryListingCache)

// WithClock overrides the time source, for testing expiry
func WithClock(now func() time.Time) InMemoryListingCacheOption {
	return func(c *InMemoryListingCache) {
		c.now = now
	}
}

// NewInMemoryListingCache creates a cache whose entries live for ttl.
// A non-positive ttl disables expiry; entries live until invalidated.
func NewInMemoryListingCache(ttl time.Duration, opts ...InMemoryListingCacheOption) *InMemoryListingCache {
	c := &InMemoryListingCache{
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached listing and whether a live entry was present
func (c *InMemoryListingCache) Get(ctx context.Context) ([]rentalapp.PropertyListItem, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.populated {
		return nil, false, nil
	}
	if c.ttl > 0 && c.now().After(c.expiresAt) {
		return nil, false, nil
	}

	items := make([]rentalapp.PropertyListItem, len(c.items))
	copy(items, c.items)
	return items, true, nil
}

// Set stores the listing, replacing any previous entry
func (c *InMemoryListingCache) Set(ctx context.Context, items []rentalapp.PropertyListItem) error {
	stored := make([]rentalapp.PropertyListItem, len(items))
	copy(stored, items)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = stored
	c.populated = true
	if c.ttl > 0 {
		c.expiresAt = c.now().Add(c.ttl)
	}
	return nil
}

// Invalidate drops the cached listing
func (c *InMemoryListingCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.populated = false
	return nil
}

// Ensure InMemoryListingCache implements ListingCache
var _ rentalapp.ListingCache = (*InMemoryListingCache)(nil)
