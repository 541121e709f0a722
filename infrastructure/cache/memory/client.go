// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Default backend, keeps duplicate feed URLs from being fetched twice per run

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"newsdigest/core/interfaces"
)

// ErrCacheMiss is the error returned when a key is not found in the cache.
var ErrCacheMiss = errors.New("cache: key not found")

const cleanupInterval = 5 * time.Minute

// Cache implements the Cache interface using go-cache.
type Cache struct {
	cache *gocache.Cache
}

var _ interfaces.Cache = (*Cache)(nil)

// New creates an in-memory cache with the given default expiration.
func New(defaultExpiration time.Duration) *Cache {
	return &Cache{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

// Get retrieves a value from the cache
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	value, found := c.cache.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}

	data, ok := value.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}

	// Return a copy so callers cannot mutate the cached bytes
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Set stores a value in the cache with the given TTL
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	c.cache.Set(key, stored, ttl)
	return nil
}

// Delete removes a value from the cache
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}
