// ABOUTME: Redis cache implementation using the go-redis client
// ABOUTME: Optional backend for scheduled runs sharing a feed cache across invocations

package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"newsdigest/core/interfaces"
	"newsdigest/pkg/config"
)

// ErrCacheMiss is the error returned when a key is not found in Redis.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache implements the Cache interface using Redis.
type Cache struct {
	client *redis.Client
}

var _ interfaces.Cache = (*Cache)(nil)

// New creates a Redis cache and verifies connectivity.
func New(cfg config.RedisConfig) (*Cache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{client: client}, nil
}

// Get retrieves a value from Redis
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return val, nil
}

// Set stores a value in Redis with the given TTL
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// Redis SET with 0 TTL means no expiration
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key from Redis
func (c *Cache) Delete(ctx context.Context, key string) error {
	// Deleting a non-existent key is not an error for our use case
	return c.client.Del(ctx, key).Err()
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}
