package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCountCache implements CountCache using Redis. This is suitable for
// deployments where multiple admin instances share cached counts.
type RedisCountCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisCountCache creates a new Redis-backed count cache
func NewRedisCountCache(cfg RedisConfig) (*RedisCountCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCountCache{
		client:    client,
		keyPrefix: "admin:count:",
	}, nil
}

// NewRedisCountCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components
func NewRedisCountCacheWithClient(client *redis.Client, keyPrefix string) *RedisCountCache {
	if keyPrefix == "" {
		keyPrefix = "admin:count:"
	}
	return &RedisCountCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached count for key
func (c *RedisCountCache) Get(ctx context.Context, key string) (int64, bool, error) {
	value, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read cached count: %w", err)
	}

	count, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// A corrupt entry is treated as a miss so it gets rewritten.
		return 0, false, nil
	}
	return count, true, nil
}

// Set stores a count under key with the given TTL
func (c *RedisCountCache) Set(ctx context.Context, key string, count int64, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, strconv.FormatInt(count, 10), ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache count: %w", err)
	}
	return nil
}

// Invalidate removes a cached count
func (c *RedisCountCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached count: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisCountCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCountCache implements CountCache
var _ CountCache = (*RedisCountCache)(nil)
