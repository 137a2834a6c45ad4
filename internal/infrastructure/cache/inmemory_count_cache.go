package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryCountCache implements CountCache with a process-local map. This is
// suitable for single-instance deployments and tests.
type InMemoryCountCache struct {
	mu      sync.RWMutex
	entries map[string]countEntry
}

type countEntry struct {
	count     int64
	expiresAt time.Time
}

// NewInMemoryCountCache creates a new in-memory count cache
func NewInMemoryCountCache() *InMemoryCountCache {
	return &InMemoryCountCache{
		entries: make(map[string]countEntry),
	}
}

// Get returns the cached count for key
func (c *InMemoryCountCache) Get(_ context.Context, key string) (int64, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return 0, false, nil
	}
	return entry.count, true, nil
}

// Set stores a count under key with the given TTL
func (c *InMemoryCountCache) Set(_ context.Context, key string, count int64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = countEntry{
		count:     count,
		expiresAt: time.Now().Add(ttl),
	}

	// Opportunistic cleanup keeps the map from growing unbounded.
	if len(c.entries) > 1024 {
		now := time.Now()
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
	}
	return nil
}

// Invalidate removes a cached count
func (c *InMemoryCountCache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Ensure InMemoryCountCache implements CountCache
var _ CountCache = (*InMemoryCountCache)(nil)
