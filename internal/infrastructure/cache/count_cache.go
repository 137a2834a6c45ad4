// Package cache holds the stores backing the admin list count cache.
// Counting large tables on every list request is the slowest part of
// rendering a page, so counts are cached with a short TTL.
package cache

import (
	"context"
	"time"
)

// CountCache stores row counts for admin list pages keyed by a
// filter-derived cache key.
type CountCache interface {
	// Get returns the cached count for key, or found=false on a miss.
	Get(ctx context.Context, key string) (count int64, found bool, err error)

	// Set stores a count under key with the given TTL.
	Set(ctx context.Context, key string, count int64, ttl time.Duration) error

	// Invalidate removes a cached count, for callers that just changed
	// row counts in bulk.
	Invalidate(ctx context.Context, key string) error
}
