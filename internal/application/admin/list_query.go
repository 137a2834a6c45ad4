// Package admin implements the services behind the back-office list
// screens: paged, searchable, filterable views over invoices, balances,
// and products, with cached row counts for unfiltered lists.
package admin

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/storeops/backoffice/internal/domain/shared"
	"github.com/storeops/backoffice/internal/infrastructure/cache"
)

// Config holds paging limits and count cache policy for list services.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
	CountCacheTTL   time.Duration
}

// DefaultConfig returns the limits used when none are configured.
func DefaultConfig() Config {
	return Config{
		DefaultPageSize: 50,
		MaxPageSize:     200,
		CountCacheTTL:   5 * time.Minute,
	}
}

// ListQuery carries the client's paging, sorting, search, and filter
// parameters for one list request.
type ListQuery struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// toFilter normalizes a query into a repository filter, clamping the page
// size to the configured bounds.
func (cfg Config) toFilter(q ListQuery) shared.Filter {
	filter := shared.DefaultFilter()

	if q.Page > 0 {
		filter.Page = q.Page
	}
	filter.PageSize = cfg.DefaultPageSize
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	if filter.PageSize > cfg.MaxPageSize {
		filter.PageSize = cfg.MaxPageSize
	}

	if q.OrderBy != "" {
		filter.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		filter.OrderDir = q.OrderDir
	}
	filter.Search = q.Search
	if len(q.Filters) > 0 {
		filter.Filters = q.Filters
	}

	return filter
}

// countFunc counts rows matching a filter.
type countFunc func(ctx context.Context, filter shared.Filter) (int64, error)

// cachedCount returns the row count for a list, serving unfiltered counts
// from the cache. Filtered and searched counts are always computed, they
// are cheap enough and too varied to cache.
func cachedCount(
	ctx context.Context,
	counts cache.CountCache,
	key string,
	ttl time.Duration,
	filter shared.Filter,
	count countFunc,
	logger *zap.Logger,
) (int64, error) {
	cacheable := filter.Search == "" && len(filter.Filters) == 0

	if cacheable {
		if cached, found, err := counts.Get(ctx, key); err != nil {
			// A broken cache must not take the list page down.
			logger.Warn("Count cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			return cached, nil
		}
	}

	total, err := count(ctx, filter)
	if err != nil {
		return 0, err
	}

	if cacheable {
		if err := counts.Set(ctx, key, total, ttl); err != nil {
			logger.Warn("Count cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return total, nil
}
