package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storeops/backoffice/internal/domain/shared"
)

// ExpiryUpdate is a staged expiry rewrite for one product.
type ExpiryUpdate struct {
	ID  uuid.UUID
	Exp string
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	FindActive(ctx context.Context) ([]Product, error)
	// FindAllWithCategory returns every product with its category loaded,
	// ordered by code. Used by the CSV export.
	FindAllWithCategory(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, product *Product) error

	// Expiry maintenance. Candidates are products with a non-empty exp,
	// ordered by id so pagination is stable across the run.
	CountExpiryCandidates(ctx context.Context) (int64, error)
	FindExpiryCandidates(ctx context.Context, offset, limit int) ([]Product, error)
	// UpdateExpiryBatch writes the staged expiry values in one transaction.
	UpdateExpiryBatch(ctx context.Context, updates []ExpiryUpdate) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, category *Category) error
}
