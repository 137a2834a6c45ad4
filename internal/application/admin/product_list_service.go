package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storeops/backoffice/internal/domain/catalog"
	"github.com/storeops/backoffice/internal/domain/shared"
	"github.com/storeops/backoffice/internal/infrastructure/cache"
)

const productCountKey = "products"

// ProductRow is one line of the product list screen.
type ProductRow struct {
	ID           uuid.UUID        `json:"id"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	Price        *decimal.Decimal `json:"price"`
	Exp          string           `json:"exp"`
	Active       bool             `json:"active"`
	CategoryName string           `json:"category_name"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ProductListService serves the product list and detail screens.
type ProductListService struct {
	products catalog.ProductRepository
	counts   cache.CountCache
	cfg      Config
	logger   *zap.Logger
}

func NewProductListService(
	products catalog.ProductRepository,
	counts cache.CountCache,
	cfg Config,
	logger *zap.Logger,
) *ProductListService {
	return &ProductListService{
		products: products,
		counts:   counts,
		cfg:      cfg,
		logger:   logger.Named("admin.products"),
	}
}

// List returns one page of products matching the query.
func (s *ProductListService) List(ctx context.Context, q ListQuery) (shared.Paginated[ProductRow], error) {
	filter := s.cfg.toFilter(q)

	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ProductRow]{}, err
	}

	total, err := cachedCount(ctx, s.counts, productCountKey, s.cfg.CountCacheTTL, filter, s.products.Count, s.logger)
	if err != nil {
		return shared.Paginated[ProductRow]{}, err
	}

	rows := make([]ProductRow, 0, len(products))
	for i := range products {
		rows = append(rows, toProductRow(&products[i]))
	}
	return shared.NewPaginated(rows, total, filter.Page, filter.PageSize), nil
}

// Get returns a single product row by id.
func (s *ProductListService) Get(ctx context.Context, id uuid.UUID) (ProductRow, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return ProductRow{}, err
	}
	return toProductRow(product), nil
}

func toProductRow(p *catalog.Product) ProductRow {
	row := ProductRow{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Price:     p.Price,
		Exp:       p.Exp,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
	if p.Category != nil {
		row.CategoryName = p.Category.Name
	}
	return row
}
