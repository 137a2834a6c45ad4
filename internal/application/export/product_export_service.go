// Package export renders back-office data sets to flat files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/storeops/backoffice/internal/domain/catalog"
)

// productExportHeader is the column layout of the product export. Category
// name and location come first so downstream sheets can pivot on them.
var productExportHeader = []string{
	"category_name",
	"category_location",
	"id",
	"code",
	"name",
	"description",
	"price",
	"exp",
	"active",
	"created_at",
	"updated_at",
}

// ProductExportService streams the full product catalog, with category
// details, as CSV.
type ProductExportService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewProductExportService creates a new ProductExportService
func NewProductExportService(products catalog.ProductRepository, logger *zap.Logger) *ProductExportService {
	return &ProductExportService{
		products: products,
		logger:   logger.Named("product-export"),
	}
}

// Export writes all products to w and returns the exported row count.
func (s *ProductExportService) Export(ctx context.Context, w io.Writer) (int, error) {
	products, err := s.products.FindAllWithCategory(ctx)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(productExportHeader); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	for i := range products {
		if err := writer.Write(exportRow(&products[i])); err != nil {
			return 0, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush export: %w", err)
	}

	s.logger.Info("Exported products", zap.Int("count", len(products)))
	return len(products), nil
}

func exportRow(p *catalog.Product) []string {
	categoryName := ""
	categoryLocation := ""
	if p.Category != nil {
		categoryName = p.Category.Name
		categoryLocation = p.Category.Location
	}

	price := ""
	if p.Price != nil {
		price = p.Price.String()
	}

	return []string{
		categoryName,
		categoryLocation,
		p.ID.String(),
		p.Code,
		p.Name,
		p.Description,
		price,
		p.Exp,
		strconv.FormatBool(p.Active),
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
