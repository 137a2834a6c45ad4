package maintenance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storeops/backoffice/internal/domain/catalog"
	"github.com/storeops/backoffice/internal/domain/expiry"
	"github.com/storeops/backoffice/internal/domain/shared"
)

// ExpiryUpdateOptions controls one expiry maintenance run.
type ExpiryUpdateOptions struct {
	Years          int  // years to add to each expiry value
	BatchSize      int  // rows fetched and written per batch
	DryRun         bool // report what would change without writing
	SampleLimit    int  // sample updates to collect during a dry run
	UnmatchedLimit int  // unmatched examples to collect (0 = none)
}

// DefaultExpiryUpdateOptions returns the options used when flags are not
// given.
func DefaultExpiryUpdateOptions() ExpiryUpdateOptions {
	return ExpiryUpdateOptions{
		Years:       3,
		BatchSize:   1000,
		SampleLimit: 5,
	}
}

// SampleUpdate records one would-be rewrite for dry-run reporting.
type SampleUpdate struct {
	ID     uuid.UUID
	OldExp string
	NewExp string
}

// UnmatchedSample records one expiry value no rule recognized.
type UnmatchedSample struct {
	ID  uuid.UUID
	Exp string
}

// ExpiryUpdateSummary reports the outcome of a run.
type ExpiryUpdateSummary struct {
	Processed int
	Updated   int
	Unchanged int
	Skipped   int
	Samples   []SampleUpdate
	Unmatched []UnmatchedSample
}

// ExpiryPreview reports how one distinct expiry value would be handled.
type ExpiryPreview struct {
	Exp     string
	Matched bool
	Result  string
}

// ExpiryUpdateService adds a fixed number of years to every recognizable
// product expiry value using bulk updates. Unrecognized values are skipped;
// one bad row never aborts the run.
type ExpiryUpdateService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewExpiryUpdateService creates a new ExpiryUpdateService
func NewExpiryUpdateService(products catalog.ProductRepository, logger *zap.Logger) *ExpiryUpdateService {
	return &ExpiryUpdateService{
		products: products,
		logger:   logger.Named("expiry-update"),
	}
}

// Run processes every product with a non-empty expiry value.
func (s *ExpiryUpdateService) Run(ctx context.Context, opts ExpiryUpdateOptions) (ExpiryUpdateSummary, error) {
	var summary ExpiryUpdateSummary

	if opts.Years <= 0 {
		return summary, shared.NewDomainError("INVALID_INPUT", "Years must be a positive integer")
	}
	if opts.BatchSize <= 0 {
		return summary, shared.NewDomainError("INVALID_INPUT", "Batch size must be a positive integer")
	}
	if opts.SampleLimit < 0 {
		return summary, shared.NewDomainError("INVALID_INPUT", "Sample limit cannot be negative")
	}

	total, err := s.products.CountExpiryCandidates(ctx)
	if err != nil {
		return summary, err
	}
	if total == 0 {
		s.logger.Info("No products with expiry values found")
		return summary, nil
	}

	s.logger.Info("Processing products with expiry values",
		zap.Int64("candidates", total),
		zap.Int("years", opts.Years),
		zap.Bool("dry_run", opts.DryRun),
	)

	var pending []catalog.ExpiryUpdate

	for offset := 0; int64(offset) < total; offset += opts.BatchSize {
		page, err := s.products.FindExpiryCandidates(ctx, offset, opts.BatchSize)
		if err != nil {
			return summary, err
		}
		if len(page) == 0 {
			break
		}

		for i := range page {
			product := &page[i]
			summary.Processed++

			original := strings.TrimSpace(product.Exp)
			updated, ok := expiry.Normalize(original, opts.Years)
			if !ok {
				summary.Skipped++
				if opts.UnmatchedLimit > 0 && len(summary.Unmatched) < opts.UnmatchedLimit {
					summary.Unmatched = append(summary.Unmatched, UnmatchedSample{
						ID:  product.ID,
						Exp: original,
					})
				}
				continue
			}

			if updated == original {
				summary.Unchanged++
				continue
			}

			summary.Updated++
			if opts.DryRun {
				if len(summary.Samples) < opts.SampleLimit {
					summary.Samples = append(summary.Samples, SampleUpdate{
						ID:     product.ID,
						OldExp: original,
						NewExp: updated,
					})
				}
				continue
			}

			pending = append(pending, catalog.ExpiryUpdate{ID: product.ID, Exp: updated})
			if len(pending) >= opts.BatchSize {
				if err := s.products.UpdateExpiryBatch(ctx, pending); err != nil {
					return summary, err
				}
				pending = pending[:0]
			}
		}
	}

	if !opts.DryRun && len(pending) > 0 {
		if err := s.products.UpdateExpiryBatch(ctx, pending); err != nil {
			return summary, err
		}
	}

	s.logger.Info("Expiry update finished",
		zap.Int("processed", summary.Processed),
		zap.Int("updated", summary.Updated),
		zap.Int("unchanged", summary.Unchanged),
		zap.Int("skipped", summary.Skipped),
		zap.Bool("dry_run", opts.DryRun),
	)

	return summary, nil
}

// Preview classifies up to limit distinct expiry values without writing
// anything, for debugging format coverage against live data.
func (s *ExpiryUpdateService) Preview(ctx context.Context, years, limit int) ([]ExpiryPreview, error) {
	if limit <= 0 {
		limit = 20
	}

	page, err := s.products.FindExpiryCandidates(ctx, 0, limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(page))
	previews := make([]ExpiryPreview, 0, len(page))
	for i := range page {
		value := strings.TrimSpace(page[i].Exp)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true

		result, ok := expiry.Normalize(value, years)
		previews = append(previews, ExpiryPreview{
			Exp:     value,
			Matched: ok,
			Result:  result,
		})
	}

	return previews, nil
}
