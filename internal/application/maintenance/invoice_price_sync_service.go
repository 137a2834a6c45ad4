package maintenance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storeops/backoffice/internal/domain/payment"
	"github.com/storeops/backoffice/internal/domain/shared"
)

// PriceSyncOptions controls one invoice price sync run.
type PriceSyncOptions struct {
	BatchSize     int
	DryRun        bool
	SkipNilPrices bool // skip invoices whose product has no price
	SampleLimit   int  // sample updates to collect during a dry run
}

// DefaultPriceSyncOptions returns the options used when flags are not given.
func DefaultPriceSyncOptions() PriceSyncOptions {
	return PriceSyncOptions{
		BatchSize:   1000,
		SampleLimit: 5,
	}
}

// PriceSample records one would-be received rewrite for dry-run reporting.
type PriceSample struct {
	ID          uuid.UUID
	OldReceived *decimal.Decimal
	NewReceived *decimal.Decimal
}

// PriceSyncSummary reports the outcome of a run.
type PriceSyncSummary struct {
	Processed int
	Updated   int
	Skipped   int
	Samples   []PriceSample
	Stats     *payment.SyncStats // nil on dry runs
}

// InvoicePriceSyncService aligns every invoice's received amount with its
// product's current price using bulk updates.
type InvoicePriceSyncService struct {
	invoices payment.InvoiceRepository
	logger   *zap.Logger
}

// NewInvoicePriceSyncService creates a new InvoicePriceSyncService
func NewInvoicePriceSyncService(invoices payment.InvoiceRepository, logger *zap.Logger) *InvoicePriceSyncService {
	return &InvoicePriceSyncService{
		invoices: invoices,
		logger:   logger.Named("price-sync"),
	}
}

// Run pages through all invoices and stages an update wherever the received
// amount differs from the product price.
func (s *InvoicePriceSyncService) Run(ctx context.Context, opts PriceSyncOptions) (PriceSyncSummary, error) {
	var summary PriceSyncSummary

	if opts.BatchSize <= 0 {
		return summary, shared.NewDomainError("INVALID_INPUT", "Batch size must be a positive integer")
	}

	total, err := s.invoices.CountAll(ctx)
	if err != nil {
		return summary, err
	}
	if total == 0 {
		s.logger.Info("No invoices to update")
		return summary, nil
	}

	s.logger.Info("Syncing invoice received amounts",
		zap.Int64("invoices", total),
		zap.Bool("dry_run", opts.DryRun),
	)

	var pending []payment.ReceivedUpdate

	for offset := 0; int64(offset) < total; offset += opts.BatchSize {
		page, err := s.invoices.FindPageWithProduct(ctx, offset, opts.BatchSize)
		if err != nil {
			return summary, err
		}
		if len(page) == 0 {
			break
		}

		for i := range page {
			invoice := &page[i]
			summary.Processed++

			var price *decimal.Decimal
			if invoice.Product != nil {
				price = invoice.Product.Price
			}

			if price == nil && opts.SkipNilPrices {
				summary.Skipped++
				continue
			}

			if invoice.ReceivedMatches(price) {
				continue
			}

			summary.Updated++
			if opts.DryRun {
				if len(summary.Samples) < opts.SampleLimit {
					summary.Samples = append(summary.Samples, PriceSample{
						ID:          invoice.ID,
						OldReceived: invoice.Received,
						NewReceived: price,
					})
				}
				continue
			}

			pending = append(pending, payment.ReceivedUpdate{ID: invoice.ID, Received: price})
			if len(pending) >= opts.BatchSize {
				if err := s.invoices.UpdateReceivedBatch(ctx, pending); err != nil {
					return summary, err
				}
				pending = pending[:0]
			}
		}
	}

	if !opts.DryRun {
		if len(pending) > 0 {
			if err := s.invoices.UpdateReceivedBatch(ctx, pending); err != nil {
				return summary, err
			}
		}

		stats, err := s.invoices.Stats(ctx)
		if err != nil {
			return summary, err
		}
		summary.Stats = &stats
	}

	s.logger.Info("Invoice price sync finished",
		zap.Int("processed", summary.Processed),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Bool("dry_run", opts.DryRun),
	)

	return summary, nil
}
