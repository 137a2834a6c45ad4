package maintenance

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storeops/backoffice/internal/domain/account"
	"github.com/storeops/backoffice/internal/domain/catalog"
	"github.com/storeops/backoffice/internal/domain/payment"
	"github.com/storeops/backoffice/internal/domain/shared"
)

const (
	orderIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	addressAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	txidAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// GeneratorOptions controls one invoice seeding run.
type GeneratorOptions struct {
	Count     int
	StartDate time.Time
	EndDate   time.Time
	Status    *payment.InvoiceStatus // nil picks a random status per invoice
}

// GeneratorSummary reports how many invoices were created.
type GeneratorSummary struct {
	Created int
	Failed  int
}

// InvoiceGeneratorService seeds random invoices across a date range, for
// demo and load-testing databases.
type InvoiceGeneratorService struct {
	products  catalog.ProductRepository
	customers account.CustomerRepository
	invoices  payment.InvoiceRepository
	logger    *zap.Logger
	rng       *rand.Rand
}

// NewInvoiceGeneratorService creates a new InvoiceGeneratorService
func NewInvoiceGeneratorService(
	products catalog.ProductRepository,
	customers account.CustomerRepository,
	invoices payment.InvoiceRepository,
	logger *zap.Logger,
) *InvoiceGeneratorService {
	return &InvoiceGeneratorService{
		products:  products,
		customers: customers,
		invoices:  invoices,
		logger:    logger.Named("invoice-generator"),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run generates opts.Count invoices. Per-invoice failures are logged and
// counted, never fatal.
func (s *InvoiceGeneratorService) Run(ctx context.Context, opts GeneratorOptions) (GeneratorSummary, error) {
	var summary GeneratorSummary

	if opts.Count <= 0 {
		return summary, shared.NewDomainError("INVALID_INPUT", "Count must be a positive integer")
	}
	if opts.StartDate.After(opts.EndDate) {
		return summary, shared.NewDomainError("INVALID_INPUT", "Start date cannot be after end date")
	}
	if opts.Status != nil && !opts.Status.IsValid() {
		return summary, shared.NewDomainError("INVALID_INPUT", "Unknown invoice status")
	}

	products, err := s.products.FindActive(ctx)
	if err != nil {
		return summary, err
	}
	if len(products) == 0 {
		return summary, shared.NewDomainError("INVALID_STATE", "No active products found")
	}

	customers, err := s.customers.FindActive(ctx)
	if err != nil {
		return summary, err
	}
	if len(customers) == 0 {
		return summary, shared.NewDomainError("INVALID_STATE", "No active customers found")
	}

	for i := 0; i < opts.Count; i++ {
		invoice, err := s.buildInvoice(products, customers, opts)
		if err == nil {
			err = s.invoices.Create(ctx, invoice)
		}
		if err != nil {
			summary.Failed++
			s.logger.Error("Failed to create invoice",
				zap.Int("index", i+1),
				zap.Error(err),
			)
			continue
		}

		summary.Created++
		if summary.Created%100 == 0 {
			s.logger.Info("Generated invoices", zap.Int("created", summary.Created))
		}
	}

	s.logger.Info("Invoice generation finished",
		zap.Int("created", summary.Created),
		zap.Int("failed", summary.Failed),
		zap.Time("start", opts.StartDate),
		zap.Time("end", opts.EndDate),
	)

	return summary, nil
}

func (s *InvoiceGeneratorService) buildInvoice(
	products []catalog.Product,
	customers []account.Customer,
	opts GeneratorOptions,
) (*payment.Invoice, error) {
	product := products[s.rng.Intn(len(products))]
	customer := customers[s.rng.Intn(len(customers))]

	invoice, err := payment.NewInvoice(s.orderID(), product.ID, customer.ID)
	if err != nil {
		return nil, err
	}

	status := payment.ValidInvoiceStatuses[s.rng.Intn(len(payment.ValidInvoiceStatuses))]
	if opts.Status != nil {
		status = *opts.Status
	}
	if err := invoice.SetStatus(status); err != nil {
		return nil, err
	}

	invoice.CreatedAt = s.randomDate(opts.StartDate, opts.EndDate)
	invoice.UpdatedAt = invoice.CreatedAt

	btc := decimal.NewFromFloat(0.001 + s.rng.Float64()*0.999).Round(6)
	invoice.BTCValue = &btc
	received := decimal.NewFromFloat(s.rng.Float64() * 0.5).Round(6)
	invoice.Received = &received

	if s.rng.Intn(2) == 0 {
		address := s.randomString(addressAlphabet, 26+s.rng.Intn(10))
		invoice.Address = &address
	}
	if s.rng.Intn(2) == 0 {
		txid := s.randomString(txidAlphabet, 64)
		invoice.TxID = &txid
	}
	if s.rng.Intn(2) == 0 {
		rbf := s.rng.Intn(3)
		invoice.RBF = &rbf
	}
	invoice.Sold = s.rng.Intn(2) == 0
	invoice.Decrypted = s.rng.Intn(2) == 0

	return invoice, nil
}

// randomDate picks a day in [start, end] at midnight, matching the
// granularity of manually backfilled data.
func (s *InvoiceGeneratorService) randomDate(start, end time.Time) time.Time {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	days := int(endDay.Sub(startDay).Hours()/24) + 1
	return startDay.AddDate(0, 0, s.rng.Intn(days))
}

func (s *InvoiceGeneratorService) orderID() string {
	return "INV-" + s.randomString(orderIDAlphabet, 12)
}

func (s *InvoiceGeneratorService) randomString(alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[s.rng.Intn(len(alphabet))]
	}
	return string(b)
}
