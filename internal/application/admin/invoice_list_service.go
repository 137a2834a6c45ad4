package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storeops/backoffice/internal/domain/payment"
	"github.com/storeops/backoffice/internal/domain/shared"
	"github.com/storeops/backoffice/internal/infrastructure/cache"
)

const invoiceCountKey = "invoices"

// InvoiceRow is one line of the invoice list screen.
type InvoiceRow struct {
	ID          uuid.UUID             `json:"id"`
	OrderID     string                `json:"order_id"`
	ProductName string                `json:"product_name"`
	ProductCode string                `json:"product_code"`
	CreatedByID uuid.UUID             `json:"created_by_id"`
	Status      payment.InvoiceStatus `json:"status"`
	Address     *string               `json:"address"`
	BTCValue    *decimal.Decimal      `json:"btc_value"`
	Received    *decimal.Decimal      `json:"received"`
	TxID        *string               `json:"txid"`
	RBF         *int                  `json:"rbf"`
	Sold        bool                  `json:"sold"`
	Decrypted   bool                  `json:"decrypted"`
	CreatedAt   time.Time             `json:"created_at"`
}

// InvoiceListService serves the invoice list and detail screens.
type InvoiceListService struct {
	invoices payment.InvoiceRepository
	counts   cache.CountCache
	cfg      Config
	logger   *zap.Logger
}

func NewInvoiceListService(
	invoices payment.InvoiceRepository,
	counts cache.CountCache,
	cfg Config,
	logger *zap.Logger,
) *InvoiceListService {
	return &InvoiceListService{
		invoices: invoices,
		counts:   counts,
		cfg:      cfg,
		logger:   logger.Named("admin.invoices"),
	}
}

// List returns one page of invoices matching the query.
func (s *InvoiceListService) List(ctx context.Context, q ListQuery) (shared.Paginated[InvoiceRow], error) {
	filter := s.cfg.toFilter(q)

	invoices, err := s.invoices.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[InvoiceRow]{}, err
	}

	total, err := cachedCount(ctx, s.counts, invoiceCountKey, s.cfg.CountCacheTTL, filter, s.invoices.Count, s.logger)
	if err != nil {
		return shared.Paginated[InvoiceRow]{}, err
	}

	rows := make([]InvoiceRow, 0, len(invoices))
	for i := range invoices {
		rows = append(rows, toInvoiceRow(&invoices[i]))
	}
	return shared.NewPaginated(rows, total, filter.Page, filter.PageSize), nil
}

// Get returns a single invoice row by id.
func (s *InvoiceListService) Get(ctx context.Context, id uuid.UUID) (InvoiceRow, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return InvoiceRow{}, err
	}
	return toInvoiceRow(invoice), nil
}

// SetSold toggles the sold flag on one invoice, the list screen's inline
// edit, and returns the updated row.
func (s *InvoiceListService) SetSold(ctx context.Context, id uuid.UUID, sold bool) (InvoiceRow, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return InvoiceRow{}, err
	}

	invoice.MarkSold(sold)
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return InvoiceRow{}, err
	}

	s.logger.Info("Invoice sold flag updated",
		zap.String("invoice_id", id.String()),
		zap.Bool("sold", sold),
	)
	return toInvoiceRow(invoice), nil
}

func toInvoiceRow(inv *payment.Invoice) InvoiceRow {
	row := InvoiceRow{
		ID:          inv.ID,
		OrderID:     inv.OrderID,
		CreatedByID: inv.CreatedByID,
		Status:      inv.Status,
		Address:     inv.Address,
		BTCValue:    inv.BTCValue,
		Received:    inv.Received,
		TxID:        inv.TxID,
		RBF:         inv.RBF,
		Sold:        inv.Sold,
		Decrypted:   inv.Decrypted,
		CreatedAt:   inv.CreatedAt,
	}
	if inv.Product != nil {
		row.ProductName = inv.Product.Name
		row.ProductCode = inv.Product.Code
	}
	return row
}
