package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeops/backoffice/internal/domain/shared"
)

// ReceivedUpdate is a staged received-amount rewrite for one invoice.
type ReceivedUpdate struct {
	ID       uuid.UUID
	Received *decimal.Decimal
}

// SyncStats summarizes how closely invoice received amounts track product
// prices; reported after a price sync run.
type SyncStats struct {
	TotalInvoices int64
	WithReceived  int64
	InSync        int64
}

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	// FindAll lists invoices with their products loaded, applying
	// search (order id, customer username, product name) and the
	// sold/status/decrypted filters.
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindPageWithProduct pages all invoices ordered by id with products
	// loaded, for batch maintenance.
	FindPageWithProduct(ctx context.Context, offset, limit int) ([]Invoice, error)
	CountAll(ctx context.Context) (int64, error)
	Save(ctx context.Context, invoice *Invoice) error
	Create(ctx context.Context, invoice *Invoice) error
	// UpdateReceivedBatch writes the staged received amounts in one
	// transaction.
	UpdateReceivedBatch(ctx context.Context, updates []ReceivedUpdate) error
	Stats(ctx context.Context) (SyncStats, error)
}

// BalanceRepository defines persistence operations for balances
type BalanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Balance, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Balance, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, balance *Balance) error
	// ClearAllAddresses resets every balance's deposit address in a
	// single statement and returns the affected row count.
	ClearAllAddresses(ctx context.Context) (int64, error)
}
