package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeops/backoffice/internal/domain/catalog"
	"github.com/storeops/backoffice/internal/domain/shared"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus int

const (
	InvoiceStatusExpired   InvoiceStatus = -1
	InvoiceStatusPending   InvoiceStatus = 0
	InvoiceStatusPaid      InvoiceStatus = 1
	InvoiceStatusConfirmed InvoiceStatus = 2
)

// ValidInvoiceStatuses lists every accepted status value.
var ValidInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusExpired,
	InvoiceStatusPending,
	InvoiceStatusPaid,
	InvoiceStatusConfirmed,
}

// IsValid reports whether s is one of the accepted status values
func (s InvoiceStatus) IsValid() bool {
	for _, v := range ValidInvoiceStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Invoice represents a crypto payment request for a product.
type Invoice struct {
	shared.BaseEntity
	OrderID     string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	ProductID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Product     *catalog.Product `gorm:"foreignKey:ProductID"`
	CreatedByID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status      InvoiceStatus    `gorm:"not null;default:0"`
	Address     *string          `gorm:"type:varchar(64)"` // payment address, nil until assigned
	BTCValue    *decimal.Decimal `gorm:"type:decimal(18,8)"`
	Received    *decimal.Decimal `gorm:"type:decimal(18,8)"`
	TxID        *string          `gorm:"type:varchar(64)"`
	RBF         *int             // replace-by-fee state reported by the watcher
	Sold        bool             `gorm:"not null;default:false;index"`
	Decrypted   bool             `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a pending invoice for a product
func NewInvoice(orderID string, productID, createdByID uuid.UUID) (*Invoice, error) {
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_ID", "Order ID cannot be empty")
	}
	return &Invoice{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		ProductID:   productID,
		CreatedByID: createdByID,
		Status:      InvoiceStatusPending,
	}, nil
}

// SetStatus transitions the invoice to the given status
func (i *Invoice) SetStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown invoice status")
	}
	i.Status = status
	i.Touch()
	return nil
}

// MarkSold flips the sold flag
func (i *Invoice) MarkSold(sold bool) {
	i.Sold = sold
	i.Touch()
}

// SetReceived records the amount received against the invoice
func (i *Invoice) SetReceived(amount decimal.Decimal) {
	i.Received = &amount
	i.Touch()
}

// ReceivedMatches reports whether the received amount equals the given
// price, treating two nils as equal.
func (i *Invoice) ReceivedMatches(price *decimal.Decimal) bool {
	if i.Received == nil || price == nil {
		return i.Received == nil && price == nil
	}
	return i.Received.Equal(*price)
}

// Age returns how long ago the invoice was created
func (i *Invoice) Age(now time.Time) time.Duration {
	return now.Sub(i.CreatedAt)
}
