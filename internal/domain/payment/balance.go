package payment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeops/backoffice/internal/domain/shared"
)

// Balance is a customer's store-credit account. Address is the currently
// assigned deposit address, nil when none is outstanding.
type Balance struct {
	shared.BaseEntity
	CreatedByID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Address     *string         `gorm:"type:varchar(64)"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,8);not null;default:0;column:balance"`
}

// TableName returns the table name for GORM
func (Balance) TableName() string {
	return "balances"
}

// NewBalance creates an empty balance for a customer
func NewBalance(createdByID uuid.UUID) *Balance {
	return &Balance{
		BaseEntity:  shared.NewBaseEntity(),
		CreatedByID: createdByID,
		Amount:      decimal.Zero,
	}
}

// Credit adds funds to the balance
func (b *Balance) Credit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount cannot be negative")
	}
	b.Amount = b.Amount.Add(amount)
	b.Touch()
	return nil
}

// SetAmount overwrites the balance, for administrative correction
func (b *Balance) SetAmount(amount decimal.Decimal) {
	b.Amount = amount
	b.Touch()
}

// AssignAddress sets the deposit address
func (b *Balance) AssignAddress(address string) {
	b.Address = &address
	b.Touch()
}

// ClearAddress releases the deposit address
func (b *Balance) ClearAddress() {
	b.Address = nil
	b.Touch()
}
