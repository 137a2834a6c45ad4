package account

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/storeops/backoffice/internal/domain/shared"
)

// Customer is a store account that invoices and balances belong to.
type Customer struct {
	shared.BaseEntity
	Username string `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email    string `gorm:"type:varchar(254)"`
	Active   bool   `gorm:"not null;default:true;column:is_active"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates an active customer account
func NewCustomer(username, email string) (*Customer, error) {
	if strings.TrimSpace(username) == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Username:   username,
		Email:      email,
		Active:     true,
	}, nil
}

// Deactivate disables the account
func (c *Customer) Deactivate() {
	c.Active = false
	c.Touch()
}

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindActive(ctx context.Context) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
}
