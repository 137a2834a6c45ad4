package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeops/backoffice/internal/domain/shared"
)

// Product represents a sellable item in the store catalog.
type Product struct {
	shared.BaseEntity
	Code        string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string           `gorm:"type:varchar(200);not null"`
	Description string           `gorm:"type:text"`
	Price       *decimal.Decimal `gorm:"type:decimal(18,8)"` // nil until priced
	Exp         string           `gorm:"type:varchar(50)"`   // free-form expiry, e.g. "Aug-29"
	Active      bool             `gorm:"not null;default:true"`
	CategoryID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Category    *Category        `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in the given category
func NewProduct(code, name string, categoryID uuid.UUID) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.ToUpper(code),
		Name:       name,
		Active:     true,
		CategoryID: categoryID,
	}, nil
}

// SetPrice sets the product price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = &price
	p.Touch()
	return nil
}

// SetExpiry replaces the raw expiry string
func (p *Product) SetExpiry(exp string) {
	p.Exp = exp
	p.Touch()
}

// HasExpiry reports whether the product carries a non-empty expiry value
func (p *Product) HasExpiry() bool {
	return strings.TrimSpace(p.Exp) != ""
}

// Deactivate takes the product off sale
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
