package catalog

import (
	"strings"

	"github.com/storeops/backoffice/internal/domain/shared"
)

// Category groups products and carries the fulfillment location used by
// the product export.
type Category struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Location string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, location string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Location:   location,
	}, nil
}
