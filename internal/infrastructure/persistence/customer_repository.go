package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/domain/account"
	"github.com/storeops/backoffice/internal/domain/shared"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Customer, error) {
	var customer account.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindActive finds all active customers ordered by username
func (r *GormCustomerRepository) FindActive(ctx context.Context) ([]account.Customer, error) {
	var customers []account.Customer
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("username ASC").
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *account.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ account.CustomerRepository = (*GormCustomerRepository)(nil)
