package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/domain/payment"
	"github.com/storeops/backoffice/internal/domain/shared"
)

// GormBalanceRepository implements BalanceRepository using GORM
type GormBalanceRepository struct {
	db *gorm.DB
}

// NewGormBalanceRepository creates a new GormBalanceRepository
func NewGormBalanceRepository(db *gorm.DB) *GormBalanceRepository {
	return &GormBalanceRepository{db: db}
}

// FindByID finds a balance by its ID
func (r *GormBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Balance, error) {
	var balance payment.Balance
	if err := r.db.WithContext(ctx).First(&balance, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &balance, nil
}

// FindAll finds all balances matching the filter
func (r *GormBalanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.Balance, error) {
	var balances []payment.Balance
	query := r.applyFilter(r.db.WithContext(ctx).Model(&payment.Balance{}), filter)

	if err := query.Find(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}

// Count counts balances matching the filter
func (r *GormBalanceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&payment.Balance{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a balance
func (r *GormBalanceRepository) Save(ctx context.Context, balance *payment.Balance) error {
	return r.db.WithContext(ctx).Save(balance).Error
}

// ClearAllAddresses resets every assigned deposit address in one statement
func (r *GormBalanceRepository) ClearAllAddresses(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&payment.Balance{}).
		Where("address IS NOT NULL").
		Update("address", nil)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// applyFilter applies filter options to the query
func (r *GormBalanceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BalanceSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBalanceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "has_address":
			if value == true {
				query = query.Where("address IS NOT NULL")
			} else {
				query = query.Where("address IS NULL")
			}
		case "created_by_id":
			query = query.Where("created_by_id = ?", value)
		}
	}

	return query
}

// Ensure GormBalanceRepository implements BalanceRepository
var _ payment.BalanceRepository = (*GormBalanceRepository)(nil)
