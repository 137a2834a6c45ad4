package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/domain/payment"
	"github.com/storeops/backoffice/internal/domain/shared"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID with the product loaded
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Invoice, error) {
	var invoice payment.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Product").
		First(&invoice, "invoices.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds all invoices matching the filter with products loaded
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.Invoice, error) {
	var invoices []payment.Invoice
	query := r.applyFilter(r.db.WithContext(ctx).Model(&payment.Invoice{}).Preload("Product"), filter)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&payment.Invoice{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindPageWithProduct pages all invoices ordered by id with products loaded
func (r *GormInvoiceRepository) FindPageWithProduct(ctx context.Context, offset, limit int) ([]payment.Invoice, error) {
	var invoices []payment.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// CountAll counts every invoice
func (r *GormInvoiceRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&payment.Invoice{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *payment.Invoice) error {
	return r.db.WithContext(ctx).Omit("Product").Save(invoice).Error
}

// Create inserts a new invoice
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *payment.Invoice) error {
	return r.db.WithContext(ctx).Omit("Product").Create(invoice).Error
}

// UpdateReceivedBatch writes the staged received amounts in one transaction
func (r *GormInvoiceRepository) UpdateReceivedBatch(ctx context.Context, updates []payment.ReceivedUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := tx.Model(&payment.Invoice{}).
				Where("id = ?", u.ID).
				Update("received", u.Received).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Stats reports how many invoices have their received amount equal to the
// product's current price.
func (r *GormInvoiceRepository) Stats(ctx context.Context) (payment.SyncStats, error) {
	var stats payment.SyncStats

	if err := r.db.WithContext(ctx).Model(&payment.Invoice{}).
		Count(&stats.TotalInvoices).Error; err != nil {
		return stats, err
	}

	if err := r.db.WithContext(ctx).Model(&payment.Invoice{}).
		Where("received IS NOT NULL").
		Count(&stats.WithReceived).Error; err != nil {
		return stats, err
	}

	if err := r.db.WithContext(ctx).Model(&payment.Invoice{}).
		Joins("JOIN products ON products.id = invoices.product_id").
		Where("invoices.received = products.price OR (invoices.received IS NULL AND products.price IS NULL)").
		Count(&stats.InSync).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

// applyFilter applies filter options to the query
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	query = query.Order("invoices." + orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination.
// Search spans the order id, the customer username, and the product name,
// mirroring the admin list search box.
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.
			Joins("LEFT JOIN products ON products.id = invoices.product_id").
			Joins("LEFT JOIN customers ON customers.id = invoices.created_by_id").
			Where("invoices.order_id LIKE ? OR customers.username LIKE ? OR products.name LIKE ?",
				searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("invoices.status = ?", value)
		case "sold":
			query = query.Where("invoices.sold = ?", value)
		case "decrypted":
			query = query.Where("invoices.decrypted = ?", value)
		}
	}

	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ payment.InvoiceRepository = (*GormInvoiceRepository)(nil)
