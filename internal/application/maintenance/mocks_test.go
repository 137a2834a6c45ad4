package maintenance

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/storeops/backoffice/internal/domain/account"
	"github.com/storeops/backoffice/internal/domain/catalog"
	"github.com/storeops/backoffice/internal/domain/payment"
	"github.com/storeops/backoffice/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllWithCategory(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) CountExpiryCandidates(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindExpiryCandidates(ctx context.Context, offset, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateExpiryBatch(ctx context.Context, updates []catalog.ExpiryUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of payment.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]payment.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) FindPageWithProduct(ctx context.Context, offset, limit int) ([]payment.Invoice, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]payment.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *payment.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *payment.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateReceivedBatch(ctx context.Context, updates []payment.ReceivedUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Stats(ctx context.Context) (payment.SyncStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(payment.SyncStats), args.Error(1)
}

// MockBalanceRepository is a mock implementation of payment.BalanceRepository
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Balance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Balance), args.Error(1)
}

func (m *MockBalanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.Balance, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]payment.Balance), args.Error(1)
}

func (m *MockBalanceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBalanceRepository) Save(ctx context.Context, balance *payment.Balance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}

func (m *MockBalanceRepository) ClearAllAddresses(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of account.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindActive(ctx context.Context) ([]account.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]account.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *account.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
