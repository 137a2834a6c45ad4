package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/storeops/backoffice/internal/domain/account"
	"github.com/storeops/backoffice/internal/domain/catalog"
	"github.com/storeops/backoffice/internal/domain/payment"
)

// newTestDB opens an in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&account.Customer{},
		&catalog.Category{},
		&catalog.Product{},
		&payment.Invoice{},
		&payment.Balance{},
	))

	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name, location string) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory(name, location)
	require.NoError(t, err)
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, category *catalog.Category, code, exp string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(code, "Product "+code, category.ID)
	require.NoError(t, err)
	product.Exp = exp
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCustomer(t *testing.T, db *gorm.DB, username string) *account.Customer {
	t.Helper()
	customer, err := account.NewCustomer(username, username+"@example.com")
	require.NoError(t, err)
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedInvoice(t *testing.T, db *gorm.DB, orderID string, product *catalog.Product, customer *account.Customer) *payment.Invoice {
	t.Helper()
	invoice, err := payment.NewInvoice(orderID, product.ID, customer.ID)
	require.NoError(t, err)
	require.NoError(t, db.Omit("Product").Create(invoice).Error)
	return invoice
}
