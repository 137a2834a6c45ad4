package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeops/backoffice/internal/domain/payment"
	"github.com/storeops/backoffice/internal/domain/shared"
)

func TestGormInvoiceRepository_FindPageWithProduct(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Gift Cards", "EU")
	product := seedProduct(t, db, category, "SKU-1", "")
	customer := seedCustomer(t, db, "alice")

	seedInvoice(t, db, "INV-A", product, customer)
	seedInvoice(t, db, "INV-B", product, customer)
	seedInvoice(t, db, "INV-C", product, customer)

	page, err := repo.FindPageWithProduct(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, page[0].Product)
	assert.Equal(t, "SKU-1", page[0].Product.Code)

	rest, err := repo.FindPageWithProduct(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestGormInvoiceRepository_UpdateReceivedBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Gift Cards", "EU")
	product := seedProduct(t, db, category, "SKU-1", "")
	customer := seedCustomer(t, db, "alice")

	inv1 := seedInvoice(t, db, "INV-A", product, customer)
	inv2 := seedInvoice(t, db, "INV-B", product, customer)

	amount := decimal.RequireFromString("0.005")
	err := repo.UpdateReceivedBatch(ctx, []payment.ReceivedUpdate{
		{ID: inv1.ID, Received: &amount},
		{ID: inv2.ID, Received: nil},
	})
	require.NoError(t, err)

	got1, err := repo.FindByID(ctx, inv1.ID)
	require.NoError(t, err)
	require.NotNil(t, got1.Received)
	assert.True(t, got1.Received.Equal(amount))

	got2, err := repo.FindByID(ctx, inv2.ID)
	require.NoError(t, err)
	assert.Nil(t, got2.Received)
}

func TestGormInvoiceRepository_Stats(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Gift Cards", "EU")
	product := seedProduct(t, db, category, "SKU-1", "")
	price := decimal.RequireFromString("0.010")
	product.Price = &price
	require.NoError(t, db.Save(product).Error)

	customer := seedCustomer(t, db, "alice")

	inSync := seedInvoice(t, db, "INV-A", product, customer)
	inSync.SetReceived(price)
	require.NoError(t, repo.Save(ctx, inSync))

	stale := seedInvoice(t, db, "INV-B", product, customer)
	stale.SetReceived(decimal.RequireFromString("0.002"))
	require.NoError(t, repo.Save(ctx, stale))

	seedInvoice(t, db, "INV-C", product, customer) // received never set

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalInvoices)
	assert.Equal(t, int64(2), stats.WithReceived)
	assert.Equal(t, int64(1), stats.InSync)
}

func TestGormInvoiceRepository_FindAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Gift Cards", "EU")
	product := seedProduct(t, db, category, "SKU-1", "")
	alice := seedCustomer(t, db, "alice")
	bob := seedCustomer(t, db, "bob")

	sold := seedInvoice(t, db, "INV-A", product, alice)
	sold.MarkSold(true)
	require.NoError(t, sold.SetStatus(payment.InvoiceStatusPaid))
	require.NoError(t, repo.Save(ctx, sold))

	seedInvoice(t, db, "INV-B", product, bob)

	t.Run("filter by sold", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["sold"] = true

		invoices, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.Equal(t, "INV-A", invoices[0].OrderID)
	})

	t.Run("filter by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = int(payment.InvoiceStatusPending)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("search by customer username", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "bob"

		invoices, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.Equal(t, "INV-B", invoices[0].OrderID)
	})

	t.Run("search by order id", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "INV-A"

		invoices, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, invoices, 1)
		require.NotNil(t, invoices[0].Product)
	})
}
