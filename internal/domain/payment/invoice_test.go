package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoice(t *testing.T) {
	inv, err := NewInvoice("INV-ABC123DEF456", uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusPending, inv.Status)
	assert.False(t, inv.Sold)
	assert.Nil(t, inv.Received)

	_, err = NewInvoice("", uuid.New(), uuid.New())
	assert.Error(t, err)
}

func TestInvoiceSetStatus(t *testing.T) {
	inv, err := NewInvoice("INV-ABC123DEF456", uuid.New(), uuid.New())
	require.NoError(t, err)

	require.NoError(t, inv.SetStatus(InvoiceStatusConfirmed))
	assert.Equal(t, InvoiceStatusConfirmed, inv.Status)

	err = inv.SetStatus(InvoiceStatus(7))
	assert.Error(t, err)
	assert.Equal(t, InvoiceStatusConfirmed, inv.Status)
}

func TestInvoiceReceivedMatches(t *testing.T) {
	inv, err := NewInvoice("INV-ABC123DEF456", uuid.New(), uuid.New())
	require.NoError(t, err)

	price := decimal.RequireFromString("0.0042")

	// Both nil counts as matching.
	assert.True(t, inv.ReceivedMatches(nil))
	assert.False(t, inv.ReceivedMatches(&price))

	inv.SetReceived(price)
	assert.True(t, inv.ReceivedMatches(&price))
	assert.False(t, inv.ReceivedMatches(nil))

	other := decimal.RequireFromString("0.0041")
	assert.False(t, inv.ReceivedMatches(&other))
}

func TestBalanceCredit(t *testing.T) {
	b := NewBalance(uuid.New())
	require.True(t, b.Amount.IsZero())

	require.NoError(t, b.Credit(decimal.RequireFromString("1.5")))
	assert.Equal(t, "1.5", b.Amount.String())

	err := b.Credit(decimal.RequireFromString("-1"))
	assert.Error(t, err)

	b.AssignAddress("bc1qexampleaddress")
	require.NotNil(t, b.Address)
	b.ClearAddress()
	assert.Nil(t, b.Address)
}
