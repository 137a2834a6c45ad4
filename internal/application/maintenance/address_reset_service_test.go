package maintenance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAddressResetRun(t *testing.T) {
	repo := new(MockBalanceRepository)
	service := NewAddressResetService(repo, zap.NewNop())

	repo.On("ClearAllAddresses", mock.Anything).Return(int64(42), nil)

	count, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
	repo.AssertExpectations(t)
}

func TestAddressResetRun_Error(t *testing.T) {
	repo := new(MockBalanceRepository)
	service := NewAddressResetService(repo, zap.NewNop())

	repo.On("ClearAllAddresses", mock.Anything).Return(int64(0), errors.New("connection lost"))

	count, err := service.Run(context.Background())
	require.Error(t, err)
	assert.Zero(t, count)
}
