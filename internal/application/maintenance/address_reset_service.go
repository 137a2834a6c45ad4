package maintenance

import (
	"context"

	"go.uber.org/zap"

	"github.com/storeops/backoffice/internal/domain/payment"
)

// AddressResetService releases every balance's deposit address, typically
// after rotating the payment wallet.
type AddressResetService struct {
	balances payment.BalanceRepository
	logger   *zap.Logger
}

// NewAddressResetService creates a new AddressResetService
func NewAddressResetService(balances payment.BalanceRepository, logger *zap.Logger) *AddressResetService {
	return &AddressResetService{
		balances: balances,
		logger:   logger.Named("address-reset"),
	}
}

// Run clears all deposit addresses in a single statement and returns the
// number of balances touched.
func (s *AddressResetService) Run(ctx context.Context) (int64, error) {
	count, err := s.balances.ClearAllAddresses(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Reset balance addresses", zap.Int64("count", count))
	return count, nil
}
