package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storeops/backoffice/internal/domain/payment"
	"github.com/storeops/backoffice/internal/domain/shared"
	"github.com/storeops/backoffice/internal/infrastructure/cache"
)

const balanceCountKey = "balances"

// BalanceRow is one line of the balance list screen.
type BalanceRow struct {
	ID          uuid.UUID       `json:"id"`
	CreatedByID uuid.UUID       `json:"created_by_id"`
	Address     *string         `json:"address"`
	Amount      decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BalanceListService serves the balance list and detail screens.
type BalanceListService struct {
	balances payment.BalanceRepository
	counts   cache.CountCache
	cfg      Config
	logger   *zap.Logger
}

func NewBalanceListService(
	balances payment.BalanceRepository,
	counts cache.CountCache,
	cfg Config,
	logger *zap.Logger,
) *BalanceListService {
	return &BalanceListService{
		balances: balances,
		counts:   counts,
		cfg:      cfg,
		logger:   logger.Named("admin.balances"),
	}
}

// List returns one page of balances matching the query.
func (s *BalanceListService) List(ctx context.Context, q ListQuery) (shared.Paginated[BalanceRow], error) {
	filter := s.cfg.toFilter(q)

	balances, err := s.balances.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[BalanceRow]{}, err
	}

	total, err := cachedCount(ctx, s.counts, balanceCountKey, s.cfg.CountCacheTTL, filter, s.balances.Count, s.logger)
	if err != nil {
		return shared.Paginated[BalanceRow]{}, err
	}

	rows := make([]BalanceRow, 0, len(balances))
	for i := range balances {
		rows = append(rows, toBalanceRow(&balances[i]))
	}
	return shared.NewPaginated(rows, total, filter.Page, filter.PageSize), nil
}

// Get returns a single balance row by id.
func (s *BalanceListService) Get(ctx context.Context, id uuid.UUID) (BalanceRow, error) {
	balance, err := s.balances.FindByID(ctx, id)
	if err != nil {
		return BalanceRow{}, err
	}
	return toBalanceRow(balance), nil
}

// SetAmount overwrites one balance, the list screen's inline edit, and
// returns the updated row. Negative amounts are rejected.
func (s *BalanceListService) SetAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (BalanceRow, error) {
	if amount.IsNegative() {
		return BalanceRow{}, shared.NewDomainError("INVALID_AMOUNT", "Balance cannot be negative")
	}

	balance, err := s.balances.FindByID(ctx, id)
	if err != nil {
		return BalanceRow{}, err
	}

	balance.SetAmount(amount)
	if err := s.balances.Save(ctx, balance); err != nil {
		return BalanceRow{}, err
	}

	s.logger.Info("Balance amount updated",
		zap.String("balance_id", id.String()),
		zap.String("balance", amount.String()),
	)
	return toBalanceRow(balance), nil
}

func toBalanceRow(b *payment.Balance) BalanceRow {
	return BalanceRow{
		ID:          b.ID,
		CreatedByID: b.CreatedByID,
		Address:     b.Address,
		Amount:      b.Amount,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
