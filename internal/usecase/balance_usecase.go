package usecase

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/calculator"
	"github.com/evenup/evenup/internal/domain"
	"github.com/evenup/evenup/internal/infrastructure/metrics"
)

// BalanceUseCase computes per-member balances and derived debt suggestions.
// Balances are always recomputed from the full expense and settlement history;
// the cache only short-circuits repeated reads between mutations.
type BalanceUseCase struct {
	groupRepo      GroupRepository
	expenseRepo    ExpenseRepository
	settlementRepo SettlementRepository
	cache          Cache
	metrics        *metrics.Metrics
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(
	groupRepo GroupRepository,
	expenseRepo ExpenseRepository,
	settlementRepo SettlementRepository,
	cache Cache,
	m *metrics.Metrics,
) *BalanceUseCase {
	return &BalanceUseCase{
		groupRepo:      groupRepo,
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		cache:          cache,
		metrics:        m,
	}
}

func balanceCacheKey(groupID string) string {
	return "balances:" + groupID
}

// GetBalances returns the net balance of every member of the group.
func (uc *BalanceUseCase) GetBalances(ctx context.Context, groupID string) (calculator.Balances, error) {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, balanceCacheKey(groupID)); err == nil {
			var cached map[string]decimal.Decimal
			if err := json.Unmarshal(data, &cached); err == nil {
				if uc.metrics != nil {
					uc.metrics.BalanceCacheHits.Inc()
				}
				return calculator.Balances(cached), nil
			}
		}
		if uc.metrics != nil {
			uc.metrics.BalanceCacheMisses.Inc()
		}
	}

	balances, err := uc.compute(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(map[string]decimal.Decimal(balances)); err == nil {
			// Cache write failures only cost the next read a recomputation.
			_ = uc.cache.Set(ctx, balanceCacheKey(groupID), data, BalanceCacheTTL)
		}
	}

	return balances, nil
}

func (uc *BalanceUseCase) compute(ctx context.Context, groupID string) (calculator.Balances, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	settlements, err := uc.settlementRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.BalanceComputations.Inc()
	}

	return calculator.CalculateBalances(group, expenses, settlements), nil
}

// GetSimplifiedDebts returns the suggested payments that settle the group.
func (uc *BalanceUseCase) GetSimplifiedDebts(ctx context.Context, groupID string) ([]domain.SimplifiedDebt, error) {
	balances, err := uc.GetBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	debts := calculator.SimplifyDebts(balances)

	if uc.metrics != nil {
		uc.metrics.SimplifiedDebtCount.Observe(float64(len(debts)))
	}

	return debts, nil
}

// CheckConsistency verifies the zero-sum invariant for a group: the balances
// computed from its full history must sum to zero within tolerance.
func (uc *BalanceUseCase) CheckConsistency(ctx context.Context, groupID string) (bool, decimal.Decimal, error) {
	balances, err := uc.compute(ctx, groupID)
	if err != nil {
		return false, decimal.Zero, err
	}

	sum := balances.Sum()
	consistent := sum.Abs().LessThanOrEqual(calculator.Tolerance())

	return consistent, sum, nil
}

// Invalidate drops the cached balances for a group. Called after any mutation
// that affects the group's history.
func (uc *BalanceUseCase) Invalidate(ctx context.Context, groupID string) {
	if uc.cache == nil {
		return
	}
	// A failed invalidation is bounded by the cache TTL.
	_ = uc.cache.Delete(ctx, balanceCacheKey(groupID))
}
