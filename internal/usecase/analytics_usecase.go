package usecase

import (
	"context"

	"github.com/evenup/evenup/internal/calculator"
)

// AnalyticsUseCase computes spending summaries for a group.
type AnalyticsUseCase struct {
	groupRepo   GroupRepository
	expenseRepo ExpenseRepository
}

// NewAnalyticsUseCase creates a new AnalyticsUseCase.
func NewAnalyticsUseCase(groupRepo GroupRepository, expenseRepo ExpenseRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		groupRepo:   groupRepo,
		expenseRepo: expenseRepo,
	}
}

// GetGroupAnalytics aggregates spending totals and category breakdown for a
// group.
func (uc *AnalyticsUseCase) GetGroupAnalytics(ctx context.Context, groupID string) (*calculator.GroupAnalytics, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	analytics := calculator.CalculateGroupAnalytics(group, expenses)

	return &analytics, nil
}
