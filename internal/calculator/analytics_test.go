package calculator

import (
	"testing"

	"github.com/evenup/evenup/internal/domain"
)

func TestCalculateGroupAnalytics(t *testing.T) {
	budget := dec("300")
	group := testGroup("a", "b", "c")
	group.Budget = &budget

	expenses := []*domain.Expense{
		{Amount: dec("120"), Category: "food"},
		{Amount: dec("80"), Category: "transport"},
		{Amount: dec("40"), Category: "food"},
		{Amount: dec("10")}, // uncategorized falls into "other"
	}

	analytics := CalculateGroupAnalytics(group, expenses)

	if !analytics.TotalExpenses.Equal(dec("250")) {
		t.Errorf("TotalExpenses = %s, want 250", analytics.TotalExpenses)
	}
	if analytics.TotalMembers != 3 {
		t.Errorf("TotalMembers = %d, want 3", analytics.TotalMembers)
	}
	if analytics.MostActiveCategory != "food" {
		t.Errorf("MostActiveCategory = %s, want food", analytics.MostActiveCategory)
	}
	if analytics.IsOverBudget {
		t.Error("250 of 300 budget should not be over budget")
	}
	if !analytics.BudgetUsage.Equal(dec("83.33")) {
		t.Errorf("BudgetUsage = %s, want 83.33", analytics.BudgetUsage)
	}
	if !analytics.AverageExpensePerMember.Equal(dec("83.33")) {
		t.Errorf("AverageExpensePerMember = %s, want 83.33", analytics.AverageExpensePerMember)
	}

	if len(analytics.CategoryBreakdown) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(analytics.CategoryBreakdown))
	}
	top := analytics.CategoryBreakdown[0]
	if top.Category != "food" || !top.Amount.Equal(dec("160")) {
		t.Errorf("top category = %s %s, want food 160", top.Category, top.Amount)
	}
	if !top.Percentage.Equal(dec("64")) {
		t.Errorf("top percentage = %s, want 64", top.Percentage)
	}
	if top.Color != "#F59E0B" {
		t.Errorf("top color = %s, want #F59E0B", top.Color)
	}
}

func TestCalculateGroupAnalytics_Empty(t *testing.T) {
	analytics := CalculateGroupAnalytics(testGroup("a"), nil)

	if !analytics.TotalExpenses.IsZero() {
		t.Errorf("TotalExpenses = %s, want 0", analytics.TotalExpenses)
	}
	if analytics.MostActiveCategory != "" {
		t.Errorf("MostActiveCategory = %q, want empty", analytics.MostActiveCategory)
	}
	if analytics.IsOverBudget {
		t.Error("no budget set should never be over budget")
	}
	if len(analytics.CategoryBreakdown) != 0 {
		t.Errorf("expected empty breakdown, got %v", analytics.CategoryBreakdown)
	}
}

func TestCalculateGroupAnalytics_OverBudget(t *testing.T) {
	budget := dec("100")
	group := testGroup("a", "b")
	group.Budget = &budget

	analytics := CalculateGroupAnalytics(group, []*domain.Expense{
		{Amount: dec("150"), Category: "travel"},
	})

	if !analytics.IsOverBudget {
		t.Error("150 of 100 budget should be over budget")
	}
	if !analytics.BudgetUsage.Equal(dec("150")) {
		t.Errorf("BudgetUsage = %s, want 150", analytics.BudgetUsage)
	}
}
