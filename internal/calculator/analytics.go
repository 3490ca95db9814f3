package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/domain"
)

// CategorySpending is one category's share of a group's total spend.
type CategorySpending struct {
	Category   string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	Color      string
}

// GroupAnalytics summarizes a group's spending.
type GroupAnalytics struct {
	TotalExpenses           decimal.Decimal
	TotalMembers            int
	CategoryBreakdown       []CategorySpending
	BudgetUsage             decimal.Decimal
	IsOverBudget            bool
	AverageExpensePerMember decimal.Decimal
	MostActiveCategory      string
}

var categoryColors = map[string]string{
	"food":          "#F59E0B",
	"transport":     "#3B82F6",
	"entertainment": "#8B5CF6",
	"utilities":     "#10B981",
	"shopping":      "#EC4899",
	"accommodation": "#F43F5E",
	"travel":        "#06B6D4",
	"stay":          "#84CC16",
	"other":         "#6B7280",
}

// CalculateGroupAnalytics aggregates spending totals, a per-category
// breakdown sorted by amount, and budget usage for a group.
func CalculateGroupAnalytics(group *domain.Group, expenses []*domain.Expense) GroupAnalytics {
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		total = total.Add(e.Amount)

		category := e.Category
		if category == "" {
			category = "other"
		}
		byCategory[category] = byCategory[category].Add(e.Amount)
	}

	breakdown := make([]CategorySpending, 0, len(byCategory))
	for category, amount := range byCategory {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = amount.Div(total).Mul(oneHundred).Round(2)
		}

		breakdown = append(breakdown, CategorySpending{
			Category:   category,
			Amount:     amount,
			Percentage: pct,
			Color:      categoryColor(category),
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount.Equal(breakdown[j].Amount) {
			return breakdown[i].Category < breakdown[j].Category
		}
		return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
	})

	analytics := GroupAnalytics{
		TotalExpenses:     total,
		TotalMembers:      len(group.Members),
		CategoryBreakdown: breakdown,
	}

	if group.Budget != nil && group.Budget.IsPositive() {
		analytics.BudgetUsage = total.Div(*group.Budget).Mul(oneHundred).Round(2)
		analytics.IsOverBudget = total.GreaterThan(*group.Budget)
	}

	if len(group.Members) > 0 {
		analytics.AverageExpensePerMember = total.Div(decimal.NewFromInt(int64(len(group.Members)))).Round(2)
	}

	if len(breakdown) > 0 {
		analytics.MostActiveCategory = breakdown[0].Category
	}

	return analytics
}

func categoryColor(category string) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return categoryColors["other"]
}
