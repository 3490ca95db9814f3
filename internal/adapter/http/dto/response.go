package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/calculator"
	"github.com/evenup/evenup/internal/domain"
)

// MemberResponse represents a group member in API responses.
type MemberResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// MemberFromDomain converts a domain member to a response.
func MemberFromDomain(m *domain.Member) *MemberResponse {
	return &MemberResponse{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		JoinedAt: m.JoinedAt,
	}
}

// GroupResponse represents a group in API responses.
type GroupResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Code        string           `json:"code"`
	Currency    string           `json:"currency"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	CreatedBy   string           `json:"created_by,omitempty"`
	Members     []*MemberResponse `json:"members"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// GroupFromDomain converts a domain group to a response.
func GroupFromDomain(g *domain.Group) *GroupResponse {
	members := make([]*MemberResponse, len(g.Members))
	for i := range g.Members {
		members[i] = MemberFromDomain(&g.Members[i])
	}
	return &GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Code:        g.Code,
		Currency:    g.Currency,
		Budget:      g.Budget,
		CreatedBy:   g.CreatedBy,
		Members:     members,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// GroupsFromDomain converts domain groups to responses.
func GroupsFromDomain(groups []*domain.Group) []*GroupResponse {
	result := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		result[i] = GroupFromDomain(g)
	}
	return result
}

// ListGroupsResponse wraps a page of groups.
type ListGroupsResponse struct {
	Groups []*GroupResponse `json:"groups"`
	Total  int64            `json:"total"`
}

// JoinGroupResponse is returned when a member joins a group by code.
type JoinGroupResponse struct {
	Group  *GroupResponse  `json:"group"`
	Member *MemberResponse `json:"member"`
}

// SplitResponse represents one member's share of an expense.
type SplitResponse struct {
	MemberID   string           `json:"member_id"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	PaidBy      string          `json:"paid_by"`
	SplitType   string          `json:"split_type"`
	Splits      []SplitResponse `json:"splits"`
	Category    string          `json:"category,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	splits := make([]SplitResponse, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = SplitResponse{
			MemberID:   s.MemberID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		}
	}
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		PaidBy:      e.PaidBy,
		SplitType:   string(e.SplitType),
		Splits:      splits,
		Category:    e.Category,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// ListExpensesResponse wraps a group's expenses.
type ListExpensesResponse struct {
	Expenses []*ExpenseResponse `json:"expenses"`
	Total    int64              `json:"total"`
}

// SettlementResponse represents a settlement in API responses.
type SettlementResponse struct {
	ID           string          `json:"id"`
	GroupID      string          `json:"group_id"`
	FromMemberID string          `json:"from_member_id"`
	ToMemberID   string          `json:"to_member_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SettlementFromDomain converts a domain settlement to a response.
func SettlementFromDomain(s *domain.Settlement) *SettlementResponse {
	return &SettlementResponse{
		ID:           s.ID,
		GroupID:      s.GroupID,
		FromMemberID: s.FromMemberID,
		ToMemberID:   s.ToMemberID,
		Amount:       s.Amount,
		Currency:     s.Currency,
		Description:  s.Description,
		CreatedAt:    s.CreatedAt,
	}
}

// SettlementsFromDomain converts domain settlements to responses.
func SettlementsFromDomain(settlements []*domain.Settlement) []*SettlementResponse {
	result := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		result[i] = SettlementFromDomain(s)
	}
	return result
}

// ListSettlementsResponse wraps a group's settlements.
type ListSettlementsResponse struct {
	Settlements []*SettlementResponse `json:"settlements"`
	Total       int64                 `json:"total"`
}

// BalancesResponse maps member ids to their net balances. Positive means the
// group owes the member, negative means the member owes the group.
type BalancesResponse struct {
	GroupID  string                     `json:"group_id"`
	Balances map[string]decimal.Decimal `json:"balances"`
	Settled  bool                       `json:"settled"`
}

// BalancesFromCalculator converts calculator balances to a response.
func BalancesFromCalculator(groupID string, b calculator.Balances) *BalancesResponse {
	return &BalancesResponse{
		GroupID:  groupID,
		Balances: b,
		Settled:  b.IsSettled(),
	}
}

// SimplifiedDebtResponse is one suggested payment.
type SimplifiedDebtResponse struct {
	FromMemberID string          `json:"from_member_id"`
	ToMemberID   string          `json:"to_member_id"`
	Amount       decimal.Decimal `json:"amount"`
}

// SimplifiedDebtsResponse wraps the suggested payments for a group.
type SimplifiedDebtsResponse struct {
	GroupID string                   `json:"group_id"`
	Debts   []SimplifiedDebtResponse `json:"debts"`
}

// DebtsFromDomain converts simplified debts to a response.
func DebtsFromDomain(groupID string, debts []domain.SimplifiedDebt) *SimplifiedDebtsResponse {
	result := make([]SimplifiedDebtResponse, len(debts))
	for i, d := range debts {
		result[i] = SimplifiedDebtResponse{
			FromMemberID: d.FromMemberID,
			ToMemberID:   d.ToMemberID,
			Amount:       d.Amount,
		}
	}
	return &SimplifiedDebtsResponse{GroupID: groupID, Debts: result}
}

// ConsistencyResponse reports the zero-sum check for a group.
type ConsistencyResponse struct {
	GroupID    string          `json:"group_id"`
	Consistent bool            `json:"consistent"`
	Drift      decimal.Decimal `json:"drift"`
}

// MaxSettlementResponse reports the largest admissible payment between two
// members.
type MaxSettlementResponse struct {
	FromMemberID string          `json:"from_member_id"`
	ToMemberID   string          `json:"to_member_id"`
	MaxAmount    decimal.Decimal `json:"max_amount"`
}

// CategorySpendingResponse is one category's share of a group's spending.
type CategorySpendingResponse struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	Color      string          `json:"color"`
}

// AnalyticsResponse summarizes a group's spending.
type AnalyticsResponse struct {
	GroupID                 string                     `json:"group_id"`
	TotalExpenses           decimal.Decimal            `json:"total_expenses"`
	TotalMembers            int                        `json:"total_members"`
	CategoryBreakdown       []CategorySpendingResponse `json:"category_breakdown"`
	BudgetUsage             decimal.Decimal            `json:"budget_usage"`
	IsOverBudget            bool                       `json:"is_over_budget"`
	AverageExpensePerMember decimal.Decimal            `json:"average_expense_per_member"`
	MostActiveCategory      string                     `json:"most_active_category,omitempty"`
}

// AnalyticsFromCalculator converts calculator analytics to a response.
func AnalyticsFromCalculator(groupID string, a *calculator.GroupAnalytics) *AnalyticsResponse {
	breakdown := make([]CategorySpendingResponse, len(a.CategoryBreakdown))
	for i, c := range a.CategoryBreakdown {
		breakdown[i] = CategorySpendingResponse{
			Category:   c.Category,
			Amount:     c.Amount,
			Percentage: c.Percentage,
			Color:      c.Color,
		}
	}
	return &AnalyticsResponse{
		GroupID:                 groupID,
		TotalExpenses:           a.TotalExpenses,
		TotalMembers:            a.TotalMembers,
		CategoryBreakdown:       breakdown,
		BudgetUsage:             a.BudgetUsage,
		IsOverBudget:            a.IsOverBudget,
		AverageExpensePerMember: a.AverageExpensePerMember,
		MostActiveCategory:      a.MostActiveCategory,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
