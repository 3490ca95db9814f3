package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/domain"
)

// Balances maps a member id to that member's net position. Positive means the
// group owes the member, negative means the member owes the group. A
// correctly computed map sums to zero within tolerance.
type Balances map[string]decimal.Decimal

// tolerance is the threshold below which a balance or amount is treated as
// zero (0.01 currency units).
var tolerance = decimal.New(1, -2)

// Tolerance returns the zero threshold used throughout the engine.
func Tolerance() decimal.Decimal {
	return tolerance
}

func roundToCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalculateBalances folds the full expense and settlement history of a group
// into one net balance per member. Every member of the group appears in the
// output, including members with no activity. Each accumulation is rounded to
// cents so that processing order cannot accumulate drift, and residues below
// tolerance are snapped to exactly zero at the end.
//
// The function is pure: it reads its arguments and allocates a fresh map.
func CalculateBalances(group *domain.Group, expenses []*domain.Expense, settlements []*domain.Settlement) Balances {
	balances := make(Balances, len(group.Members))

	for _, m := range group.Members {
		balances[m.ID] = decimal.Zero
	}

	for _, expense := range expenses {
		// The payer is credited the full amount.
		balances[expense.PaidBy] = roundToCents(balances[expense.PaidBy].Add(expense.Amount))

		// Each split debits that member's share.
		for _, split := range expense.Splits {
			balances[split.MemberID] = roundToCents(balances[split.MemberID].Sub(split.Amount))
		}
	}

	for _, s := range settlements {
		// Paying down a debt moves the payer toward zero and reduces what
		// the receiver is owed.
		balances[s.FromMemberID] = roundToCents(balances[s.FromMemberID].Add(s.Amount))
		balances[s.ToMemberID] = roundToCents(balances[s.ToMemberID].Sub(s.Amount))
	}

	for id, b := range balances {
		if b.Abs().LessThan(tolerance) {
			balances[id] = decimal.Zero
		}
	}

	return balances
}

// Sum returns the total of all balances. For a consistent history it is zero
// within tolerance.
func (b Balances) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}

// IsSettled reports whether every member's balance is within tolerance of
// zero.
func (b Balances) IsSettled() bool {
	for _, v := range b {
		if v.Abs().GreaterThan(tolerance) {
			return false
		}
	}
	return true
}
