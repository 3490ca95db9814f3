package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// SplitInput describes one member's requested share of an expense. Amount is
// consulted for exact splits, Percentage for percentage splits; equal splits
// need only the member id.
type SplitInput struct {
	MemberID   string
	Amount     *decimal.Decimal
	Percentage *decimal.Decimal
}

// ComputeSplits turns split inputs into concrete per-member split rows whose
// amounts always sum exactly to the expense amount. This is where the
// "splits sum to total" invariant is enforced; the balance calculator itself
// trusts its input.
func ComputeSplits(splitType domain.SplitType, amount decimal.Decimal, inputs []SplitInput) ([]domain.Split, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrNoSplits
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	amount = roundToCents(amount)

	switch splitType {
	case domain.SplitTypeEqual:
		return equalSplits(amount, inputs), nil
	case domain.SplitTypeExact:
		return exactSplits(amount, inputs)
	case domain.SplitTypePercentage:
		return percentageSplits(amount, inputs)
	default:
		return nil, domain.ErrInvalidSplitType
	}
}

// equalSplits divides the amount evenly, handing the leftover cents to the
// first members so the rows sum exactly to the total.
func equalSplits(amount decimal.Decimal, inputs []SplitInput) []domain.Split {
	n := decimal.NewFromInt(int64(len(inputs)))
	base := amount.Div(n).RoundFloor(2)

	splits := make([]domain.Split, len(inputs))
	for i, in := range inputs {
		splits[i] = domain.Split{MemberID: in.MemberID, Amount: base}
	}

	cent := decimal.New(1, -2)
	remainder := amount.Sub(base.Mul(n))
	for i := 0; remainder.GreaterThanOrEqual(cent); i++ {
		splits[i].Amount = splits[i].Amount.Add(cent)
		remainder = remainder.Sub(cent)
	}

	return splits
}

func exactSplits(amount decimal.Decimal, inputs []SplitInput) ([]domain.Split, error) {
	splits := make([]domain.Split, len(inputs))
	total := decimal.Zero

	for i, in := range inputs {
		if in.Amount == nil {
			return nil, fmt.Errorf("%w: member %s has no amount", domain.ErrSplitMismatch, in.MemberID)
		}
		if in.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: member %s has a negative amount", domain.ErrSplitMismatch, in.MemberID)
		}

		share := roundToCents(*in.Amount)
		splits[i] = domain.Split{MemberID: in.MemberID, Amount: share}
		total = total.Add(share)
	}

	if total.Sub(amount).Abs().GreaterThan(tolerance) {
		return nil, fmt.Errorf("%w: splits sum to %s, expense is %s", domain.ErrSplitMismatch, total, amount)
	}

	return splits, nil
}

// percentageSplits divides by percentage, with the last member absorbing the
// rounding difference so the rows sum exactly to the total.
func percentageSplits(amount decimal.Decimal, inputs []SplitInput) ([]domain.Split, error) {
	totalPct := decimal.Zero
	for _, in := range inputs {
		if in.Percentage == nil {
			return nil, fmt.Errorf("%w: member %s has no percentage", domain.ErrInvalidPercents, in.MemberID)
		}
		if in.Percentage.IsNegative() || in.Percentage.GreaterThan(oneHundred) {
			return nil, fmt.Errorf("%w: member %s percentage out of range", domain.ErrInvalidPercents, in.MemberID)
		}
		totalPct = totalPct.Add(*in.Percentage)
	}

	if totalPct.Sub(oneHundred).Abs().GreaterThan(tolerance) {
		return nil, fmt.Errorf("%w: percentages sum to %s", domain.ErrInvalidPercents, totalPct)
	}

	splits := make([]domain.Split, len(inputs))
	assigned := decimal.Zero

	for i, in := range inputs {
		pct := *in.Percentage
		var share decimal.Decimal
		if i == len(inputs)-1 {
			share = amount.Sub(assigned)
		} else {
			share = roundToCents(amount.Mul(pct).Div(oneHundred))
			assigned = assigned.Add(share)
		}
		splits[i] = domain.Split{MemberID: in.MemberID, Amount: share, Percentage: &pct}
	}

	return splits, nil
}
