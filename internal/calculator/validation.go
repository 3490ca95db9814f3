package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/domain"
)

// IsValidSettlement reports whether a candidate settlement is admissible
// against the current balances. The payer must owe money beyond tolerance,
// the receiver must be owed money beyond tolerance, and the amount must not
// exceed the payer's debt by more than tolerance.
//
// All failures collapse to false; callers needing a reason re-derive it from
// the same checks.
func IsValidSettlement(group *domain.Group, balances Balances, candidate *domain.Settlement) bool {
	if !group.HasMember(candidate.FromMemberID) || !group.HasMember(candidate.ToMemberID) {
		return false
	}

	if candidate.Amount.LessThanOrEqual(decimal.Zero) {
		return false
	}

	fromBalance := balances[candidate.FromMemberID]
	toBalance := balances[candidate.ToMemberID]

	// The payer must owe beyond tolerance and the receiver must be owed
	// beyond tolerance. Balances sitting exactly at the tolerance edge are
	// treated as settled. The raw signed balances are compared against the
	// thresholds, not their absolute values.
	if fromBalance.GreaterThanOrEqual(tolerance.Neg()) || toBalance.LessThanOrEqual(tolerance) {
		return false
	}

	if candidate.Amount.Abs().GreaterThan(fromBalance.Abs().Add(tolerance)) {
		return false
	}

	return true
}

// WouldBeValidSettlement is the permissive pre-balance check used when
// authoritative balances are not yet available. It rejects non-positive
// amounts, unknown members, and self-settlement, but never consults balances.
// It is intentionally kept separate from IsValidSettlement.
func WouldBeValidSettlement(group *domain.Group, candidate *domain.Settlement) bool {
	if candidate.Amount.LessThanOrEqual(decimal.Zero) {
		return false
	}

	if !group.HasMember(candidate.FromMemberID) || !group.HasMember(candidate.ToMemberID) {
		return false
	}

	if candidate.FromMemberID == candidate.ToMemberID {
		return false
	}

	return true
}

// MaxSettlementAmount returns the largest payment from one member to another
// that is simultaneously justified by both positions: the smaller of what the
// payer owes and what the receiver is owed. It returns zero when either
// member's balance does not support a settlement in that direction.
func MaxSettlementAmount(balances Balances, fromMemberID, toMemberID string) decimal.Decimal {
	fromBalance := balances[fromMemberID]
	toBalance := balances[toMemberID]

	if fromBalance.GreaterThanOrEqual(tolerance.Neg()) || toBalance.LessThanOrEqual(tolerance) {
		return decimal.Zero
	}

	return decimal.Min(fromBalance.Abs(), toBalance)
}
