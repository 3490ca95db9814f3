package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement records a completed payment from one member to another. Once
// created it is historical fact and never mutated.
type Settlement struct {
	ID           string
	GroupID      string
	FromMemberID string
	ToMemberID   string
	Amount       decimal.Decimal
	Currency     string
	Description  string
	CreatedAt    time.Time
}

// Validate validates a settlement request.
func (s *Settlement) Validate() error {
	if s.FromMemberID == s.ToMemberID {
		return ErrSelfSettlement
	}

	if s.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// SimplifiedDebt is a suggested payment derived from the current balances.
// It is ephemeral: recomputed on demand and never persisted.
type SimplifiedDebt struct {
	FromMemberID string
	ToMemberID   string
	Amount       decimal.Decimal
}
