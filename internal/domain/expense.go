package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitType determines how an expense amount is divided among members.
type SplitType string

const (
	SplitTypeEqual      SplitType = "equal"
	SplitTypeExact      SplitType = "exact"
	SplitTypePercentage SplitType = "percentage"
)

// Expense is a recorded cost paid by one member and divided among members via
// splits.
type Expense struct {
	ID          string
	GroupID     string
	Description string
	Amount      decimal.Decimal
	Currency    string
	PaidBy      string
	SplitType   SplitType
	Splits      []Split
	Category    string
	Date        time.Time
	CreatedAt   time.Time
}

// Split is one member's share of an expense.
type Split struct {
	MemberID   string
	Amount     decimal.Decimal
	Percentage *decimal.Decimal
}

// Validate checks the expense's own fields. Split amounts are validated by
// the split calculator before the expense is persisted.
func (e *Expense) Validate() error {
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if e.PaidBy == "" {
		return ErrUnknownMember
	}
	if len(e.Splits) == 0 {
		return ErrNoSplits
	}
	switch e.SplitType {
	case SplitTypeEqual, SplitTypeExact, SplitTypePercentage:
	default:
		return ErrInvalidSplitType
	}
	return nil
}
