package domain

import "errors"

var (
	// Group errors
	ErrGroupNotFound  = errors.New("group not found")
	ErrUnknownMember  = errors.New("member not in group")
	ErrMemberNotFound = errors.New("member not found")
	ErrDuplicateCode    = errors.New("group code already in use")
	ErrMemberHasDebt    = errors.New("member balance is not settled")
	ErrMemberHasHistory = errors.New("member is referenced by expenses or settlements")

	// Expense errors
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrNoSplits         = errors.New("expense must have at least one split")
	ErrInvalidSplitType = errors.New("invalid split type")
	ErrSplitMismatch    = errors.New("split amounts do not sum to expense amount")
	ErrInvalidPercents  = errors.New("split percentages do not sum to 100")

	// Settlement errors
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrSelfSettlement     = errors.New("cannot settle with yourself")
	ErrSettlementRejected = errors.New("settlement is not admissible against current balances")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
