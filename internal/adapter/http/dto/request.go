package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/domain"
	"github.com/evenup/evenup/internal/usecase"
)

// MemberRequest represents one member in a group or join request.
type MemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// CreateGroupRequest represents a request to create a group.
type CreateGroupRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Currency    string           `json:"currency"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	CreatedBy   string           `json:"created_by,omitempty"`
	Members     []MemberRequest  `json:"members,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateGroupRequest) ToUseCaseInput() usecase.CreateGroupInput {
	members := make([]usecase.MemberInput, len(r.Members))
	for i, m := range r.Members {
		members[i] = usecase.MemberInput{Name: m.Name, Email: m.Email}
	}
	return usecase.CreateGroupInput{
		Name:        r.Name,
		Description: r.Description,
		Currency:    r.Currency,
		Budget:      r.Budget,
		CreatedBy:   r.CreatedBy,
		Members:     members,
	}
}

// JoinGroupRequest represents a request to join a group by code.
type JoinGroupRequest struct {
	Code   string        `json:"code"`
	Member MemberRequest `json:"member"`
}

// ToUseCaseInput converts to use case input.
func (r *JoinGroupRequest) ToUseCaseInput() usecase.JoinGroupInput {
	return usecase.JoinGroupInput{
		Code:   r.Code,
		Member: usecase.MemberInput{Name: r.Member.Name, Email: r.Member.Email},
	}
}

// SplitRequest represents one member's share in an expense request. Amount is
// used by exact splits, Percentage by percentage splits; equal splits need
// only the member id.
type SplitRequest struct {
	MemberID   string           `json:"member_id"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// AddExpenseRequest represents a request to record an expense.
type AddExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	SplitType   string          `json:"split_type"`
	Splits      []SplitRequest  `json:"splits"`
	Category    string          `json:"category,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input for the given group.
func (r *AddExpenseRequest) ToUseCaseInput(groupID string) usecase.AddExpenseInput {
	splits := make([]usecase.SplitEntry, len(r.Splits))
	for i, s := range r.Splits {
		splits[i] = usecase.SplitEntry{
			MemberID:   s.MemberID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		}
	}
	return usecase.AddExpenseInput{
		GroupID:     groupID,
		Description: r.Description,
		Amount:      r.Amount,
		PaidBy:      r.PaidBy,
		SplitType:   domain.SplitType(r.SplitType),
		Splits:      splits,
		Category:    r.Category,
		Date:        r.Date,
	}
}

// RecordSettlementRequest represents a request to record a payment between
// two members.
type RecordSettlementRequest struct {
	FromMemberID string          `json:"from_member_id"`
	ToMemberID   string          `json:"to_member_id"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input for the given group.
func (r *RecordSettlementRequest) ToUseCaseInput(groupID string) usecase.RecordSettlementInput {
	return usecase.RecordSettlementInput{
		GroupID:      groupID,
		FromMemberID: r.FromMemberID,
		ToMemberID:   r.ToMemberID,
		Amount:       r.Amount,
		Description:  r.Description,
	}
}
