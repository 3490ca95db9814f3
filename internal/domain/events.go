package domain

import "time"

// Event types
const (
	EventTypeGroupCreated       = "group.created"
	EventTypeMemberJoined       = "member.joined"
	EventTypeMemberRemoved      = "member.removed"
	EventTypeExpenseCreated     = "expense.created"
	EventTypeExpenseDeleted     = "expense.deleted"
	EventTypeSettlementRecorded = "settlement.recorded"
)

// Aggregate types
const (
	AggregateTypeGroup      = "group"
	AggregateTypeExpense    = "expense"
	AggregateTypeSettlement = "settlement"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// GroupCreatedEvent payload
type GroupCreatedEvent struct {
	GroupID  string `json:"group_id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Currency string `json:"currency"`
}

// MemberJoinedEvent payload
type MemberJoinedEvent struct {
	GroupID  string `json:"group_id"`
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
}

// ExpenseCreatedEvent payload
type ExpenseCreatedEvent struct {
	ExpenseID string `json:"expense_id"`
	GroupID   string `json:"group_id"`
	PaidBy    string `json:"paid_by"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	SplitType string `json:"split_type"`
}

// ExpenseDeletedEvent payload
type ExpenseDeletedEvent struct {
	ExpenseID string `json:"expense_id"`
	GroupID   string `json:"group_id"`
}

// SettlementRecordedEvent payload
type SettlementRecordedEvent struct {
	SettlementID string `json:"settlement_id"`
	GroupID      string `json:"group_id"`
	FromMemberID string `json:"from_member_id"`
	ToMemberID   string `json:"to_member_id"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
}
