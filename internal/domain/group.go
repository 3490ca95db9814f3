package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Group is a named collection of members sharing expenses. New members join
// with the group's code.
type Group struct {
	ID          string
	Name        string
	Description string
	Code        string
	Currency    string
	Budget      *decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Members     []Member
}

// Member is a participant in a group who can pay for or be charged a share of
// an expense.
type Member struct {
	ID       string
	GroupID  string
	Name     string
	Email    string
	JoinedAt time.Time
}

// HasMember reports whether memberID belongs to the group.
func (g *Group) HasMember(memberID string) bool {
	for _, m := range g.Members {
		if m.ID == memberID {
			return true
		}
	}
	return false
}

// MemberIDs returns the ids of all members in roster order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}
