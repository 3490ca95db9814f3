package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSettlement_Validate(t *testing.T) {
	tests := []struct {
		name        string
		fromID      string
		toID        string
		amount      decimal.Decimal
		expectError error
	}{
		{
			name:        "valid settlement",
			fromID:      "member-1",
			toID:        "member-2",
			amount:      decimal.NewFromInt(100),
			expectError: nil,
		},
		{
			name:        "self settlement",
			fromID:      "member-1",
			toID:        "member-1",
			amount:      decimal.NewFromInt(100),
			expectError: ErrSelfSettlement,
		},
		{
			name:        "zero amount",
			fromID:      "member-1",
			toID:        "member-2",
			amount:      decimal.Zero,
			expectError: ErrInvalidAmount,
		},
		{
			name:        "negative amount",
			fromID:      "member-1",
			toID:        "member-2",
			amount:      decimal.NewFromInt(-50),
			expectError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settlement := &Settlement{
				FromMemberID: tt.fromID,
				ToMemberID:   tt.toID,
				Amount:       tt.amount,
			}

			err := settlement.Validate()

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && err != tt.expectError {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestGroup_HasMember(t *testing.T) {
	group := &Group{
		ID: "group-1",
		Members: []Member{
			{ID: "member-1", Name: "Alice"},
			{ID: "member-2", Name: "Bob"},
		},
	}

	if !group.HasMember("member-1") {
		t.Error("expected member-1 to be in group")
	}
	if group.HasMember("member-3") {
		t.Error("did not expect member-3 to be in group")
	}
}
