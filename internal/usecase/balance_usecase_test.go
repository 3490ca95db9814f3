package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/domain"
	"github.com/evenup/evenup/internal/usecase"
	"github.com/evenup/evenup/internal/usecase/mocks"
)

func seedBalanceGroup(t *testing.T, groupRepo *mocks.MockGroupRepository, expenseRepo *mocks.MockExpenseRepository) {
	t.Helper()

	groupRepo.Create(context.Background(), &domain.Group{
		ID:       "grp-1",
		Name:     "Flat",
		Code:     "FLAT01",
		Currency: "EUR",
		Members: []domain.Member{
			{ID: "alice", GroupID: "grp-1", Name: "Alice"},
			{ID: "bob", GroupID: "grp-1", Name: "Bob"},
			{ID: "carol", GroupID: "grp-1", Name: "Carol"},
		},
	})

	expenseRepo.Create(context.Background(), nil, &domain.Expense{
		ID:      "exp-1",
		GroupID: "grp-1",
		Amount:  decimal.NewFromInt(90),
		PaidBy:  "alice",
		Splits: []domain.Split{
			{MemberID: "alice", Amount: decimal.NewFromInt(30)},
			{MemberID: "bob", Amount: decimal.NewFromInt(30)},
			{MemberID: "carol", Amount: decimal.NewFromInt(30)},
		},
	})
}

func TestBalanceUseCase_GetBalances(t *testing.T) {
	groupRepo := mocks.NewMockGroupRepository()
	expenseRepo := mocks.NewMockExpenseRepository()
	settlementRepo := mocks.NewMockSettlementRepository()
	seedBalanceGroup(t, groupRepo, expenseRepo)

	uc := newBalanceUseCase(groupRepo, expenseRepo, settlementRepo)

	balances, err := uc.GetBalances(context.Background(), "grp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := map[string]string{"alice": "60", "bob": "-30", "carol": "-30"}
	for id, want := range expected {
		if !balances[id].Equal(decimal.RequireFromString(want)) {
			t.Errorf("member %s: expected %s, got %s", id, want, balances[id])
		}
	}

	if _, err := uc.GetBalances(context.Background(), "nope"); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestBalanceUseCase_GetBalances_UsesCache(t *testing.T) {
	groupRepo := mocks.NewMockGroupRepository()
	expenseRepo := mocks.NewMockExpenseRepository()
	settlementRepo := mocks.NewMockSettlementRepository()
	seedBalanceGroup(t, groupRepo, expenseRepo)

	repoReads := 0
	expenseRepo.ListByGroupFunc = func(ctx context.Context, groupID string) ([]*domain.Expense, error) {
		repoReads++
		return []*domain.Expense{
			{
				ID:      "exp-1",
				GroupID: "grp-1",
				Amount:  decimal.NewFromInt(90),
				PaidBy:  "alice",
				Splits: []domain.Split{
					{MemberID: "alice", Amount: decimal.NewFromInt(30)},
					{MemberID: "bob", Amount: decimal.NewFromInt(30)},
					{MemberID: "carol", Amount: decimal.NewFromInt(30)},
				},
			},
		}, nil
	}

	uc := newBalanceUseCase(groupRepo, expenseRepo, settlementRepo)

	first, err := uc.GetBalances(context.Background(), "grp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.GetBalances(context.Background(), "grp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repoReads != 1 {
		t.Errorf("expected 1 repository read, got %d", repoReads)
	}
	if !first["alice"].Equal(second["alice"]) {
		t.Errorf("cached balances differ: %s vs %s", first["alice"], second["alice"])
	}

	// Invalidation forces a recomputation.
	uc.Invalidate(context.Background(), "grp-1")
	if _, err := uc.GetBalances(context.Background(), "grp-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repoReads != 2 {
		t.Errorf("expected 2 repository reads after invalidation, got %d", repoReads)
	}
}

func TestBalanceUseCase_GetBalances_WithoutCache(t *testing.T) {
	groupRepo := mocks.NewMockGroupRepository()
	expenseRepo := mocks.NewMockExpenseRepository()
	settlementRepo := mocks.NewMockSettlementRepository()
	seedBalanceGroup(t, groupRepo, expenseRepo)

	uc := usecase.NewBalanceUseCase(groupRepo, expenseRepo, settlementRepo, nil, nil)

	balances, err := uc.GetBalances(context.Background(), "grp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balances["alice"].Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected alice balance 60, got %s", balances["alice"])
	}
}

func TestBalanceUseCase_GetSimplifiedDebts(t *testing.T) {
	groupRepo := mocks.NewMockGroupRepository()
	expenseRepo := mocks.NewMockExpenseRepository()
	settlementRepo := mocks.NewMockSettlementRepository()
	seedBalanceGroup(t, groupRepo, expenseRepo)

	uc := newBalanceUseCase(groupRepo, expenseRepo, settlementRepo)

	debts, err := uc.GetSimplifiedDebts(context.Background(), "grp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(debts) != 2 {
		t.Fatalf("expected 2 debts, got %d", len(debts))
	}
	for _, d := range debts {
		if d.ToMemberID != "alice" {
			t.Errorf("expected all payments to alice, got %+v", d)
		}
		if !d.Amount.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected amount 30, got %s", d.Amount)
		}
	}
}

func TestBalanceUseCase_CheckConsistency(t *testing.T) {
	groupRepo := mocks.NewMockGroupRepository()
	expenseRepo := mocks.NewMockExpenseRepository()
	settlementRepo := mocks.NewMockSettlementRepository()
	seedBalanceGroup(t, groupRepo, expenseRepo)

	uc := newBalanceUseCase(groupRepo, expenseRepo, settlementRepo)

	t.Run("consistent history", func(t *testing.T) {
		ok, sum, err := uc.CheckConsistency(context.Background(), "grp-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Errorf("expected consistent balances, sum was %s", sum)
		}
	})

	t.Run("corrupted history", func(t *testing.T) {
		// A split referencing nobody in particular leaves the payer
		// over-credited relative to the roster.
		expenseRepo.Create(context.Background(), nil, &domain.Expense{
			ID:      "exp-bad",
			GroupID: "grp-1",
			Amount:  decimal.NewFromInt(10),
			PaidBy:  "alice",
			Splits:  []domain.Split{},
		})

		ok, sum, err := uc.CheckConsistency(context.Background(), "grp-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected inconsistency to be reported")
		}
		if !sum.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected drift of 10, got %s", sum)
		}
	})
}
