package integration

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/adapter/repository/postgres"
	"github.com/evenup/evenup/internal/domain"
	"github.com/evenup/evenup/internal/infrastructure/eventpublisher"
	"github.com/evenup/evenup/internal/usecase"
	"github.com/evenup/evenup/tests/testutil"
)

func TestOutboxEventCreation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	groupRepo := postgres.NewGroupRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	settlementRepo := postgres.NewSettlementRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()

	balanceUC := usecase.NewBalanceUseCase(groupRepo, expenseRepo, settlementRepo, nil, nil)
	expenseUC := usecase.NewExpenseUseCase(txManager, groupRepo, expenseRepo, outboxRepo, nil, balanceUC, idGen, nil)

	group := testDB.CreateTestGroup(ctx, "Trip", "USD", "Alice", "Bob")

	expense, err := expenseUC.AddExpense(ctx, usecase.AddExpenseInput{
		GroupID:   group.ID,
		Amount:    decimal.NewFromInt(60),
		PaidBy:    group.Members[0].ID,
		SplitType: domain.SplitTypeEqual,
	})
	if err != nil {
		t.Fatalf("failed to add expense: %v", err)
	}

	events, err := outboxRepo.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to get unpublished events: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected at least one unpublished event")
	}

	var expenseEvent *domain.OutboxEvent
	for _, event := range events {
		if event.EventType == domain.EventTypeExpenseCreated && event.AggregateID == expense.ID {
			expenseEvent = event
			break
		}
	}
	if expenseEvent == nil {
		t.Fatal("expense created event not found in outbox")
	}

	if expenseEvent.AggregateType != domain.AggregateTypeExpense {
		t.Errorf("expected aggregate type %s, got %s", domain.AggregateTypeExpense, expenseEvent.AggregateType)
	}
	if expenseEvent.Published {
		t.Error("event should not be published yet")
	}
	if expenseEvent.Payload == nil {
		t.Fatal("event payload is nil")
	}
	if expenseEvent.Payload["expense_id"] != expense.ID {
		t.Errorf("payload expense_id mismatch: expected %s, got %v", expense.ID, expenseEvent.Payload["expense_id"])
	}
	if expenseEvent.Payload["group_id"] != group.ID {
		t.Error("payload group_id mismatch")
	}
}

func TestOutboxPublishing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	groupRepo := postgres.NewGroupRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	settlementRepo := postgres.NewSettlementRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()

	balanceUC := usecase.NewBalanceUseCase(groupRepo, expenseRepo, settlementRepo, nil, nil)
	expenseUC := usecase.NewExpenseUseCase(txManager, groupRepo, expenseRepo, outboxRepo, nil, balanceUC, idGen, nil)

	group := testDB.CreateTestGroup(ctx, "Trip", "USD", "Alice", "Bob")

	if _, err := expenseUC.AddExpense(ctx, usecase.AddExpenseInput{
		GroupID:   group.ID,
		Amount:    decimal.NewFromInt(30),
		PaidBy:    group.Members[0].ID,
		SplitType: domain.SplitTypeEqual,
	}); err != nil {
		t.Fatalf("failed to add expense: %v", err)
	}

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(zerolog.Nop()),
		Logger:     zerolog.Nop(),
		Interval:   50 * time.Millisecond,
	})

	pubCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = publisher.Start(pubCtx)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for {
		events, err := outboxRepo.GetUnpublished(ctx, 10)
		if err != nil {
			t.Fatalf("failed to get unpublished events: %v", err)
		}
		if len(events) == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("events still unpublished after deadline: %d remaining", len(events))
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	<-done
}
