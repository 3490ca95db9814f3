package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/calculator"
	"github.com/evenup/evenup/internal/domain"
	"github.com/evenup/evenup/internal/infrastructure/metrics"
)

// ExpenseUseCase handles expense business logic.
type ExpenseUseCase struct {
	txManager   TransactionManager
	groupRepo   GroupRepository
	expenseRepo ExpenseRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	balanceUC   *BalanceUseCase
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	txManager TransactionManager,
	groupRepo GroupRepository,
	expenseRepo ExpenseRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	balanceUC *BalanceUseCase,
	idGen IDGenerator,
	m *metrics.Metrics,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		txManager:   txManager,
		groupRepo:   groupRepo,
		expenseRepo: expenseRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		balanceUC:   balanceUC,
		idGen:       idGen,
		metrics:     m,
	}
}

// SplitEntry is one member's requested share in an expense request.
type SplitEntry struct {
	MemberID   string
	Amount     *decimal.Decimal
	Percentage *decimal.Decimal
}

// AddExpenseInput represents input for creating an expense.
type AddExpenseInput struct {
	GroupID     string
	Description string
	Amount      decimal.Decimal
	PaidBy      string
	SplitType   domain.SplitType
	Splits      []SplitEntry
	Category    string
	Date        *time.Time
}

// AddExpense validates an expense against the group roster, computes its
// splits server-side, and persists it together with its outbox event.
func (uc *ExpenseUseCase) AddExpense(ctx context.Context, input AddExpenseInput) (*domain.Expense, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	group, err := uc.groupRepo.GetByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	// The engine tolerates foreign member ids; the entry path does not.
	if !group.HasMember(input.PaidBy) {
		return nil, domain.ErrUnknownMember
	}
	for _, s := range input.Splits {
		if !group.HasMember(s.MemberID) {
			return nil, domain.ErrUnknownMember
		}
	}

	var splitInputs []calculator.SplitInput
	if len(input.Splits) == 0 && input.SplitType == domain.SplitTypeEqual {
		// An equal expense with no explicit participants splits across the
		// whole roster.
		for _, m := range group.Members {
			splitInputs = append(splitInputs, calculator.SplitInput{MemberID: m.ID})
		}
	} else {
		for _, s := range input.Splits {
			splitInputs = append(splitInputs, calculator.SplitInput{
				MemberID:   s.MemberID,
				Amount:     s.Amount,
				Percentage: s.Percentage,
			})
		}
	}

	splits, err := calculator.ComputeSplits(input.SplitType, input.Amount, splitInputs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := now
	if input.Date != nil {
		date = *input.Date
	}

	expense := &domain.Expense{
		ID:          uc.idGen.Generate(),
		GroupID:     group.ID,
		Description: input.Description,
		Amount:      input.Amount.Round(2),
		Currency:    group.Currency,
		PaidBy:      input.PaidBy,
		SplitType:   input.SplitType,
		Splits:      splits,
		Category:    input.Category,
		Date:        date,
		CreatedAt:   now,
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.expenseRepo.Create(ctx, tx, expense); err != nil {
		return nil, err
	}

	if err := uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   expense.ID,
		AggregateType: domain.AggregateTypeExpense,
		EventType:     domain.EventTypeExpenseCreated,
		Payload: domain.MarshalState(domain.ExpenseCreatedEvent{
			ExpenseID: expense.ID,
			GroupID:   expense.GroupID,
			PaidBy:    expense.PaidBy,
			Amount:    expense.Amount.String(),
			Currency:  expense.Currency,
			SplitType: string(expense.SplitType),
		}),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.balanceUC.Invalidate(ctx, group.ID)

	if uc.metrics != nil {
		uc.metrics.ExpensesCreated.WithLabelValues(string(expense.SplitType)).Inc()
		amount, _ := expense.Amount.Float64()
		uc.metrics.ExpenseAmount.Observe(amount)
	}

	uc.audit(ctx, domain.AuditActionExpenseCreate, expense.ID, domain.MarshalState(expense))

	return expense, nil
}

// GetExpense retrieves an expense by ID.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, id string) (*domain.Expense, error) {
	return uc.expenseRepo.GetByID(ctx, id)
}

// ListExpenses lists all expenses of a group.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, groupID string) ([]*domain.Expense, error) {
	if _, err := uc.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return uc.expenseRepo.ListByGroup(ctx, groupID)
}

// DeleteExpense removes an expense and emits the corresponding event.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	expense, err := uc.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.GroupID != groupID {
		return domain.ErrExpenseNotFound
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.expenseRepo.Delete(ctx, tx, expenseID); err != nil {
		return err
	}

	if err := uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   expenseID,
		AggregateType: domain.AggregateTypeExpense,
		EventType:     domain.EventTypeExpenseDeleted,
		Payload: domain.MarshalState(domain.ExpenseDeletedEvent{
			ExpenseID: expenseID,
			GroupID:   groupID,
		}),
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.balanceUC.Invalidate(ctx, groupID)

	if uc.metrics != nil {
		uc.metrics.ExpensesDeleted.Inc()
	}

	uc.audit(ctx, domain.AuditActionExpenseDelete, expenseID, nil)

	return nil
}

func (uc *ExpenseUseCase) audit(ctx context.Context, action domain.AuditAction, resourceID string, after domain.JSON) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		Action:       string(action),
		ResourceType: domain.AggregateTypeExpense,
		ResourceID:   resourceID,
		AfterState:   after,
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
