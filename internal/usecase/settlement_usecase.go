package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/calculator"
	"github.com/evenup/evenup/internal/domain"
	"github.com/evenup/evenup/internal/infrastructure/metrics"
)

// SettlementUseCase handles settlement business logic. A settlement is only
// persisted when the settlement validator admits it against balances computed
// from the group's full history.
type SettlementUseCase struct {
	txManager      TransactionManager
	groupRepo      GroupRepository
	expenseRepo    ExpenseRepository
	settlementRepo SettlementRepository
	outboxRepo     OutboxRepository
	auditRepo      AuditRepository
	balanceUC      *BalanceUseCase
	idGen          IDGenerator
	metrics        *metrics.Metrics
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	txManager TransactionManager,
	groupRepo GroupRepository,
	expenseRepo ExpenseRepository,
	settlementRepo SettlementRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	balanceUC *BalanceUseCase,
	idGen IDGenerator,
	m *metrics.Metrics,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:      txManager,
		groupRepo:      groupRepo,
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		outboxRepo:     outboxRepo,
		auditRepo:      auditRepo,
		balanceUC:      balanceUC,
		idGen:          idGen,
		metrics:        m,
	}
}

// RecordSettlementInput represents input for recording a settlement.
type RecordSettlementInput struct {
	GroupID      string
	FromMemberID string
	ToMemberID   string
	Amount       decimal.Decimal
	Description  string
}

// RecordSettlement validates and persists a settlement payment.
func (uc *SettlementUseCase) RecordSettlement(ctx context.Context, input RecordSettlementInput) (*domain.Settlement, error) {
	group, err := uc.groupRepo.GetByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	settlement := &domain.Settlement{
		ID:           uc.idGen.Generate(),
		GroupID:      group.ID,
		FromMemberID: input.FromMemberID,
		ToMemberID:   input.ToMemberID,
		Amount:       input.Amount.Round(2),
		Currency:     group.Currency,
		Description:  input.Description,
		CreatedAt:    now,
	}

	if err := settlement.Validate(); err != nil {
		return nil, err
	}

	// Balances are recomputed here rather than read through the cache: the
	// admissibility decision must be made against the authoritative history.
	expenses, err := uc.expenseRepo.ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	settlements, err := uc.settlementRepo.ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	balances := calculator.CalculateBalances(group, expenses, settlements)

	if !calculator.IsValidSettlement(group, balances, settlement) {
		if uc.metrics != nil {
			uc.metrics.SettlementsRejected.Inc()
		}
		uc.audit(ctx, domain.AuditActionSettlementReject, settlement.ID, domain.AuditStatusFailure, domain.MarshalState(settlement))

		return nil, domain.ErrSettlementRejected
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.settlementRepo.Create(ctx, tx, settlement); err != nil {
		return nil, err
	}

	if err := uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   settlement.ID,
		AggregateType: domain.AggregateTypeSettlement,
		EventType:     domain.EventTypeSettlementRecorded,
		Payload: domain.MarshalState(domain.SettlementRecordedEvent{
			SettlementID: settlement.ID,
			GroupID:      settlement.GroupID,
			FromMemberID: settlement.FromMemberID,
			ToMemberID:   settlement.ToMemberID,
			Amount:       settlement.Amount.String(),
			Currency:     settlement.Currency,
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
		uc.metrics.SettlementsRecorded.Inc()
		amount, _ := settlement.Amount.Float64()
		uc.metrics.SettlementAmount.Observe(amount)
	}

	uc.audit(ctx, domain.AuditActionSettlementCreate, settlement.ID, domain.AuditStatusSuccess, domain.MarshalState(settlement))

	return settlement, nil
}

// ListSettlements lists all settlements of a group.
func (uc *SettlementUseCase) ListSettlements(ctx context.Context, groupID string) ([]*domain.Settlement, error) {
	if _, err := uc.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return uc.settlementRepo.ListByGroup(ctx, groupID)
}

// MaxSettlementAmount returns the largest admissible payment between two
// members given the group's current balances.
func (uc *SettlementUseCase) MaxSettlementAmount(ctx context.Context, groupID, fromMemberID, toMemberID string) (decimal.Decimal, error) {
	balances, err := uc.balanceUC.GetBalances(ctx, groupID)
	if err != nil {
		return decimal.Zero, err
	}

	return calculator.MaxSettlementAmount(balances, fromMemberID, toMemberID), nil
}

func (uc *SettlementUseCase) audit(ctx context.Context, action domain.AuditAction, resourceID string, status domain.AuditStatus, after domain.JSON) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		Action:       string(action),
		ResourceType: domain.AggregateTypeSettlement,
		ResourceID:   resourceID,
		AfterState:   after,
		Status:       string(status),
		CreatedAt:    time.Now().UTC(),
	})
}
