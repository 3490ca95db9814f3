package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/domain"
	"github.com/evenup/evenup/internal/infrastructure/metrics"
)

// GroupUseCase handles group and membership business logic.
type GroupUseCase struct {
	groupRepo GroupRepository
	balanceUC *BalanceUseCase
	auditRepo AuditRepository
	idGen     IDGenerator
	codeGen   CodeGenerator
	metrics   *metrics.Metrics
}

// NewGroupUseCase creates a new GroupUseCase.
func NewGroupUseCase(
	groupRepo GroupRepository,
	balanceUC *BalanceUseCase,
	auditRepo AuditRepository,
	idGen IDGenerator,
	codeGen CodeGenerator,
	m *metrics.Metrics,
) *GroupUseCase {
	return &GroupUseCase{
		groupRepo: groupRepo,
		balanceUC: balanceUC,
		auditRepo: auditRepo,
		idGen:     idGen,
		codeGen:   codeGen,
		metrics:   m,
	}
}

// MemberInput represents one member to add to a group.
type MemberInput struct {
	Name  string
	Email string
}

// CreateGroupInput represents input for creating a group.
type CreateGroupInput struct {
	Name        string
	Description string
	Currency    string
	Budget      *decimal.Decimal
	CreatedBy   string
	Members     []MemberInput
}

// CreateGroup creates a new group with its initial members and a fresh join
// code. Code collisions are retried a bounded number of times.
func (uc *GroupUseCase) CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.Group, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}
	if input.Budget != nil && input.Budget.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()

	group := &domain.Group{
		ID:          uc.idGen.Generate(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Currency:    strings.ToUpper(strings.TrimSpace(input.Currency)),
		Budget:      input.Budget,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, m := range input.Members {
		if err := domain.ValidateName(m.Name); err != nil {
			return nil, fmt.Errorf("%w: member %q", domain.ErrInvalidMemberName, m.Name)
		}
		if err := domain.ValidateEmail(m.Email); err != nil {
			return nil, err
		}

		group.Members = append(group.Members, domain.Member{
			ID:       uc.idGen.Generate(),
			GroupID:  group.ID,
			Name:     strings.TrimSpace(m.Name),
			Email:    strings.TrimSpace(strings.ToLower(m.Email)),
			JoinedAt: now,
		})
	}

	var err error
	for attempt := 0; attempt < GroupCodeAttempts; attempt++ {
		group.Code = uc.codeGen.Generate()

		err = uc.groupRepo.Create(ctx, group)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateCode) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.GroupsCreated.Inc()
	}

	uc.audit(ctx, domain.AuditActionGroupCreate, group.ID, domain.MarshalState(group))

	return group, nil
}

// GetGroup retrieves a group with its member roster.
func (uc *GroupUseCase) GetGroup(ctx context.Context, id string) (*domain.Group, error) {
	return uc.groupRepo.GetByID(ctx, id)
}

// ListGroupsInput represents input for listing groups.
type ListGroupsInput struct {
	Limit  int
	Offset int
}

// ListGroups lists groups with pagination.
func (uc *GroupUseCase) ListGroups(ctx context.Context, input ListGroupsInput) ([]*domain.Group, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.groupRepo.List(ctx, limit, offset)
}

// JoinGroupInput represents input for joining a group by code.
type JoinGroupInput struct {
	Code   string
	Member MemberInput
}

// JoinGroup adds a new member to the group identified by the join code.
func (uc *GroupUseCase) JoinGroup(ctx context.Context, input JoinGroupInput) (*domain.Group, *domain.Member, error) {
	if err := domain.ValidateGroupCode(input.Code); err != nil {
		return nil, nil, err
	}

	group, err := uc.groupRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(input.Code)))
	if err != nil {
		return nil, nil, err
	}

	member, err := uc.addMember(ctx, group, input.Member)
	if err != nil {
		return nil, nil, err
	}

	uc.audit(ctx, domain.AuditActionGroupJoin, group.ID, domain.MarshalState(member))

	return group, member, nil
}

// AddMember adds a member directly to a group by id.
func (uc *GroupUseCase) AddMember(ctx context.Context, groupID string, input MemberInput) (*domain.Member, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	member, err := uc.addMember(ctx, group, input)
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionMemberAdd, group.ID, domain.MarshalState(member))

	return member, nil
}

func (uc *GroupUseCase) addMember(ctx context.Context, group *domain.Group, input MemberInput) (*domain.Member, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, fmt.Errorf("%w: member %q", domain.ErrInvalidMemberName, input.Name)
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	member := &domain.Member{
		ID:       uc.idGen.Generate(),
		GroupID:  group.ID,
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(strings.ToLower(input.Email)),
		JoinedAt: time.Now().UTC(),
	}

	if err := uc.groupRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	group.Members = append(group.Members, *member)
	uc.balanceUC.Invalidate(ctx, group.ID)

	if uc.metrics != nil {
		uc.metrics.MembersJoined.Inc()
	}

	return member, nil
}

// RemoveMember removes a member from a group. A member whose balance is not
// settled cannot be removed; their history would no longer sum to zero.
func (uc *GroupUseCase) RemoveMember(ctx context.Context, groupID, memberID string) error {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	if !group.HasMember(memberID) {
		return domain.ErrMemberNotFound
	}

	balances, err := uc.balanceUC.GetBalances(ctx, groupID)
	if err != nil {
		return err
	}

	if balance, ok := balances[memberID]; ok && !balance.IsZero() {
		return domain.ErrMemberHasDebt
	}

	if err := uc.groupRepo.RemoveMember(ctx, groupID, memberID); err != nil {
		return err
	}

	uc.balanceUC.Invalidate(ctx, groupID)

	if uc.metrics != nil {
		uc.metrics.MembersRemoved.Inc()
	}

	uc.audit(ctx, domain.AuditActionMemberRemove, groupID, domain.JSON{"member_id": memberID})

	return nil
}

func (uc *GroupUseCase) audit(ctx context.Context, action domain.AuditAction, resourceID string, after domain.JSON) {
	if uc.auditRepo == nil {
		return
	}

	// Audit failures must not fail the operation they describe.
	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		Action:       string(action),
		ResourceType: domain.AggregateTypeGroup,
		ResourceID:   resourceID,
		AfterState:   after,
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
