package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/domain"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

// GroupRepository implements usecase.GroupRepository.
type GroupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

// Create inserts a group together with its initial members. A join code
// collision surfaces as domain.ErrDuplicateCode so the caller can retry with
// a fresh code.
func (r *GroupRepository) Create(ctx context.Context, group *domain.Group) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO groups (id, name, description, code, currency, budget, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		group.ID,
		group.Name,
		group.Description,
		group.Code,
		group.Currency,
		budgetToNumeric(group.Budget),
		group.CreatedBy,
		group.CreatedAt,
		group.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return err
	}

	for i := range group.Members {
		if err := insertMember(ctx, tx, &group.Members[i]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a group with its full member roster.
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	return r.getBy(ctx, "id", id)
}

// GetByCode retrieves a group by its join code.
func (r *GroupRepository) GetByCode(ctx context.Context, code string) (*domain.Group, error) {
	return r.getBy(ctx, "code", code)
}

func (r *GroupRepository) getBy(ctx context.Context, column, value string) (*domain.Group, error) {
	query := `
		SELECT id, name, description, code, currency, budget, created_by, created_at, updated_at
		FROM groups
		WHERE ` + column + ` = $1`

	group, err := scanGroup(r.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}

	members, err := r.loadMembers(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	group.Members = members

	return group, nil
}

// List lists groups with pagination, newest first.
func (r *GroupRepository) List(ctx context.Context, limit, offset int) ([]*domain.Group, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, code, currency, budget, created_by, created_at, updated_at
		FROM groups
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, group := range groups {
		members, err := r.loadMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		group.Members = members
	}

	return groups, nil
}

// AddMember inserts a member into its group.
func (r *GroupRepository) AddMember(ctx context.Context, member *domain.Member) error {
	return insertMember(ctx, r.pool, member)
}

// RemoveMember deletes a member from a group. Expense, split and settlement
// rows keep their member references for history, so a member who ever paid,
// owed or settled cannot be deleted.
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, memberID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM members WHERE group_id = $1 AND id = $2`,
		groupID, memberID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrMemberHasHistory
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (r *GroupRepository) loadMembers(ctx context.Context, groupID string) ([]domain.Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, group_id, name, email, joined_at
		FROM members
		WHERE group_id = $1
		ORDER BY joined_at, id`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.GroupID, &m.Name, &m.Email, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertMember(ctx context.Context, db execer, member *domain.Member) error {
	_, err := db.Exec(ctx, `
		INSERT INTO members (id, group_id, name, email, joined_at)
		VALUES ($1, $2, $3, $4, $5)`,
		member.ID,
		member.GroupID,
		member.Name,
		member.Email,
		member.JoinedAt,
	)
	return err
}

func scanGroup(row pgx.Row) (*domain.Group, error) {
	var (
		g      domain.Group
		budget pgtype.Numeric
	)
	if err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.Code,
		&g.Currency,
		&budget,
		&g.CreatedBy,
		&g.CreatedAt,
		&g.UpdatedAt,
	); err != nil {
		return nil, err
	}
	g.Budget = numericToBudget(budget)
	return &g, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKeyViolation
}

// Numeric conversion helpers shared by the repositories.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func budgetToNumeric(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}
	return decimalToNumeric(*d)
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func numericToBudget(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := numericToDecimal(n)
	return &d
}
