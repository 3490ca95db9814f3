package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evenup/evenup/internal/domain"
	"github.com/evenup/evenup/internal/usecase"
)

// SettlementRepository implements usecase.SettlementRepository.
type SettlementRepository struct {
	pool *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository.
func NewSettlementRepository(pool *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{pool: pool}
}

// Create inserts a settlement within the given transaction.
func (r *SettlementRepository) Create(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO settlements (id, group_id, from_member_id, to_member_id, amount, currency, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		settlement.ID,
		settlement.GroupID,
		settlement.FromMemberID,
		settlement.ToMemberID,
		decimalToNumeric(settlement.Amount),
		settlement.Currency,
		settlement.Description,
		settlement.CreatedAt,
	)
	return err
}

// GetByID retrieves a settlement by ID.
func (r *SettlementRepository) GetByID(ctx context.Context, id string) (*domain.Settlement, error) {
	settlement, err := scanSettlement(r.pool.QueryRow(ctx, `
		SELECT id, group_id, from_member_id, to_member_id, amount, currency, description, created_at
		FROM settlements
		WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettlementNotFound
		}
		return nil, err
	}

	return settlement, nil
}

// ListByGroup retrieves a group's settlements, newest first.
func (r *SettlementRepository) ListByGroup(ctx context.Context, groupID string) ([]*domain.Settlement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, group_id, from_member_id, to_member_id, amount, currency, description, created_at
		FROM settlements
		WHERE group_id = $1
		ORDER BY created_at DESC`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settlements []*domain.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, settlement)
	}

	return settlements, rows.Err()
}

func scanSettlement(row pgx.Row) (*domain.Settlement, error) {
	var (
		s      domain.Settlement
		amount pgtype.Numeric
	)
	if err := row.Scan(
		&s.ID,
		&s.GroupID,
		&s.FromMemberID,
		&s.ToMemberID,
		&amount,
		&s.Currency,
		&s.Description,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	s.Amount = numericToDecimal(amount)
	return &s, nil
}
