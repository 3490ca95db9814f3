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

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts an expense and its splits within the given transaction.
func (r *ExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO expenses (id, group_id, description, amount, currency, paid_by, split_type, category, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		expense.ID,
		expense.GroupID,
		expense.Description,
		decimalToNumeric(expense.Amount),
		expense.Currency,
		expense.PaidBy,
		string(expense.SplitType),
		expense.Category,
		expense.Date,
		expense.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, split := range expense.Splits {
		_, err := pgxTx.Exec(ctx, `
			INSERT INTO splits (expense_id, member_id, amount, percentage)
			VALUES ($1, $2, $3, $4)`,
			expense.ID,
			split.MemberID,
			decimalToNumeric(split.Amount),
			budgetToNumeric(split.Percentage),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an expense with its splits.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	expense, err := scanExpense(r.pool.QueryRow(ctx, `
		SELECT id, group_id, description, amount, currency, paid_by, split_type, category, date, created_at
		FROM expenses
		WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}

	splits, err := r.loadSplits(ctx, []string{expense.ID})
	if err != nil {
		return nil, err
	}
	expense.Splits = splits[expense.ID]

	return expense, nil
}

// ListByGroup retrieves a group's expenses with their splits, newest first.
func (r *ExpenseRepository) ListByGroup(ctx context.Context, groupID string) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, group_id, description, amount, currency, paid_by, split_type, category, date, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY date DESC, created_at DESC`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(expenses) == 0 {
		return expenses, nil
	}

	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}

	splits, err := r.loadSplits(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		e.Splits = splits[e.ID]
	}

	return expenses, nil
}

// Delete removes an expense and its splits within the given transaction.
func (r *ExpenseRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `DELETE FROM splits WHERE expense_id = $1`, id); err != nil {
		return err
	}

	tag, err := pgxTx.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

func (r *ExpenseRepository) loadSplits(ctx context.Context, expenseIDs []string) (map[string][]domain.Split, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT expense_id, member_id, amount, percentage
		FROM splits
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, member_id`,
		expenseIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	splits := make(map[string][]domain.Split)
	for rows.Next() {
		var (
			expenseID  string
			split      domain.Split
			amount     pgtype.Numeric
			percentage pgtype.Numeric
		)
		if err := rows.Scan(&expenseID, &split.MemberID, &amount, &percentage); err != nil {
			return nil, err
		}
		split.Amount = numericToDecimal(amount)
		split.Percentage = numericToBudget(percentage)
		splits[expenseID] = append(splits[expenseID], split)
	}

	return splits, rows.Err()
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		e         domain.Expense
		amount    pgtype.Numeric
		splitType string
	)
	if err := row.Scan(
		&e.ID,
		&e.GroupID,
		&e.Description,
		&amount,
		&e.Currency,
		&e.PaidBy,
		&splitType,
		&e.Category,
		&e.Date,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.Amount = numericToDecimal(amount)
	e.SplitType = domain.SplitType(splitType)
	return &e, nil
}
