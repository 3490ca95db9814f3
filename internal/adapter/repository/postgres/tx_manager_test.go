package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func TestTxManager_SettlementWriteCommits(t *testing.T) {
	pool := newSettlementMockPool(t)
	pool.ExpectBegin()
	pool.ExpectExec("INSERT INTO settlements").
		WithArgs("stl-1", "grp-1", "bob", "alice", "20.00").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	manager := newTxManagerWithPool(pool)
	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	pgxTx := tx.(*Tx).PgxTx()
	if _, err := pgxTx.Exec(context.Background(),
		`INSERT INTO settlements (id, group_id, from_member, to_member, amount) VALUES ($1, $2, $3, $4, $5)`,
		"stl-1", "grp-1", "bob", "alice", "20.00"); err != nil {
		t.Fatalf("exec in tx: %v", err)
	}

	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTxManager_BeginError(t *testing.T) {
	pool := newSettlementMockPool(t)
	poolDown := errors.New("pool closed")
	pool.ExpectBegin().WillReturnError(poolDown)

	manager := newTxManagerWithPool(pool)
	tx, err := manager.Begin(context.Background())
	if !errors.Is(err, poolDown) {
		t.Fatalf("want pool error, got err=%v tx=%v", err, tx)
	}
}

func TestTxManager_RollbackDiscardsWrites(t *testing.T) {
	pool := newSettlementMockPool(t)
	pool.ExpectBegin()
	pool.ExpectRollback()

	manager := newTxManagerWithPool(pool)
	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	if err := tx.Rollback(context.Background()); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func newSettlementMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}
