package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "member referenced by a split",
			err:  &pgconn.PgError{Code: pgErrForeignKeyViolation, ConstraintName: "splits_member_id_fkey"},
			want: true,
		},
		{
			name: "wrapped foreign key violation",
			err:  fmt.Errorf("delete member: %w", &pgconn.PgError{Code: pgErrForeignKeyViolation}),
			want: true,
		},
		{
			name: "unique violation is not a foreign key violation",
			err:  &pgconn.PgError{Code: pgErrUniqueViolation},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isForeignKeyViolation(tt.err); got != tt.want {
				t.Fatalf("isForeignKeyViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "groups_code_key"}) {
		t.Fatal("expected duplicate code insert to be detected")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatal("plain errors are not unique violations")
	}
}
