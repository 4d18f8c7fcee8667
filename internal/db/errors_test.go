package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestWrapErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no-rows", err: pgx.ErrNoRows, want: ErrNotFound},
		{name: "unique", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: ErrConflict},
		{name: "foreign-key", err: &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, want: ErrInvalidReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapErr("db.Test", tt.err)
			require.ErrorIs(t, got, tt.want)
			require.Contains(t, got.Error(), "db.Test")
		})
	}
}

func TestWrapErrPassesThroughOtherErrors(t *testing.T) {
	base := errors.New("boom")
	got := wrapErr("db.Test", base)
	require.ErrorIs(t, got, base)
	require.NotErrorIs(t, got, ErrNotFound)
	require.NoError(t, wrapErr("db.Test", nil))
}
