package postgres_test

import (
	"context"
	"errors"
	"hotel/infras/postgres"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return &postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mock
}

func TestWithinTransaction(t *testing.T) {
	errBusiness := errors.New("room unavailable")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		fn        postgres.TxFunc
		wantErr   bool
		wantIs    error
	}{
		{
			name: "commits on success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE rooms").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				_, err := tx.ExecContext(ctx, "UPDATE rooms SET status_id = 2")
				return err
			},
		},
		{
			name: "rolls back when fn fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn: func(context.Context, *sqlx.Tx) error {
				return errBusiness
			},
			wantErr: true,
			wantIs:  errBusiness,
		},
		{
			name: "begin fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
			},
			fn: func(context.Context, *sqlx.Tx) error {
				return errors.New("fn must not run without a transaction")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newConnection(t)
			tt.setupMock(mock)

			err := postgres.NewTransactor(conn).WithinTransaction(context.Background(), tt.fn)

			assert.Equal(t, tt.wantErr, err != nil)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWithinTransactionRollsBackOnPanic(t *testing.T) {
	conn, mock := newConnection(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = postgres.NewTransactor(conn).WithinTransaction(context.Background(), func(context.Context, *sqlx.Tx) error {
			panic("boom")
		})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestErrorCodes(t *testing.T) {
	exclusion := &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"}
	unique := &pq.Error{Code: "23505"}

	assert.True(t, postgres.IsExclusionViolation(exclusion))
	assert.False(t, postgres.IsExclusionViolation(unique))
	assert.True(t, postgres.IsUniqueViolation(unique))
	assert.False(t, postgres.HasCode(errors.New("plain"), "23P01"))
}
