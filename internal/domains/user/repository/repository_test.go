package repository_test

import (
	"context"
	"errors"
	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/repository"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (repository.User, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock
}

func TestUserRepository_Insert(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
		wantAny bool
	}{
		{name: "inserted"},
		{
			name:    "duplicate email",
			dbErr:   &pq.Error{Code: "23505", Constraint: "users_email_key"},
			wantErr: repository.ErrDuplicateEmail,
		},
		{
			name:    "other failure",
			dbErr:   errors.New("connection reset"),
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)

			exec := mock.ExpectExec(`INSERT INTO users \(id, first_name, last_name, email`)
			if tt.dbErr != nil {
				exec.WillReturnError(tt.dbErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.Insert(context.Background(), model.User{
				ID:        "user-1",
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     "ada@example.com",
				Password:  "hash",
				RoleID:    3,
			})

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAny:
				require.Error(t, err)
				assert.NotErrorIs(t, err, repository.ErrDuplicateEmail)
			default:
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestByEmail(t *testing.T) {
	filter := repository.ByEmail("Ada@Example.com")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "((LOWER(users.email) = LOWER(:email)))", where)
	assert.Equal(t, map[string]any{"email": "Ada@Example.com"}, args)
}
