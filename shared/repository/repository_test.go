package repository_test

import (
	"context"
	"errors"
	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/shared/dto"
	"hotel/shared/model"
	"hotel/shared/repository"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stay struct {
	ID     string `db:"id"`
	RoomID string `db:"room_id"`
	model.Metadata
	RoomNumber string `db:"room_number" table:"rooms" column:"number"`
	Ignored    string `db:"-"`
}

func (stay) GetJoinQuery() string {
	return "INNER JOIN rooms ON rooms.id = stays.room_id"
}

var stayColumns = []string{"id", "room_id", "created_at", "updated_at", "created_by", "updated_by", "room_number"}

func newRepo(t *testing.T) (repository.Repository[stay], *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.NewRepository[stay]("stay", "stays", "id", conn, mocks.NewOtel()), sqlxDB, mock
}

func byID(id string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: id, Operator: dto.FilterOperatorEq, Table: "stays"},
		},
	}
}

func TestNewRepository_InsertColumnsSkipJoins(t *testing.T) {
	repo, _, _ := newRepo(t)

	assert.Equal(t, []string{"id", "room_id", "created_at", "updated_at", "created_by", "updated_by"}, repo.InsertColumns)
}

func TestRepository_Get(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      stay
		wantErr   bool
	}{
		{
			name: "found with joined column",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(`SELECT stays.id, stays.room_id, .*rooms.number AS room_number FROM stays INNER JOIN rooms ON rooms.id = stays.room_id +WHERE \(stays.id = \$1\)`).
					ExpectQuery().
					WithArgs("s-1").
					WillReturnRows(sqlmock.NewRows(stayColumns).AddRow("s-1", "r-1", now, now, "u-1", "u-1", "101"))
			},
			want: stay{
				ID:         "s-1",
				RoomID:     "r-1",
				Metadata:   model.Metadata{CreatedAt: now, UpdatedAt: now, CreatedBy: "u-1", UpdatedBy: "u-1"},
				RoomNumber: "101",
			},
		},
		{
			name: "no rows returns zero value",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare("SELECT .* FROM stays").
					ExpectQuery().
					WithArgs("s-1").
					WillReturnRows(sqlmock.NewRows(stayColumns))
			},
			want: stay{},
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare("SELECT .* FROM stays").
					ExpectQuery().
					WithArgs("s-1").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, mock := newRepo(t)
			tt.setupMock(mock)

			got, err := repo.Get(context.Background(), byID("s-1"))

			assert.Equal(t, tt.wantErr, err != nil)
			if !tt.wantErr {
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetForUpdateTx(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectPrepare(`WHERE \(stays.id = \$1\) +FOR UPDATE OF stays$`).
		ExpectQuery().
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows(stayColumns).AddRow("s-1", "r-1", time.Time{}, time.Time{}, "", "", "101"))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	got, err := repo.GetForUpdateTx(context.Background(), tx, byID("s-1"))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, "s-1", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetForUpdateTxRequiresFilter(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()

	tx, err := db.Beginx()
	require.NoError(t, err)

	_, err = repo.GetForUpdateTx(context.Background(), tx, dto.FilterGroup{})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistTx(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectPrepare(`SELECT EXISTS\(SELECT 1 FROM stays +WHERE \(stays.room_id = \$1\) +\)`).
		ExpectQuery().
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)

	exist, err := repo.ExistTx(context.Background(), tx, dto.FilterGroup{
		Filters: []any{dto.Filter{Field: "room_id", Value: "r-1", Operator: dto.FilterOperatorEq, Table: "stays"}},
	})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.True(t, exist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAllPaginates(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectPrepare(`WHERE \(stays.room_id = \$1\) +ORDER BY stays.created_at DESC LIMIT \$2 OFFSET \$3`).
		ExpectQuery().
		WithArgs("r-1", 10, 10).
		WillReturnRows(sqlmock.NewRows(stayColumns).
			AddRow("s-1", "r-1", time.Time{}, time.Time{}, "", "", "101").
			AddRow("s-2", "r-1", time.Time{}, time.Time{}, "", "", "101"))

	got, err := repo.GetAll(
		context.Background(),
		dto.QueryParams{Page: 2, Limit: 10, SortBy: "stays.created_at", SortDir: dto.SortDirDesc},
		dto.FilterGroup{Filters: []any{dto.Filter{Field: "room_id", Value: "r-1", Operator: dto.FilterOperatorEq, Table: "stays"}}},
	)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Count(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectPrepare(`SELECT COUNT\(stays.id\) FROM stays INNER JOIN rooms`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Insert(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`INSERT INTO stays \(id, room_id, created_at, updated_at, created_by, updated_by\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WithArgs("s-1", "r-1", sqlmock.AnyArg(), sqlmock.AnyArg(), "u-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), stay{
		ID:       "s-1",
		RoomID:   "r-1",
		Metadata: model.NewMetadata("u-1", time.Now()),
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateSortsColumns(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE stays SET room_id = \$1, updated_by = \$2 +WHERE \(stays.id = \$3\)`).
		WithArgs("r-2", "admin", "s-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{"updated_by": "admin", "room_id": "r-2"}, byID("s-1"))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MutationsRequireFilter(t *testing.T) {
	repo, _, mock := newRepo(t)

	assert.Error(t, repo.Update(context.Background(), map[string]any{"room_id": "r-2"}, dto.FilterGroup{}))
	assert.Error(t, repo.Update(context.Background(), map[string]any{}, byID("s-1")))
	assert.Error(t, repo.Delete(context.Background(), dto.FilterGroup{}))

	_, err := repo.Exist(context.Background(), dto.FilterGroup{})
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM stays +WHERE \(stays.id = \$1\)`).
		WithArgs("s-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), byID("s-1")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
