package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservation/infras/otel/mocks"
	"reservation/infras/postgres"
	"reservation/shared/dto"
	"reservation/shared/repository"
)

type stay struct {
	ID       string    `db:"id"`
	RoomID   string    `db:"room_id"`
	CheckIn  time.Time `db:"check_in"`
	CheckOut time.Time `db:"check_out"`
}

func newRepo(t *testing.T) (repository.Repository[stay], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.NewRepository[stay]("stay", "stays", "id", conn, mocks.NewOtel()), mock
}

func TestInsert(t *testing.T) {
	repo, mock := newRepo(t)
	in := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, []string{"id", "room_id", "check_in", "check_out"}, repo.InsertColumns)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stays (id, room_id, check_in, check_out) VALUES ($1, $2, $3, $4)")).
		WithArgs("s-1", "r-1", in, in.Add(24*time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), stay{ID: "s-1", RoomID: "r-1", CheckIn: in, CheckOut: in.Add(24 * time.Hour)})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	repo, mock := newRepo(t)
	end := time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(stays.id) FROM stays")).
		ExpectQuery().
		WithArgs("r-1", end).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.Count(context.Background(), dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: "r-1", Operator: dto.FilterOperatorEq},
			dto.Filter{ArgName: "period_end", Field: "check_in", Value: end, Operator: dto.FilterOperatorLess},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNoRowsReturnsZero(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT stays.id, stays.room_id, stays.check_in, stays.check_out FROM stays")).
		ExpectQuery().
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "check_in", "check_out"}))

	got, err := repo.Get(context.Background(), dto.FilterGroup{
		Filters: []any{dto.Filter{Field: "id", Value: "missing", Operator: dto.FilterOperatorEq}},
	})

	require.NoError(t, err)
	assert.Empty(t, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAndDeleteReportAffectedRows(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()
	byID := dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: "s-1", Operator: dto.FilterOperatorEq}}}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE stays SET room_id = $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stays")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.Update(ctx, map[string]any{"room_id": "r-2"}, byID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	deleted, err := repo.Delete(ctx, byID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	_, err = repo.Delete(ctx, dto.FilterGroup{})
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
