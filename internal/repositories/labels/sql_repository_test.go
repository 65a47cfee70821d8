package labels

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/models"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db), mock, db
}

func TestInsert_ReturnsGeneratedID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO label (name, status) VALUES (?, ?) RETURNING id`)).
		WithArgs("qwerty", "ACTIVE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	id, err := repo.Insert(context.Background(), &models.Label{Name: "qwerty"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestInsert_NoGeneratedKey(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO label`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Insert(context.Background(), &models.Label{Name: "x"})
	require.ErrorIs(t, err, common.ErrNoGeneratedKey)
}

func TestInsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO label`).WillReturnError(errors.New("db down"))

	_, err := repo.Insert(context.Background(), &models.Label{Name: "x"})
	require.ErrorContains(t, err, "db error: db down")
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		check    func(t *testing.T, err error)
	}{
		{"one row", 1, func(t *testing.T, err error) { require.NoError(t, err) }},
		{"missing", 0, func(t *testing.T, err error) { require.ErrorIs(t, err, common.ErrorNotFound) }},
		{"too many", 2, func(t *testing.T, err error) { require.ErrorContains(t, err, "unexpected rows affected: 2") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			mock.ExpectExec(regexp.QuoteMeta(`UPDATE label SET name = ?, status = ? WHERE id = ?`)).
				WithArgs("asdf", "ACTIVE", int64(1)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			tt.check(t, repo.Update(context.Background(), &models.Label{ID: 1, Name: "asdf"}))
		})
	}
}

func TestUpdate_RowsAffectedError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE label`).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("rows-err")))

	err := repo.Update(context.Background(), &models.Label{ID: 1, Name: "asdf"})
	require.ErrorContains(t, err, "rows affected error: rows-err")
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, status FROM label\s+WHERE .* AND id = \?`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).AddRow(int64(1), "asdf", "ACTIVE"))

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, &models.Label{ID: 1, Name: "asdf", Status: models.StatusActive}, got)
}

func TestGetByID_NotFoundIsNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, status FROM label`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}))

	got, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, status FROM label\s+WHERE .* ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).
			AddRow(int64(1), "go", "ACTIVE").
			AddRow(int64(2), "sql", nil))

	got, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sql", got[1].Name)
	assert.Equal(t, models.StatusActive, got[1].Status)
}

func TestGetAll_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, status FROM label`).WillReturnError(errors.New("db err"))

	_, err := repo.GetAll(context.Background())
	require.ErrorContains(t, err, "failed to select labels: db err")
}

func TestSoftDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE label SET status = 'DELETED'\s+WHERE id = \?`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE label SET status = 'DELETED'`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SoftDelete(context.Background(), 3))
	require.ErrorIs(t, repo.SoftDelete(context.Background(), 4), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHardDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM label WHERE id = ?`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM label`).
		WithArgs(int64(4)).
		WillReturnError(errors.New("fk"))

	require.NoError(t, repo.HardDelete(context.Background(), 3))
	require.ErrorContains(t, repo.HardDelete(context.Background(), 4), "failed to delete label: fk")
}

func TestCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM label`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
