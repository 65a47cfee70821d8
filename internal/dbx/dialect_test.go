package dbx

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		in      string
		want    string
	}{
		{"sqlite untouched", SQLite, "SELECT * FROM post WHERE id = ?", "SELECT * FROM post WHERE id = ?"},
		{"postgres numbered", Postgres, "UPDATE label SET name = ? WHERE id = ?", "UPDATE label SET name = $1 WHERE id = $2"},
		{"postgres literal kept", Postgres, "SELECT '?' FROM t WHERE a = ?", "SELECT '?' FROM t WHERE a = $1"},
		{"postgres no placeholders", Postgres, "SELECT 1", "SELECT 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.Rebind(tt.in))
		})
	}
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, "pgx", d.DriverName())
	assert.Equal(t, "pgx", d.GooseDialect())

	d, err = ParseDialect("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.DriverName())
	assert.Equal(t, "sqlite3", d.GooseDialect())

	_, err = ParseDialect("oracle")
	assert.Error(t, err)
}

func TestWithDialect_RebindsStatements(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM post_label WHERE post_id = $1").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	_, err = WithDialect(db, Postgres).ExecContext(context.Background(), "DELETE FROM post_label WHERE post_id = ?", int64(4))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithDialect_SQLiteReturnsSameHandle(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Same(t, db, WithDialect(db, SQLite))
}

func TestBatchInsertSQL(t *testing.T) {
	got := BatchInsertSQL("post_label", []string{"post_id", "label_id"}, 3)
	assert.Equal(t, "INSERT INTO post_label (post_id, label_id) VALUES (?, ?), (?, ?), (?, ?)", got)

	re := regexp.MustCompile(`\$\d`)
	assert.Len(t, re.FindAllString(Postgres.Rebind(got), -1), 6)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", Placeholders(0))
	assert.Equal(t, "?", Placeholders(1))
	assert.Equal(t, "?, ?, ?", Placeholders(3))
}
