package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Dialect identifies the SQL flavour of the store. Statements are written
// once with '?' placeholders and rebound per dialect.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case Postgres, SQLite:
		return Dialect(s), nil
	default:
		return "", fmt.Errorf("unsupported driver %q", s)
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// GooseDialect is the dialect name understood by goose.
func (d Dialect) GooseDialect() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite3"
}

// Rebind rewrites '?' placeholders into the dialect's form. Question marks
// inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
			b.WriteByte(c)
		case c == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

type rebound struct {
	db      DBTX
	dialect Dialect
}

// WithDialect wraps db so every statement is rebound for dialect before it
// reaches the driver.
func WithDialect(db DBTX, dialect Dialect) DBTX {
	if dialect != Postgres {
		return db
	}
	return &rebound{db: db, dialect: dialect}
}

func (r *rebound) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
}

func (r *rebound) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
}

func (r *rebound) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.db.QueryRowContext(ctx, r.dialect.Rebind(query), args...)
}
