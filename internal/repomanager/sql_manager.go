// Package repomanager provides a concrete RepositoryManager for a SQL
// dialect, wiring together repository constructors and database migrations
// (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/blogkeeper/internal/dbx"
	"github.com/dmitrijs2005/blogkeeper/internal/migrations"
	"github.com/dmitrijs2005/blogkeeper/internal/repositories/labels"
	"github.com/dmitrijs2005/blogkeeper/internal/repositories/postlabels"
	"github.com/dmitrijs2005/blogkeeper/internal/repositories/posts"
	"github.com/dmitrijs2005/blogkeeper/internal/repositories/writers"
)

// SQLRepositoryManager rebinds every handle to its dialect before handing it
// to a repository.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// NewSQLRepositoryManager constructs a RepositoryManager for the dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) (RepositoryManager, error) {
	if _, err := dbx.ParseDialect(string(dialect)); err != nil {
		return nil, err
	}
	return &SQLRepositoryManager{dialect: dialect}, nil
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

func (m *SQLRepositoryManager) Writers(db dbx.DBTX) writers.Repository {
	return writers.NewSQLRepository(dbx.WithDialect(db, m.dialect))
}

func (m *SQLRepositoryManager) Posts(db dbx.DBTX) posts.Repository {
	return posts.NewSQLRepository(dbx.WithDialect(db, m.dialect))
}

func (m *SQLRepositoryManager) Labels(db dbx.DBTX) labels.Repository {
	return labels.NewSQLRepository(dbx.WithDialect(db, m.dialect))
}

func (m *SQLRepositoryManager) PostLabels(db dbx.DBTX) postlabels.Repository {
	return postlabels.NewSQLRepository(dbx.WithDialect(db, m.dialect))
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, string(m.dialect)); err != nil {
		return err
	}
	return nil
}
