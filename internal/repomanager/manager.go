package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/blogkeeper/internal/dbx"
	"github.com/dmitrijs2005/blogkeeper/internal/repositories/labels"
	"github.com/dmitrijs2005/blogkeeper/internal/repositories/postlabels"
	"github.com/dmitrijs2005/blogkeeper/internal/repositories/posts"
	"github.com/dmitrijs2005/blogkeeper/internal/repositories/writers"
)

// RepositoryManager vends table repositories bound to a handle. Passing the
// same *sql.Tx to every factory puts all statements in one unit of work.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Writers(db dbx.DBTX) writers.Repository
	Posts(db dbx.DBTX) posts.Repository
	Labels(db dbx.DBTX) labels.Repository
	PostLabels(db dbx.DBTX) postlabels.Repository
}
