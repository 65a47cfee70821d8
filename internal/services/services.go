// Package services exposes the per-aggregate repositories callers use:
// writers, posts and labels. Every write runs as one unit of work over the
// table repositories vended by a repomanager.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/dbx"
	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/reconcile"
	"github.com/dmitrijs2005/blogkeeper/internal/repomanager"
	"github.com/dmitrijs2005/blogkeeper/internal/repositories/labels"
	"github.com/dmitrijs2005/blogkeeper/internal/repositories/postlabels"
	"github.com/dmitrijs2005/blogkeeper/internal/repositories/posts"
	"github.com/dmitrijs2005/blogkeeper/internal/repositories/writers"
)

// Deps are the collaborators shared by all services.
type Deps struct {
	DB          *sql.DB
	RepoManager repomanager.RepositoryManager
	Reconciler  *reconcile.Reconciler
	Logger      logging.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type base struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	reconciler  *reconcile.Reconciler
	log         logging.Logger
	now         func() time.Time
}

func newBase(d Deps, entity string) base {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	reconciler := d.Reconciler
	if reconciler == nil {
		reconciler = reconcile.New(reconcile.Diff)
	}
	return base{
		db:          d.DB,
		repomanager: d.RepoManager,
		reconciler:  reconciler,
		log:         d.Logger.With("entity", entity),
		now:         now,
	}
}

// clock returns the current time without a monotonic reading, at the
// precision both stores keep.
func (b *base) clock() time.Time {
	return normalize(b.now())
}

func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// repos is the set of table repositories bound to one handle.
type repos struct {
	writers    writers.Repository
	posts      posts.Repository
	labels     labels.Repository
	postLabels postlabels.Repository
}

func (b *base) repos(db dbx.DBTX) repos {
	return repos{
		writers:    b.repomanager.Writers(db),
		posts:      b.repomanager.Posts(db),
		labels:     b.repomanager.Labels(db),
		postLabels: b.repomanager.PostLabels(db),
	}
}

// inTx runs fn as one unit of work and logs its outcome under a fresh
// correlation id. A failure is returned as a PersistenceError described by
// op unless it is a not-found, precondition or mapping error.
func (b *base) inTx(ctx context.Context, op string, fn func(ctx context.Context, r repos) error) error {
	ctx = logging.WithUnitOfWork(ctx, uuid.NewString())
	log := b.log.With("op", op)

	log.Debug(ctx, "begin unit of work")
	err := dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, b.repos(tx))
	})
	if err != nil {
		if expected(err) {
			log.Warn(ctx, "unit of work rolled back", "error", err)
		} else {
			log.Error(ctx, "unit of work rolled back", "error", err)
		}
		return wrap(op, err)
	}
	log.Info(ctx, "unit of work committed")
	return nil
}

// read runs a query outside any transaction.
func (b *base) read(ctx context.Context, op string, fn func(ctx context.Context, r repos) error) error {
	if err := fn(ctx, b.repos(b.db)); err != nil {
		b.log.Error(ctx, "read failed", "op", op, "error", err)
		return wrap(op, err)
	}
	return nil
}

// expected reports outcomes callers handle as part of normal flow.
func expected(err error) bool {
	return errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrInvalidArgument)
}

func wrap(op string, err error) error {
	var me *common.MappingError
	var pe *common.PersistenceError
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrInvalidArgument),
		errors.As(err, &me),
		errors.As(err, &pe):
		return err
	default:
		return &common.PersistenceError{Op: op, Err: err}
	}
}

func requireID(entity string, id int64) error {
	if id <= 0 {
		return common.Invalid("%s id is required", entity)
	}
	return nil
}
