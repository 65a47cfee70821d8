// Package app wires configuration, logging, the connection pool, migrations
// and the services into one process.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/blogkeeper/internal/config"
	"github.com/dmitrijs2005/blogkeeper/internal/dbx"
	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/models"
	"github.com/dmitrijs2005/blogkeeper/internal/reconcile"
	"github.com/dmitrijs2005/blogkeeper/internal/repomanager"
	"github.com/dmitrijs2005/blogkeeper/internal/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	flush  func()
	db     *sql.DB

	Writers *services.WriterService
	Posts   *services.PostService
	Labels  *services.LabelService
}

// NewApp validates c, opens the pool, applies migrations and builds the
// services. Log output goes to w. The caller must Close the App.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, flush, err := logging.New(c.LogBackend, c.LogLevel, w)
	if err != nil {
		return nil, err
	}

	// Validate has checked every enum below.
	association, _ := reconcile.ParsePolicy(c.AssociationPolicy)
	writerPolicy, _ := models.ParseDeletePolicy(c.WriterDeletePolicy)
	postPolicy, _ := models.ParseDeletePolicy(c.PostDeletePolicy)
	labelPolicy, _ := models.ParseDeletePolicy(c.LabelDeletePolicy)

	db, err := dbx.Open(ctx, c.Dialect(), c.DatabaseDSN, c.Pool())
	if err != nil {
		flush()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewSQLRepositoryManager(c.Dialect())
	if err != nil {
		_ = db.Close()
		flush()
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		flush()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	deps := services.Deps{
		DB:          db,
		RepoManager: rm,
		Reconciler:  reconcile.New(association),
		Logger:      logger,
	}

	logger.Info(ctx, "storage ready",
		"driver", c.Driver,
		"association_policy", association,
		"writer_delete", writerPolicy,
		"post_delete", postPolicy,
		"label_delete", labelPolicy,
	)

	return &App{
		config:  c,
		logger:  logger,
		flush:   flush,
		db:      db,
		Writers: services.NewWriterService(deps, writerPolicy),
		Posts:   services.NewPostService(deps, postPolicy),
		Labels:  services.NewLabelService(deps, labelPolicy),
	}, nil
}

// Summary holds the number of non-deleted rows per aggregate.
type Summary struct {
	Writers int64
	Posts   int64
	Labels  int64
}

// Run logs a summary of the stored aggregates.
func (app *App) Run(ctx context.Context) (Summary, error) {
	var s Summary
	var err error

	if s.Writers, err = app.Writers.Count(ctx); err != nil {
		return Summary{}, err
	}
	if s.Posts, err = app.Posts.Count(ctx); err != nil {
		return Summary{}, err
	}
	if s.Labels, err = app.Labels.Count(ctx); err != nil {
		return Summary{}, err
	}

	app.logger.Info(ctx, "active aggregates", "writers", s.Writers, "posts", s.Posts, "labels", s.Labels)
	return s, nil
}

func (app *App) Close() error {
	defer app.flush()
	return app.db.Close()
}
