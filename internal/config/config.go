// Package config handles configuration for blogkeeper, including defaults,
// JSON overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blogkeeper/internal/dbx"
	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/models"
	"github.com/dmitrijs2005/blogkeeper/internal/reconcile"
)

// Config holds runtime settings.
//
// Fields:
//   - Driver: "postgres" (pgx) or "sqlite" (modernc).
//   - DatabaseDSN: DSN passed to the driver.
//   - MaxOpenConns / ConnMaxLifetime: pool tuning, zero means driver default.
//   - LogBackend / LogLevel: "slog" or "zap", and a level name.
//   - AssociationPolicy: how post labels are reconciled on update.
//   - WriterDeletePolicy / PostDeletePolicy / LabelDeletePolicy: soft or hard.
type Config struct {
	Driver             string
	DatabaseDSN        string
	MaxOpenConns       int
	ConnMaxLifetime    time.Duration
	LogBackend         string
	LogLevel           string
	AssociationPolicy  string
	WriterDeletePolicy string
	PostDeletePolicy   string
	LabelDeletePolicy  string
}

// LoadDefaults populates Config with development defaults: a local SQLite
// file with foreign keys on.
func (c *Config) LoadDefaults() {
	c.Driver = string(dbx.SQLite)
	c.DatabaseDSN = "file:blogkeeper.db?_pragma=foreign_keys(1)&_time_format=sqlite"
	c.MaxOpenConns = 10
	c.ConnMaxLifetime = 30 * time.Minute
	c.LogBackend = logging.BackendSlog
	c.LogLevel = "info"
	c.AssociationPolicy = string(reconcile.Diff)
	c.WriterDeletePolicy = string(models.DeleteSoft)
	c.PostDeletePolicy = string(models.DeleteSoft)
	c.LabelDeletePolicy = string(models.DeleteHard)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate rejects unknown enum values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := dbx.ParseDialect(c.Driver); err != nil {
		errs = append(errs, err)
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database_dsn is empty"))
	}
	if c.MaxOpenConns < 0 {
		errs = append(errs, fmt.Errorf("max_open_conns must not be negative: %d", c.MaxOpenConns))
	}
	if c.LogBackend != logging.BackendSlog && c.LogBackend != logging.BackendZap {
		errs = append(errs, fmt.Errorf("unknown log backend %q", c.LogBackend))
	}
	if _, err := reconcile.ParsePolicy(c.AssociationPolicy); err != nil {
		errs = append(errs, err)
	}
	for name, v := range map[string]string{
		"writer": c.WriterDeletePolicy,
		"post":   c.PostDeletePolicy,
		"label":  c.LabelDeletePolicy,
	} {
		if _, err := models.ParseDeletePolicy(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Dialect returns the parsed driver. Call Validate first.
func (c *Config) Dialect() dbx.Dialect {
	return dbx.Dialect(c.Driver)
}

func (c *Config) Pool() dbx.PoolOptions {
	return dbx.PoolOptions{MaxOpenConns: c.MaxOpenConns, ConnMaxLifetime: c.ConnMaxLifetime}
}
