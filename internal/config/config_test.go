package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/dbx"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "sqlite", c.Driver)
	assert.Equal(t, "file:blogkeeper.db?_pragma=foreign_keys(1)&_time_format=sqlite", c.DatabaseDSN)
	assert.Equal(t, 10, c.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, c.ConnMaxLifetime)
	assert.Equal(t, "slog", c.LogBackend)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "diff", c.AssociationPolicy)
	assert.Equal(t, "soft", c.WriterDeletePolicy)
	assert.Equal(t, "soft", c.PostDeletePolicy)
	assert.Equal(t, "hard", c.LabelDeletePolicy)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
	assert.Equal(t, dbx.SQLite, c.Dialect())
	assert.Equal(t, dbx.PoolOptions{MaxOpenConns: 10, ConnMaxLifetime: 30 * time.Minute}, c.Pool())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"driver", func(c *Config) { c.Driver = "mysql" }, `unsupported driver "mysql"`},
		{"dsn", func(c *Config) { c.DatabaseDSN = "" }, "database_dsn is empty"},
		{"pool", func(c *Config) { c.MaxOpenConns = -1 }, "max_open_conns"},
		{"backend", func(c *Config) { c.LogBackend = "logrus" }, `unknown log backend "logrus"`},
		{"association", func(c *Config) { c.AssociationPolicy = "merge" }, `unknown association policy "merge"`},
		{"delete", func(c *Config) { c.PostDeletePolicy = "purge" }, `post: unknown delete policy "purge"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			assert.ErrorContains(t, c.Validate(), tt.wantErr)
		})
	}
}
