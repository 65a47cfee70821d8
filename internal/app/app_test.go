package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/config"
	"github.com/dmitrijs2005/blogkeeper/internal/models"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared&_pragma=foreign_keys(1)&_time_format=sqlite"
	c.MaxOpenConns = 1
	c.LogBackend = backend
	return c
}

func TestApp_RunCountsAggregates(t *testing.T) {
	for _, backend := range []string{"slog", "zap"} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			var out bytes.Buffer

			a, err := NewApp(ctx, testConfig(t, backend), &out)
			require.NoError(t, err)
			defer a.Close()

			w, err := a.Writers.FindOrCreate(ctx, "John", "Doe")
			require.NoError(t, err)
			l, err := a.Labels.Save(ctx, &models.Label{Name: "go"})
			require.NoError(t, err)
			_, err = a.Posts.Save(ctx, &models.Post{Content: "hi", Writer: w, Labels: []*models.Label{l}})
			require.NoError(t, err)

			s, err := a.Run(ctx)
			require.NoError(t, err)
			assert.Equal(t, Summary{Writers: 1, Posts: 1, Labels: 1}, s)
			assert.Contains(t, out.String(), "active aggregates")
		})
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	c := testConfig(t, "slog")
	c.AssociationPolicy = "merge"

	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.ErrorContains(t, err, "config:")
}

func TestNewApp_OpenFailure(t *testing.T) {
	c := testConfig(t, "slog")
	c.Driver = "postgres"
	c.DatabaseDSN = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"

	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.ErrorContains(t, err, "db init error")
}
