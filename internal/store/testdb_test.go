package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Shared container across this package's tests, started once, grounded on
// the pack's testcontainers-go/modules/postgres shared-container pattern.
var (
	sharedCfg     Config
	containerOnce sync.Once
	containerErr  error
)

// newTestDB opens a fresh database handle against the shared testcontainer
// and runs every migration, tearing the connection down at test end. Each
// test truncates its own rows via t.Cleanup to stay isolated without the
// cost of a schema per test.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	containerOnce.Do(func() {
		pgContainer, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("storysplicer_test"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(30*time.Second),
		)
		if err != nil {
			containerErr = err
			return
		}
		host, err := pgContainer.Host(ctx)
		if err != nil {
			containerErr = err
			return
		}
		port, err := pgContainer.MappedPort(ctx, "5432/tcp")
		if err != nil {
			containerErr = err
			return
		}
		sharedCfg = Config{
			Host:           host,
			Port:           port.Int(),
			Name:           "storysplicer_test",
			User:           "test",
			Password:       "test",
			PoolMax:        5,
			IdleTimeout:    30 * time.Second,
			ConnectTimeout: 5 * time.Second,
		}
	})
	require.NoError(t, containerErr, "failed to start shared postgres container")

	db, err := Open(ctx, sharedCfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db))

	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, `TRUNCATE worlds, areas, characters, items, series, books, chapters, writing_styles CASCADE`)
		_ = db.Close()
	})
	return db
}
