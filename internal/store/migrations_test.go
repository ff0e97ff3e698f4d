package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := newTestDB(t)

	tables := []string{"worlds", "writing_styles", "areas", "characters", "items", "series", "books", "chapters", "migrations"}
	for _, name := range tables {
		var count int
		err := db.QueryRowContext(context.Background(),
			`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = $1`, name).Scan(&count)
		require.NoError(t, err)
		require.Equalf(t, 1, count, "table %q not found", name)
	}
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Migrate(context.Background(), db))
}
