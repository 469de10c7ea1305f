package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzle.db")

	d, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, d.Ready(context.Background()))

	var tables int
	err = d.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('puzzles', 'games', 'session')`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 3, tables)
	require.NoError(t, d.Close())

	// reopening must not re-run migrations
	d, err = Open(path)
	require.NoError(t, err)
	defer d.Close()

	var applied int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	assert.Equal(t, len(entries), applied)
}
