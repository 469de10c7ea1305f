package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordpuzzle/internal/db"
	"github.com/vytor/wordpuzzle/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// Foreign keys are enabled. The pool is pinned to one connection so every
// query sees the same in-memory database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB))
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// PizzaPuzzle returns the daily puzzle used across tests.
func PizzaPuzzle(key string) models.Puzzle {
	return models.Puzzle{
		Key:   key,
		Theme: "PIZZA",
		Words: []string{"CHEESE", "TOMATO", "SLICE", "CRUST", "OVEN"},
		Clues: []string{
			"Dairy product that melts on top",
			"Red fruit used for sauce",
			"Triangular piece you eat",
			"Baked dough on the bottom",
			"Hot appliance for baking",
		},
		IsDaily:   true,
		CreatedAt: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
	}
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
