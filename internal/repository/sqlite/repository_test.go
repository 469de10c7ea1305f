package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/wordpuzzle/internal/repository"
	"github.com/vytor/wordpuzzle/internal/repository/repotest"
	"github.com/vytor/wordpuzzle/internal/repository/sqlite"
	"github.com/vytor/wordpuzzle/internal/testutil"
)

func TestSQLiteRepositories(t *testing.T) {
	suite.Run(t, &repotest.RepositorySuite{
		New: func(s *suite.Suite, now func() time.Time) (repository.PuzzleRepository, repository.GameRepository) {
			db := testutil.NewTestDB(s.T())
			s.T().Cleanup(func() { testutil.MustClose(s.T(), db) })
			return sqlite.NewPuzzleRepository(db), sqlite.NewGameRepository(db, sqlite.WithClock(now))
		},
	})
}

func TestGameRepository_StoresLegacyRevealedLetterKeys(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	ctx := context.Background()

	games := sqlite.NewGameRepository(db)
	g, err := games.Create(ctx, testutil.PizzaPuzzle("2026-10-14"), false)
	require.NoError(t, err)

	g.RevealedLetters.Words[2] = []int{1}
	require.NoError(t, games.Update(ctx, *g))

	var raw string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT revealed_letters FROM games WHERE id = ?`, g.ID).Scan(&raw))
	assert.JSONEq(t, `{"2":[1]}`, raw)

	// records written by hand with the legacy layout load back
	_, err = db.ExecContext(ctx, `UPDATE games SET revealed_letters = ? WHERE id = ?`,
		`{"0":[0,3],"final":[2],"phase2_hint_position":1}`, g.ID)
	require.NoError(t, err)

	got, err := games.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, got.RevealedLetters.Words[0])
	assert.Equal(t, []int{2}, got.RevealedLetters.Final)
	require.NotNil(t, got.RevealedLetters.HintPosition)
	assert.Equal(t, 1, *got.RevealedLetters.HintPosition)
}
