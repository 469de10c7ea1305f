// Package repotest holds the behaviour every repository implementation
// must share, as a testify suite.
package repotest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/wordpuzzle/internal/models"
	"github.com/vytor/wordpuzzle/internal/repository"
	"github.com/vytor/wordpuzzle/internal/testutil"
)

// Factory builds fresh repositories whose game timestamps come from now.
type Factory func(s *suite.Suite, now func() time.Time) (repository.PuzzleRepository, repository.GameRepository)

// RepositorySuite runs the shared contract against one implementation.
type RepositorySuite struct {
	suite.Suite
	New Factory

	ctx     context.Context
	clock   time.Time
	puzzles repository.PuzzleRepository
	games   repository.GameRepository
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	s.puzzles, s.games = s.New(&s.Suite, func() time.Time { return s.clock })
}

// tick advances the clock so consecutive games get distinct start times.
func (s *RepositorySuite) tick() {
	s.clock = s.clock.Add(time.Minute)
}

func (s *RepositorySuite) TestPuzzleSaveAndGet() {
	p := testutil.PizzaPuzzle("2026-10-14")
	s.Require().NoError(s.puzzles.Save(s.ctx, p))

	got, err := s.puzzles.Get(s.ctx, "2026-10-14")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("PIZZA", got.Theme)
	s.Equal(p.Words, got.Words)
	s.Equal(p.Clues, got.Clues)
	s.True(got.IsDaily)
	s.True(p.CreatedAt.Equal(got.CreatedAt))
}

func (s *RepositorySuite) TestPuzzleGet_NotFound() {
	got, err := s.puzzles.Get(s.ctx, "2020-01-01")
	s.NoError(err)
	s.Nil(got)
}

func (s *RepositorySuite) TestPuzzleSave_Overwrites() {
	p := testutil.PizzaPuzzle("bonus_1")
	s.Require().NoError(s.puzzles.Save(s.ctx, p))
	p.Theme = "CALZONE"
	s.Require().NoError(s.puzzles.Save(s.ctx, p))

	got, err := s.puzzles.Get(s.ctx, "bonus_1")
	s.Require().NoError(err)
	s.Equal("CALZONE", got.Theme)
}

func (s *RepositorySuite) TestCreateAndGet() {
	g, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("2026-10-14"), false)
	s.Require().NoError(err)
	s.Require().NotNil(g)
	s.NotEmpty(g.ID)
	s.Equal("2026-10-14", g.PuzzleKey)
	s.Equal(models.PhaseWords, g.Phase)
	s.True(g.IsActive)
	s.True(s.clock.Equal(g.StartedAt))

	got, err := s.games.Get(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(g.ID, got.ID)
	s.Equal("PIZZA", got.Puzzle.Theme)
	s.Equal([]int{}, got.SolvedWords)
	s.Equal([]int{}, got.SkippedWords)
	s.Empty(got.RevealedLetters.Words)
	s.Nil(got.CompletedAt)
}

func (s *RepositorySuite) TestGet_NotFound() {
	got, err := s.games.Get(s.ctx, "missing")
	s.NoError(err)
	s.Nil(got)
}

func (s *RepositorySuite) TestUpdate_OverwritesWholeRecord() {
	g, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("2026-10-14"), false)
	s.Require().NoError(err)

	hint := 3
	done := s.clock.Add(time.Hour)
	g.Phase = models.PhaseTheme
	g.Score = 50
	g.Reveals = 4
	g.SolvedWords = []int{0, 2, 1, 3, 4}
	g.SkippedWords = []int{}
	g.RevealedLetters = models.NewRevealedLetters()
	g.RevealedLetters.Words[1] = []int{0, 2}
	g.RevealedLetters.Final = []int{1}
	g.RevealedLetters.HintPosition = &hint
	g.IsActive = false
	g.LastMessage = "Wrong! The answer was PIZZA."
	g.CompletedAt = &done
	s.Require().NoError(s.games.Update(s.ctx, *g))

	got, err := s.games.Get(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(models.PhaseTheme, got.Phase)
	s.Equal(50, got.Score)
	s.Equal(4, got.Reveals)
	s.Equal([]int{0, 2, 1, 3, 4}, got.SolvedWords)
	s.Equal([]int{0, 2}, got.RevealedLetters.Words[1])
	s.Equal([]int{1}, got.RevealedLetters.Final)
	s.Require().NotNil(got.RevealedLetters.HintPosition)
	s.Equal(3, *got.RevealedLetters.HintPosition)
	s.False(got.IsActive)
	s.Equal("Wrong! The answer was PIZZA.", got.LastMessage)
	s.Require().NotNil(got.CompletedAt)
	s.True(done.Equal(*got.CompletedAt))
}

func (s *RepositorySuite) TestUpdate_Missing() {
	g := models.NewGame("missing", testutil.PizzaPuzzle("x"), false, s.clock)
	s.ErrorIs(s.games.Update(s.ctx, g), repository.ErrNotFound)
}

func (s *RepositorySuite) TestDailyLookups() {
	daily, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("2026-10-14"), false)
	s.Require().NoError(err)
	s.tick()
	_, err = s.games.Create(s.ctx, testutil.PizzaPuzzle("bonus_x"), true)
	s.Require().NoError(err)

	active, err := s.games.ActiveDaily(s.ctx, "2026-10-14")
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal(daily.ID, active.ID)

	completed, err := s.games.CompletedDaily(s.ctx, "2026-10-14")
	s.NoError(err)
	s.Nil(completed)

	done := s.clock
	daily.IsActive = false
	daily.CompletedAt = &done
	s.Require().NoError(s.games.Update(s.ctx, *daily))

	active, err = s.games.ActiveDaily(s.ctx, "2026-10-14")
	s.NoError(err)
	s.Nil(active)

	completed, err = s.games.CompletedDaily(s.ctx, "2026-10-14")
	s.Require().NoError(err)
	s.Require().NotNil(completed)
	s.Equal(daily.ID, completed.ID)

	other, err := s.games.ActiveDaily(s.ctx, "2026-10-13")
	s.NoError(err)
	s.Nil(other)
}

func (s *RepositorySuite) TestDeactivateDailyExcept() {
	older, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("2026-10-14"), false)
	s.Require().NoError(err)
	s.tick()
	newer, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("2026-10-14"), false)
	s.Require().NoError(err)
	bonus, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("bonus_x"), true)
	s.Require().NoError(err)
	yesterday, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("2026-10-13"), false)
	s.Require().NoError(err)

	n, err := s.games.DeactivateDailyExcept(s.ctx, "2026-10-14", newer.ID)
	s.Require().NoError(err)
	s.Equal(1, n)

	got, err := s.games.Get(s.ctx, older.ID)
	s.Require().NoError(err)
	s.False(got.IsActive)
	s.Nil(got.CompletedAt)

	for _, id := range []string{newer.ID, bonus.ID, yesterday.ID} {
		g, err := s.games.Get(s.ctx, id)
		s.Require().NoError(err)
		s.True(g.IsActive, id)
	}

	// switched-off games are not completions
	completed, err := s.games.CompletedDaily(s.ctx, "2026-10-14")
	s.NoError(err)
	s.Nil(completed)

	n, err = s.games.DeactivateDailyExcept(s.ctx, "2026-10-14", newer.ID)
	s.NoError(err)
	s.Equal(0, n)
}

func (s *RepositorySuite) TestActiveBonusAndLatest() {
	none, err := s.games.Latest(s.ctx)
	s.NoError(err)
	s.Nil(none)

	daily, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("2026-10-14"), false)
	s.Require().NoError(err)
	s.tick()
	bonus, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("bonus_x"), true)
	s.Require().NoError(err)

	got, err := s.games.ActiveBonus(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(bonus.ID, got.ID)

	latest, err := s.games.Latest(s.ctx)
	s.Require().NoError(err)
	s.Equal(bonus.ID, latest.ID)

	bonus.IsActive = false
	s.Require().NoError(s.games.Update(s.ctx, *bonus))

	got, err = s.games.ActiveBonus(s.ctx)
	s.NoError(err)
	s.Nil(got)

	latest, err = s.games.Latest(s.ctx)
	s.Require().NoError(err)
	s.Equal(daily.ID, latest.ID)
}

func (s *RepositorySuite) TestLatest_SameStartTimePrefersNewest() {
	_, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("a"), true)
	s.Require().NoError(err)
	second, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("b"), true)
	s.Require().NoError(err)

	latest, err := s.games.Latest(s.ctx)
	s.Require().NoError(err)
	s.Equal(second.ID, latest.ID)
}

func (s *RepositorySuite) TestCurrentPointer() {
	got, err := s.games.Current(s.ctx)
	s.NoError(err)
	s.Nil(got)

	first, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("a"), false)
	s.Require().NoError(err)
	second, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("b"), true)
	s.Require().NoError(err)

	s.Require().NoError(s.games.SetCurrent(s.ctx, first.ID))
	got, err = s.games.Current(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.ID, got.ID)

	s.Require().NoError(s.games.SetCurrent(s.ctx, second.ID))
	got, err = s.games.Current(s.ctx)
	s.Require().NoError(err)
	s.Equal(second.ID, got.ID)

	s.Error(s.games.SetCurrent(s.ctx, "missing"))
}

func (s *RepositorySuite) TestDeleteInactiveBefore() {
	old, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("2026-10-01"), false)
	s.Require().NoError(err)
	old.IsActive = false
	s.Require().NoError(s.games.Update(s.ctx, *old))

	oldActive, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("2026-10-02"), false)
	s.Require().NoError(err)
	s.Require().NoError(s.games.SetCurrent(s.ctx, old.ID))

	s.clock = s.clock.Add(10 * 24 * time.Hour)
	recent, err := s.games.Create(s.ctx, testutil.PizzaPuzzle("2026-10-12"), false)
	s.Require().NoError(err)
	recent.IsActive = false
	s.Require().NoError(s.games.Update(s.ctx, *recent))

	n, err := s.games.DeleteInactiveBefore(s.ctx, s.clock.Add(-7*24*time.Hour))
	s.Require().NoError(err)
	s.Equal(1, n)

	gone, err := s.games.Get(s.ctx, old.ID)
	s.NoError(err)
	s.Nil(gone)

	for _, id := range []string{oldActive.ID, recent.ID} {
		kept, err := s.games.Get(s.ctx, id)
		s.NoError(err)
		s.NotNil(kept, id)
	}

	// the pointer no longer resolves once its game is gone
	current, err := s.games.Current(s.ctx)
	s.NoError(err)
	s.Nil(current)
}
