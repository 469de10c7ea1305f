package services_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordpuzzle/internal/engine"
	"github.com/vytor/wordpuzzle/internal/errors"
	"github.com/vytor/wordpuzzle/internal/models"
	"github.com/vytor/wordpuzzle/internal/repository"
	"github.com/vytor/wordpuzzle/internal/repository/memory"
	"github.com/vytor/wordpuzzle/internal/services"
	"github.com/vytor/wordpuzzle/internal/testutil"
	"github.com/vytor/wordpuzzle/internal/testutil/mocks"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

type fixture struct {
	puzzles   repository.PuzzleRepository
	games     repository.GameRepository
	generator *mocks.MockGenerator
	session   services.SessionService
	game      services.GameService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore(testutil.FixedClock(now))
	gen := &mocks.MockGenerator{}
	eng := engine.New(engine.WithRand(firstRand{}), engine.WithClock(testutil.FixedClock(now)))

	f := &fixture{
		puzzles:   store.Puzzles(),
		games:     store.Games(),
		generator: gen,
	}
	f.session = services.NewSessionService(f.puzzles, f.games, gen, testutil.FixedClock(now))
	f.game = services.NewGameService(f.games, eng)
	return f
}

func (f *fixture) expectPuzzle() {
	p := testutil.PizzaPuzzle("")
	p.IsDaily = false
	p.CreatedAt = time.Time{}
	f.generator.On("Generate", mock.Anything).Return(p, nil).Once()
}

func TestDateAndBonusKeys(t *testing.T) {
	local := time.Date(2026, 10, 14, 22, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	assert.Equal(t, "2026-10-15", services.DateKey(local))
	assert.Equal(t, "bonus_2026-10-14T12:00:00Z", services.BonusKey(now))
}

func TestStart_NewDailyPuzzle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.expectPuzzle()

	resp, err := f.session.Start(ctx, false)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "New puzzle! First clue: Dairy product that melts on top. Word has 6 letters.", resp.Message)
	require.NotNil(t, resp.GameState)
	assert.Equal(t, 1, resp.GameState.WordNumber)
	assert.Equal(t, "_ _ _ _ _ _", resp.GameState.Blanks)
	assert.False(t, resp.GameState.IsBonus)

	stored, err := f.puzzles.Get(ctx, "2026-10-14")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsDaily)
	assert.True(t, now.Equal(stored.CreatedAt))

	current, err := f.games.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, resp.GameState.GameID, current.ID)
	assert.Equal(t, resp.Message, current.LastMessage)
	f.generator.AssertExpectations(t)
}

func TestStart_ResumesDailyGame(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.expectPuzzle()

	first, err := f.session.Start(ctx, false)
	require.NoError(t, err)
	_, err = f.game.Submit(ctx, services.CurrentGameID, "cheese")
	require.NoError(t, err)

	resp, err := f.session.Start(ctx, false)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Continuing today's puzzle. Red fruit used for sauce. Word has 6 letters.", resp.Message)
	assert.Equal(t, first.GameState.GameID, resp.GameState.GameID)
	assert.Equal(t, 10, resp.GameState.Score)
	f.generator.AssertNumberOfCalls(t, "Generate", 1)
}

func TestStart_ResumeDeactivatesStaleDailyGames(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	puzzle := testutil.PizzaPuzzle("2026-10-14")
	require.NoError(t, f.puzzles.Save(ctx, puzzle))
	stale, err := f.games.Create(ctx, puzzle, false)
	require.NoError(t, err)
	kept, err := f.games.Create(ctx, puzzle, false)
	require.NoError(t, err)

	resp, err := f.session.Start(ctx, false)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, kept.ID, resp.GameState.GameID)

	g, err := f.games.Get(ctx, stale.ID)
	require.NoError(t, err)
	assert.False(t, g.IsActive)
	assert.Nil(t, g.CompletedAt)

	again, err := f.session.Start(ctx, false)
	require.NoError(t, err)
	assert.True(t, again.Success)
	assert.Equal(t, kept.ID, again.GameState.GameID)
	f.generator.AssertNotCalled(t, "Generate", mock.Anything)
}

func TestStart_DailyAlreadyCompleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.expectPuzzle()

	_, err := f.session.Start(ctx, false)
	require.NoError(t, err)
	_, err = f.game.GiveUp(ctx, services.CurrentGameID)
	require.NoError(t, err)

	resp, err := f.session.Start(ctx, false)

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, services.MsgDailyCompleted, resp.Message)
	assert.Nil(t, resp.GameState)
}

func TestStart_UsesStoredDailyPuzzle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	stored := testutil.PizzaPuzzle("2026-10-14")
	stored.Theme = "NAPLES"
	require.NoError(t, f.puzzles.Save(ctx, stored))

	resp, err := f.session.Start(ctx, false)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	g, err := f.games.Get(ctx, resp.GameState.GameID)
	require.NoError(t, err)
	assert.Equal(t, "NAPLES", g.Puzzle.Theme)
	f.generator.AssertNotCalled(t, "Generate", mock.Anything)
}

func TestStart_BonusNewAndResume(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.expectPuzzle()

	resp, err := f.session.Start(ctx, true)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Bonus round! First clue: Dairy product that melts on top. Word has 6 letters.", resp.Message)
	assert.True(t, resp.GameState.IsBonus)

	p, err := f.puzzles.Get(ctx, "bonus_2026-10-14T12:00:00Z")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.False(t, p.IsDaily)

	again, err := f.session.Start(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "Continuing your bonus game. Dairy product that melts on top. Word has 6 letters.", again.Message)
	assert.Equal(t, resp.GameState.GameID, again.GameState.GameID)
	f.generator.AssertNumberOfCalls(t, "Generate", 1)
}

func TestStart_BonusAllowedAfterDailyCompleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.expectPuzzle()
	f.expectPuzzle()

	_, err := f.session.Start(ctx, false)
	require.NoError(t, err)
	_, err = f.game.GiveUp(ctx, services.CurrentGameID)
	require.NoError(t, err)

	resp, err := f.session.Start(ctx, true)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.GameState.IsBonus)
}

func TestStart_GeneratorFailure(t *testing.T) {
	f := newFixture(t)
	f.generator.On("Generate", mock.Anything).Return(models.Puzzle{}, stderrors.New("offline"))

	resp, err := f.session.Start(context.Background(), false)

	assert.Nil(t, resp)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
}

func TestStart_InvalidGeneratedPuzzle(t *testing.T) {
	f := newFixture(t)
	f.generator.On("Generate", mock.Anything).Return(models.Puzzle{Theme: "X", Words: []string{"A"}}, nil)

	_, err := f.session.Start(context.Background(), true)

	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
}

func TestStart_RepositoryFailure(t *testing.T) {
	games := &mocks.MockGameRepository{}
	games.On("CompletedDaily", mock.Anything, "2026-10-14").Return(nil, stderrors.New("disk full"))
	svc := services.NewSessionService(&mocks.MockPuzzleRepository{}, games, &mocks.MockGenerator{}, testutil.FixedClock(now))

	_, err := svc.Start(context.Background(), false)

	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
	games.AssertExpectations(t)
}

func TestGameService_SubmitPersists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.expectPuzzle()
	start, err := f.session.Start(ctx, false)
	require.NoError(t, err)

	resp, err := f.game.Submit(ctx, services.CurrentGameID, "Cheese")

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Correct, CHEESE! Score: 10. Next clue: Red fruit used for sauce. Word has 6 letters.", resp.Message)
	assert.Equal(t, 10, resp.GameState.Score)
	assert.Equal(t, []string{"CHEESE"}, resp.GameState.SolvedWords)

	g, err := f.games.Get(ctx, start.GameState.GameID)
	require.NoError(t, err)
	assert.Equal(t, 10, g.Score)
	assert.Equal(t, 1, g.Reveals)
	assert.Equal(t, resp.Message, g.LastMessage)

	wrong, err := f.game.Submit(ctx, g.ID, "pepper")
	require.NoError(t, err)
	assert.False(t, wrong.Success)
	assert.Equal(t, "Wrong, try again. Word has 6 letters.", wrong.Message)
}

func TestGameService_FullGame(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.expectPuzzle()
	_, err := f.session.Start(ctx, false)
	require.NoError(t, err)

	for _, w := range []string{"cheese", "tomato", "slice", "crust"} {
		_, err := f.game.Submit(ctx, services.CurrentGameID, w)
		require.NoError(t, err)
	}
	resp, err := f.game.Submit(ctx, services.CurrentGameID, "oven")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseTheme, resp.GameState.Phase)
	assert.Equal(t, 6, resp.GameState.WordNumber)
	assert.Equal(t, "P _ _ _ _", resp.GameState.Blanks)

	resp, err = f.game.Submit(ctx, services.CurrentGameID, "pizza")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "Perfect game!")
	assert.False(t, resp.GameState.IsActive)
	assert.Equal(t, "PIZZA", resp.GameState.ThemeRevealed)
	assert.Equal(t, models.MaxScore, resp.GameState.Score)

	after, err := f.game.Submit(ctx, services.CurrentGameID, "pizza")
	require.NoError(t, err)
	assert.False(t, after.Success)
	assert.Equal(t, services.MsgGameNotActiveNew, after.Message)
	assert.Nil(t, after.GameState)
}

func TestGameService_NoCurrentGame(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.game.Submit(ctx, services.CurrentGameID, "cheese")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, services.MsgNoActiveGameStart, resp.Message)

	for _, action := range []func(context.Context, string) (*models.ActionResponse, error){
		f.game.Reveal, f.game.Skip, f.game.GiveUp, f.game.Repeat,
	} {
		resp, err := action(ctx, services.CurrentGameID)
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, services.MsgNoActiveGame, resp.Message)
		assert.Nil(t, resp.GameState)
	}

	_, err = f.game.State(ctx, services.CurrentGameID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestGameService_UnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := f.game.Reveal(context.Background(), "nope")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	_, err = f.game.State(context.Background(), "nope")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestGameService_InactiveGame(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.expectPuzzle()
	start, err := f.session.Start(ctx, false)
	require.NoError(t, err)
	id := start.GameState.GameID

	over, err := f.game.GiveUp(ctx, id)
	require.NoError(t, err)
	assert.True(t, over.Success)
	assert.Equal(t,
		"Game over. The words were: CHEESE, TOMATO, SLICE, CRUST, OVEN. The theme was: PIZZA. Final score: 0.",
		over.Message)

	for _, action := range []func(context.Context, string) (*models.ActionResponse, error){f.game.Reveal, f.game.Skip} {
		resp, err := action(ctx, id)
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, services.MsgGameNotActive, resp.Message)
	}

	before, err := f.games.Get(ctx, id)
	require.NoError(t, err)

	again, err := f.game.GiveUp(ctx, id)
	require.NoError(t, err)
	assert.False(t, again.Success)
	assert.Equal(t, services.MsgGameNotActive, again.Message)
	assert.Nil(t, again.GameState)

	after, err := f.games.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGameService_GiveUpKeepsWonGame(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.expectPuzzle()
	start, err := f.session.Start(ctx, false)
	require.NoError(t, err)
	id := start.GameState.GameID

	for _, w := range []string{"cheese", "tomato", "slice", "crust", "oven", "pizza"} {
		_, err := f.game.Submit(ctx, id, w)
		require.NoError(t, err)
	}
	won, err := f.games.Get(ctx, id)
	require.NoError(t, err)
	require.False(t, won.IsActive)

	resp, err := f.game.GiveUp(ctx, services.CurrentGameID)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, services.MsgGameNotActive, resp.Message)

	after, err := f.games.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, after.GaveUp)
	assert.Equal(t, models.MaxScore, after.Score)
	assert.Equal(t, won.CompletedAt, after.CompletedAt)
}

func TestGameService_RevealSkipRepeat(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.expectPuzzle()
	_, err := f.session.Start(ctx, false)
	require.NoError(t, err)

	resp, err := f.game.Reveal(ctx, services.CurrentGameID)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "No reveals left. Earn more by solving words correctly.", resp.Message)

	resp, err = f.game.Skip(ctx, services.CurrentGameID)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.GameState.WordNumber)

	resp, err = f.game.Repeat(ctx, services.CurrentGameID)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Red fruit used for sauce. Word has 6 letters.", resp.Message)

	_, err = f.game.Submit(ctx, services.CurrentGameID, "tomato")
	require.NoError(t, err)
	resp, err = f.game.Reveal(ctx, services.CurrentGameID)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Here's a letter: S _ _ _ _. 0 reveals left.", resp.Message)

	state, err := f.game.State(ctx, services.CurrentGameID)
	require.NoError(t, err)
	assert.Equal(t, resp.Message, state.LastMessage)
	assert.Equal(t, "S _ _ _ _", state.Blanks)
}

func TestGameService_RepairsMissingHint(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g, err := f.games.Create(ctx, testutil.PizzaPuzzle("2026-10-14"), false)
	require.NoError(t, err)
	g.Phase = models.PhaseTheme
	g.SolvedWords = []int{0, 1, 2, 3, 4}
	g.Score = 50
	require.NoError(t, f.games.Update(ctx, *g))

	state, err := f.game.State(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "P _ _ _ _", state.Blanks)

	stored, err := f.games.Get(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RevealedLetters.HintPosition)
	assert.Equal(t, 0, *stored.RevealedLetters.HintPosition)
}

func TestGameService_Latest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.game.Latest(ctx)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	f.expectPuzzle()
	start, err := f.session.Start(ctx, false)
	require.NoError(t, err)

	id, err := f.game.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, start.GameState.GameID, id)
}

func TestGameService_SaveFailure(t *testing.T) {
	ctx := context.Background()
	g := models.NewGame("g1", testutil.PizzaPuzzle("2026-10-14"), false, now)
	games := &mocks.MockGameRepository{}
	games.On("Get", mock.Anything, "g1").Return(&g, nil)
	games.On("Update", mock.Anything, mock.AnythingOfType("models.Game")).Return(stderrors.New("locked"))
	svc := services.NewGameService(games, engine.New(engine.WithRand(firstRand{})))

	_, err := svc.Submit(ctx, "g1", "cheese")

	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
	games.AssertExpectations(t)
}

func TestRetentionService_Sweep(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(testutil.FixedClock(now))
	games := store.Games()

	g, err := games.Create(ctx, testutil.PizzaPuzzle("2026-10-14"), false)
	require.NoError(t, err)
	g.IsActive = false
	require.NoError(t, games.Update(ctx, *g))

	svc := services.NewRetentionService(games, 7)

	n, err := svc.Sweep(ctx, now.Add(6*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = svc.Sweep(ctx, now.Add(8*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRetentionService_Failure(t *testing.T) {
	games := &mocks.MockGameRepository{}
	games.On("DeleteInactiveBefore", mock.Anything, now.Add(-7*24*time.Hour)).Return(0, stderrors.New("boom"))

	_, err := services.NewRetentionService(games, 7).Sweep(context.Background(), now)

	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
}
