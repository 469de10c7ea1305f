package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vytor/wordpuzzle/internal/logger"
	"github.com/vytor/wordpuzzle/internal/models"
	"github.com/vytor/wordpuzzle/internal/repository"
)

var gameColumns = []string{
	"id", "puzzle_key", "puzzle", "is_bonus", "phase", "current_word_index", "score", "reveals",
	"solved_words", "skipped_words", "revealed_letters", "is_active", "gave_up", "last_message",
	"started_at", "completed_at",
}

type gameRepository struct {
	db  *sql.DB
	now func() time.Time
}

// GameOption configures the game repository.
type GameOption func(*gameRepository)

// WithClock sets the clock used to stamp new games.
func WithClock(now func() time.Time) GameOption {
	return func(r *gameRepository) {
		r.now = now
	}
}

// NewGameRepository creates a new GameRepository implementation
func NewGameRepository(db *sql.DB, opts ...GameOption) repository.GameRepository {
	r := &gameRepository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func scanGame(row rowScanner) (*models.Game, error) {
	var g models.Game
	var puzzle, solved, skipped, revealed string
	var completedAt sql.NullTime
	if err := row.Scan(&g.ID, &g.PuzzleKey, &puzzle, &g.IsBonus, &g.Phase, &g.CurrentWordIndex, &g.Score, &g.Reveals,
		&solved, &skipped, &revealed, &g.IsActive, &g.GaveUp, &g.LastMessage, &g.StartedAt, &completedAt); err != nil {
		return nil, err
	}
	if err := decodeJSON("puzzle", puzzle, &g.Puzzle); err != nil {
		return nil, err
	}
	if err := decodeJSON("solved_words", solved, &g.SolvedWords); err != nil {
		return nil, err
	}
	if err := decodeJSON("skipped_words", skipped, &g.SkippedWords); err != nil {
		return nil, err
	}
	g.RevealedLetters = models.NewRevealedLetters()
	if err := decodeJSON("revealed_letters", revealed, &g.RevealedLetters); err != nil {
		return nil, err
	}
	if g.SolvedWords == nil {
		g.SolvedWords = []int{}
	}
	if g.SkippedWords == nil {
		g.SkippedWords = []int{}
	}
	if completedAt.Valid {
		t := completedAt.Time
		g.CompletedAt = &t
	}
	return &g, nil
}

// queryOne runs a select over games and returns the first row, or nil.
func (r *gameRepository) queryOne(ctx context.Context, log *logger.Logger, q squirrel.SelectBuilder) (*models.Game, error) {
	query, args, err := q.Limit(1).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	g, err := scanGame(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get game: %v", err)
		return nil, err
	}
	return g, nil
}

func (r *gameRepository) selectGames() squirrel.SelectBuilder {
	return sqlBuilder.Select(gameColumns...).From("games")
}

func (r *gameRepository) Get(ctx context.Context, id string) (*models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("getting game: id=%s", id)
	return r.queryOne(ctx, log, r.selectGames().Where(squirrel.Eq{"id": id}))
}

func (r *gameRepository) Create(ctx context.Context, puzzle models.Puzzle, isBonus bool) (*models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	g := models.NewGame(uuid.NewString(), puzzle, isBonus, r.now().UTC())
	log.Debug("creating game: id=%s, puzzle_key=%s, bonus=%v", g.ID, g.PuzzleKey, isBonus)

	values, err := gameValues(g)
	if err != nil {
		return nil, err
	}
	query, args, err := sqlBuilder.Insert("games").Columns(gameColumns...).Values(values...).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert game: %v", err)
		return nil, err
	}
	return &g, nil
}

// gameValues lists g's column values in gameColumns order.
func gameValues(g models.Game) ([]any, error) {
	puzzle, err := encodeJSON("puzzle", g.Puzzle)
	if err != nil {
		return nil, err
	}
	solved, err := encodeJSON("solved_words", nonNil(g.SolvedWords))
	if err != nil {
		return nil, err
	}
	skipped, err := encodeJSON("skipped_words", nonNil(g.SkippedWords))
	if err != nil {
		return nil, err
	}
	revealed, err := encodeJSON("revealed_letters", g.RevealedLetters)
	if err != nil {
		return nil, err
	}
	var completedAt any
	if g.CompletedAt != nil {
		completedAt = g.CompletedAt.UTC()
	}
	return []any{
		g.ID, g.PuzzleKey, puzzle, g.IsBonus, g.Phase, g.CurrentWordIndex, g.Score, g.Reveals,
		solved, skipped, revealed, g.IsActive, g.GaveUp, g.LastMessage,
		g.StartedAt.UTC(), completedAt,
	}, nil
}

func nonNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}

func (r *gameRepository) Update(ctx context.Context, g models.Game) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("updating game: id=%s, phase=%d, score=%d", g.ID, g.Phase, g.Score)

	values, err := gameValues(g)
	if err != nil {
		return err
	}
	set := make(map[string]any, len(gameColumns)-1)
	for i, col := range gameColumns {
		if col == "id" {
			continue
		}
		set[col] = values[i]
	}
	query, args, err := sqlBuilder.Update("games").SetMap(set).Where(squirrel.Eq{"id": g.ID}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Error("failed to update game: %v", err)
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			log.Warn("update matched no game: id=%s", g.ID)
			return repository.ErrNotFound
		}
		return nil
	})
}

func (r *gameRepository) ActiveDaily(ctx context.Context, date string) (*models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("finding active daily game: date=%s", date)
	return r.queryOne(ctx, log, r.selectGames().
		Where(squirrel.Eq{"puzzle_key": date, "is_bonus": false, "is_active": true}).
		OrderBy("started_at DESC", "rowid DESC"))
}

func (r *gameRepository) CompletedDaily(ctx context.Context, date string) (*models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("finding completed daily game: date=%s", date)
	return r.queryOne(ctx, log, r.selectGames().
		Where(squirrel.Eq{"puzzle_key": date, "is_bonus": false, "is_active": false}).
		Where(squirrel.NotEq{"completed_at": nil}).
		OrderBy("started_at DESC", "rowid DESC"))
}

func (r *gameRepository) DeactivateDailyExcept(ctx context.Context, date, keepID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("deactivating stale daily games: date=%s, keep=%s", date, keepID)

	query, args, err := sqlBuilder.
		Update("games").
		Set("is_active", false).
		Where(squirrel.Eq{"puzzle_key": date, "is_bonus": false, "is_active": true}).
		Where(squirrel.NotEq{"id": keepID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to deactivate games: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *gameRepository) ActiveBonus(ctx context.Context) (*models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("finding active bonus game")
	return r.queryOne(ctx, log, r.selectGames().
		Where(squirrel.Eq{"is_bonus": true, "is_active": true}).
		OrderBy("started_at DESC", "rowid DESC"))
}

func (r *gameRepository) Latest(ctx context.Context) (*models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("finding latest active game")
	return r.queryOne(ctx, log, r.selectGames().
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("started_at DESC", "rowid DESC"))
}

func (r *gameRepository) SetCurrent(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("setting current game: id=%s", id)

	query, args, err := sqlBuilder.
		Insert("session").
		Columns("id", "current_game_id").
		Values(1, id).
		Suffix("ON CONFLICT(id) DO UPDATE SET current_game_id = excluded.current_game_id").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to set current game: %v", err)
		return err
	}
	return nil
}

func (r *gameRepository) Current(ctx context.Context) (*models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("getting current game")

	cols := make([]string, len(gameColumns))
	for i, c := range gameColumns {
		cols[i] = "g." + c
	}
	return r.queryOne(ctx, log, sqlBuilder.Select(cols...).
		From("session s").
		Join("games g ON g.id = s.current_game_id").
		Where(squirrel.Eq{"s.id": 1}))
}

func (r *gameRepository) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("deleting inactive games started before %s", cutoff.Format(time.RFC3339))

	query, args, err := sqlBuilder.
		Delete("games").
		Where(squirrel.Eq{"is_active": false}).
		Where(squirrel.Lt{"started_at": cutoff.UTC()}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete games: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Info("deleted %d inactive games", n)
	return int(n), nil
}
