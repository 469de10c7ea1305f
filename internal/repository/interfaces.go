package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/wordpuzzle/internal/models"
)

// ErrNotFound is returned by writes that target a record that does not
// exist.
var ErrNotFound = errors.New("record not found")

// PuzzleRepository stores generated puzzles by key: the UTC date for daily
// puzzles, bonus_<timestamp> for bonus rounds.
type PuzzleRepository interface {
	Get(ctx context.Context, key string) (*models.Puzzle, error)
	Save(ctx context.Context, puzzle models.Puzzle) error
}

// GameRepository handles game data access. Lookups return (nil, nil) when
// nothing matches.
type GameRepository interface {
	Get(ctx context.Context, id string) (*models.Game, error)
	Create(ctx context.Context, puzzle models.Puzzle, isBonus bool) (*models.Game, error)
	// Update overwrites the stored record with game.
	Update(ctx context.Context, game models.Game) error
	ActiveDaily(ctx context.Context, date string) (*models.Game, error)
	// CompletedDaily returns a daily game for date that ended with a
	// completion time. Games switched off by DeactivateDailyExcept do not count.
	CompletedDaily(ctx context.Context, date string) (*models.Game, error)
	// DeactivateDailyExcept switches off every other active daily game for
	// date, leaving completed_at unset, and returns how many changed.
	DeactivateDailyExcept(ctx context.Context, date, keepID string) (int, error)
	ActiveBonus(ctx context.Context) (*models.Game, error)
	// Latest returns the most recently started active game.
	Latest(ctx context.Context) (*models.Game, error)
	SetCurrent(ctx context.Context, id string) error
	Current(ctx context.Context) (*models.Game, error)
	// DeleteInactiveBefore removes finished games started before cutoff and
	// returns how many were removed.
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int, error)
}
