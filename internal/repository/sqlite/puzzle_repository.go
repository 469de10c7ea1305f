package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/wordpuzzle/internal/logger"
	"github.com/vytor/wordpuzzle/internal/models"
	"github.com/vytor/wordpuzzle/internal/repository"
)

type puzzleRepository struct {
	db *sql.DB
}

// NewPuzzleRepository creates a new PuzzleRepository implementation
func NewPuzzleRepository(db *sql.DB) repository.PuzzleRepository {
	return &puzzleRepository{db: db}
}

func (r *puzzleRepository) Get(ctx context.Context, key string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("getting puzzle: key=%s", key)

	query, args, err := sqlBuilder.
		Select("key", "theme", "words", "clues", "is_daily", "created_at").
		From("puzzles").
		Where("key = ?", key).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var p models.Puzzle
	var words, clues string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&p.Key, &p.Theme, &words, &clues, &p.IsDaily, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("puzzle not found: key=%s", key)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return nil, err
	}
	if err := decodeJSON("words", words, &p.Words); err != nil {
		return nil, err
	}
	if err := decodeJSON("clues", clues, &p.Clues); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *puzzleRepository) Save(ctx context.Context, p models.Puzzle) error {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("saving puzzle: key=%s", p.Key)

	words, err := encodeJSON("words", p.Words)
	if err != nil {
		return err
	}
	clues, err := encodeJSON("clues", p.Clues)
	if err != nil {
		return err
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := sqlBuilder.
		Insert("puzzles").
		Columns("key", "theme", "words", "clues", "is_daily", "created_at").
		Values(p.Key, p.Theme, words, clues, p.IsDaily, createdAt.UTC()).
		Suffix(`ON CONFLICT(key) DO UPDATE SET
    theme = excluded.theme,
    words = excluded.words,
    clues = excluded.clues,
    is_daily = excluded.is_daily`).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to save puzzle: %v", err)
		return err
	}
	return nil
}
