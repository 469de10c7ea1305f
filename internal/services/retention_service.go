package services

import (
	"context"
	"time"

	"github.com/vytor/wordpuzzle/internal/errors"
	"github.com/vytor/wordpuzzle/internal/logger"
	"github.com/vytor/wordpuzzle/internal/repository"
)

// RetentionService prunes finished games.
type RetentionService interface {
	// Sweep deletes inactive games started more than the retention window
	// before now and reports how many went.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

type retentionService struct {
	gameRepo repository.GameRepository
	keep     time.Duration
}

// NewRetentionService creates a RetentionService keeping games for days days.
func NewRetentionService(gameRepo repository.GameRepository, days int) RetentionService {
	return &retentionService{gameRepo: gameRepo, keep: time.Duration(days) * 24 * time.Hour}
}

func (s *retentionService) Sweep(ctx context.Context, now time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("retention")
	cutoff := now.Add(-s.keep)

	n, err := s.gameRepo.DeleteInactiveBefore(ctx, cutoff)
	if err != nil {
		log.Error("failed to sweep old games: %v", err)
		return 0, errors.NewInternalError(err)
	}
	if n > 0 {
		log.Info("removed %d games started before %s", n, cutoff.Format(time.RFC3339))
	}
	return n, nil
}
