package services

import (
	"context"
	"time"

	"github.com/vytor/wordpuzzle/internal/engine"
	"github.com/vytor/wordpuzzle/internal/errors"
	"github.com/vytor/wordpuzzle/internal/logger"
	"github.com/vytor/wordpuzzle/internal/models"
	"github.com/vytor/wordpuzzle/internal/puzzlegen"
	"github.com/vytor/wordpuzzle/internal/repository"
)

// MsgDailyCompleted is returned when today's puzzle has already been played.
const MsgDailyCompleted = "You've already completed today's puzzle! Say 'play bonus game' for another round."

// DateKey is the puzzle key of the daily puzzle for t.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// BonusKey is the puzzle key of a bonus puzzle created at t.
func BonusKey(t time.Time) string {
	return "bonus_" + t.UTC().Format(time.RFC3339Nano)
}

// SessionService starts and resumes games: one daily puzzle per UTC day
// plus any number of bonus rounds.
type SessionService interface {
	Start(ctx context.Context, bonus bool) (*models.ActionResponse, error)
}

type sessionService struct {
	puzzleRepo repository.PuzzleRepository
	gameRepo   repository.GameRepository
	generator  puzzlegen.Generator
	now        func() time.Time
}

// NewSessionService creates a new SessionService. A nil now uses the wall clock.
func NewSessionService(puzzleRepo repository.PuzzleRepository, gameRepo repository.GameRepository, generator puzzlegen.Generator, now func() time.Time) SessionService {
	if now == nil {
		now = time.Now
	}
	return &sessionService{
		puzzleRepo: puzzleRepo,
		gameRepo:   gameRepo,
		generator:  generator,
		now:        now,
	}
}

func (s *sessionService) Start(ctx context.Context, bonus bool) (*models.ActionResponse, error) {
	if bonus {
		return s.startBonus(ctx)
	}
	return s.startDaily(ctx)
}

func (s *sessionService) startBonus(ctx context.Context) (*models.ActionResponse, error) {
	log := logger.FromContext(ctx).WithPrefix("session")

	existing, err := s.gameRepo.ActiveBonus(ctx)
	if err != nil {
		log.Error("failed to find active bonus game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		log.Info("resuming bonus game: id=%s", existing.ID)
		return s.resume(ctx, *existing, "Continuing your bonus game. ")
	}

	puzzle, err := s.generate(ctx, BonusKey(s.now()), false)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, puzzle, true, "Bonus round! First clue: ")
}

func (s *sessionService) startDaily(ctx context.Context) (*models.ActionResponse, error) {
	today := DateKey(s.now())
	log := logger.FromContext(ctx).WithPrefix("session").WithField("date", today)

	completed, err := s.gameRepo.CompletedDaily(ctx, today)
	if err != nil {
		log.Error("failed to check completed daily game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if completed != nil {
		log.Debug("daily puzzle already completed")
		return &models.ActionResponse{Message: MsgDailyCompleted}, nil
	}

	existing, err := s.gameRepo.ActiveDaily(ctx, today)
	if err != nil {
		log.Error("failed to find active daily game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		stale, err := s.gameRepo.DeactivateDailyExcept(ctx, today, existing.ID)
		if err != nil {
			log.Error("failed to deactivate stale daily games: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if stale > 0 {
			log.Warn("deactivated %d stale daily games", stale)
		}
		log.Info("resuming daily game: id=%s", existing.ID)
		return s.resume(ctx, *existing, "Continuing today's puzzle. ")
	}

	puzzle, err := s.puzzleRepo.Get(ctx, today)
	if err != nil {
		log.Error("failed to get daily puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if puzzle == nil {
		p, err := s.generate(ctx, today, true)
		if err != nil {
			return nil, err
		}
		puzzle = &p
	}
	return s.create(ctx, *puzzle, false, "New puzzle! First clue: ")
}

// generate asks the generator for a puzzle and stores it under key.
func (s *sessionService) generate(ctx context.Context, key string, daily bool) (models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("session").WithField("puzzle_key", key)

	p, err := s.generator.Generate(ctx)
	if err != nil {
		log.Error("failed to generate puzzle: %v", err)
		return models.Puzzle{}, errors.NewInternalError(err)
	}
	if err := p.Validate(); err != nil {
		log.Error("generator returned invalid puzzle: %v", err)
		return models.Puzzle{}, errors.NewInternalError(err)
	}
	p.Key = key
	p.IsDaily = daily
	p.CreatedAt = s.now().UTC()

	if err := s.puzzleRepo.Save(ctx, p); err != nil {
		log.Error("failed to save puzzle: %v", err)
		return models.Puzzle{}, errors.NewInternalError(err)
	}
	log.Info("stored new puzzle")
	return p, nil
}

func (s *sessionService) create(ctx context.Context, puzzle models.Puzzle, bonus bool, prefix string) (*models.ActionResponse, error) {
	log := logger.FromContext(ctx).WithPrefix("session")

	g, err := s.gameRepo.Create(ctx, puzzle, bonus)
	if err != nil {
		log.Error("failed to create game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	clue, _ := puzzle.Clue(0)
	g.LastMessage = prefix + engine.ClueSentence(clue, puzzle.Word(0))

	if err := s.gameRepo.Update(ctx, *g); err != nil {
		log.Error("failed to store opening message: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if err := s.gameRepo.SetCurrent(ctx, g.ID); err != nil {
		log.Error("failed to set current game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("started game: id=%s, puzzle_key=%s, bonus=%v", g.ID, g.PuzzleKey, bonus)

	state := engine.State(*g)
	return &models.ActionResponse{Success: true, Message: g.LastMessage, GameState: &state}, nil
}

func (s *sessionService) resume(ctx context.Context, g models.Game, prefix string) (*models.ActionResponse, error) {
	if err := s.gameRepo.SetCurrent(ctx, g.ID); err != nil {
		logger.FromContext(ctx).WithPrefix("session").Error("failed to set current game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	state := engine.State(g)
	return &models.ActionResponse{Success: true, Message: prefix + state.Clue, GameState: &state}, nil
}
