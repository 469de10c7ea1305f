package services

import (
	"context"
	stderrors "errors"

	"github.com/vytor/wordpuzzle/internal/engine"
	"github.com/vytor/wordpuzzle/internal/errors"
	"github.com/vytor/wordpuzzle/internal/logger"
	"github.com/vytor/wordpuzzle/internal/models"
	"github.com/vytor/wordpuzzle/internal/repository"
)

// CurrentGameID addresses whichever game the session pointer selects.
const CurrentGameID = "current"

// Replies for actions that cannot reach the engine.
const (
	MsgNoActiveGame      = "No active game."
	MsgNoActiveGameStart = "No active game. Say 'start puzzle game' to begin."
	MsgGameNotActive     = "Game is not active."
	MsgGameNotActiveNew  = "Game is not active. Start a new game."
)

// GameService applies player actions to stored games. Every action loads
// the game, runs one engine transition and writes the whole record back
// together with the reply as last_message.
type GameService interface {
	Submit(ctx context.Context, id, answer string) (*models.ActionResponse, error)
	Reveal(ctx context.Context, id string) (*models.ActionResponse, error)
	Skip(ctx context.Context, id string) (*models.ActionResponse, error)
	GiveUp(ctx context.Context, id string) (*models.ActionResponse, error)
	Repeat(ctx context.Context, id string) (*models.ActionResponse, error)
	State(ctx context.Context, id string) (*models.GameState, error)
	// Latest returns the id of the most recently started active game.
	Latest(ctx context.Context) (string, error)
}

type gameService struct {
	gameRepo repository.GameRepository
	engine   *engine.Engine
}

// NewGameService creates a new GameService
func NewGameService(gameRepo repository.GameRepository, eng *engine.Engine) GameService {
	return &gameService{gameRepo: gameRepo, engine: eng}
}

// load resolves id to a game. A missing current pointer yields (nil, nil);
// an unknown explicit id is NOT_FOUND. Phase-2 records without a hint are
// repaired and saved on the way out.
func (s *gameService) load(ctx context.Context, id string) (*models.Game, error) {
	log := logger.FromContext(ctx).WithField("game_id", id)

	var g *models.Game
	var err error
	if id == CurrentGameID {
		g, err = s.gameRepo.Current(ctx)
	} else {
		g, err = s.gameRepo.Get(ctx, id)
	}
	if err != nil {
		log.Error("failed to load game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if g == nil {
		if id == CurrentGameID {
			return nil, nil
		}
		return nil, errors.NewNotFoundError("game", id)
	}

	if repaired, changed := s.engine.RepairHint(*g); changed {
		log.Info("assigned missing theme hint")
		if err := s.gameRepo.Update(ctx, repaired); err != nil {
			log.Error("failed to save repaired game: %v", err)
			return nil, errors.NewInternalError(err)
		}
		g = &repaired
	}
	return g, nil
}

// save stores next with message as its last reply and returns the response.
func (s *gameService) save(ctx context.Context, next models.Game, success bool, message string) (*models.ActionResponse, error) {
	next.LastMessage = message
	if err := s.gameRepo.Update(ctx, next); err != nil {
		logger.FromContext(ctx).WithField("game_id", next.ID).Error("failed to save game: %v", err)
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("game", next.ID)
		}
		return nil, errors.NewInternalError(err)
	}
	state := engine.State(next)
	return &models.ActionResponse{Success: success, Message: message, GameState: &state}, nil
}

// active loads a game that must still be in play. A nil game with a nil
// error means resp already carries the refusal.
func (s *gameService) active(ctx context.Context, id, missing, inactive string) (g *models.Game, resp *models.ActionResponse, err error) {
	g, err = s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if g == nil {
		return nil, &models.ActionResponse{Message: missing}, nil
	}
	if !g.IsActive {
		return nil, &models.ActionResponse{Message: inactive}, nil
	}
	return g, nil, nil
}

func (s *gameService) Submit(ctx context.Context, id, answer string) (*models.ActionResponse, error) {
	g, resp, err := s.active(ctx, id, MsgNoActiveGameStart, MsgGameNotActiveNew)
	if g == nil {
		return resp, err
	}
	log := logger.FromContext(ctx).WithFields(map[string]any{"game_id": g.ID, "phase": g.Phase})
	log.Debug("submitting answer")

	next, result := s.engine.Submit(*g, answer)
	switch {
	case result.GameCompleted:
		log.Info("game finished: correct=%v, score=%d", result.Correct, next.Score)
	case result.PhaseChanged:
		log.Info("all words solved, entering theme phase")
	}
	return s.save(ctx, next, result.Correct, result.Message)
}

func (s *gameService) Reveal(ctx context.Context, id string) (*models.ActionResponse, error) {
	g, resp, err := s.active(ctx, id, MsgNoActiveGame, MsgGameNotActive)
	if g == nil {
		return resp, err
	}
	next, result := s.engine.Reveal(*g)
	return s.save(ctx, next, result.Success, result.Message)
}

func (s *gameService) Skip(ctx context.Context, id string) (*models.ActionResponse, error) {
	g, resp, err := s.active(ctx, id, MsgNoActiveGame, MsgGameNotActive)
	if g == nil {
		return resp, err
	}
	next, result := s.engine.Skip(*g)
	return s.save(ctx, next, result.Success, result.Message)
}

func (s *gameService) GiveUp(ctx context.Context, id string) (*models.ActionResponse, error) {
	g, resp, err := s.active(ctx, id, MsgNoActiveGame, MsgGameNotActive)
	if g == nil {
		return resp, err
	}
	next, result := s.engine.GiveUp(*g)
	logger.FromContext(ctx).WithField("game_id", g.ID).Info("player gave up: score=%d", next.Score)
	return s.save(ctx, next, result.Success, result.Message)
}

func (s *gameService) Repeat(ctx context.Context, id string) (*models.ActionResponse, error) {
	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return &models.ActionResponse{Message: MsgNoActiveGame}, nil
	}
	return s.save(ctx, *g, true, engine.CurrentClue(*g))
}

func (s *gameService) State(ctx context.Context, id string) (*models.GameState, error) {
	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, errors.NewNotFoundError("game", id)
	}
	state := engine.State(*g)
	return &state, nil
}

func (s *gameService) Latest(ctx context.Context) (string, error) {
	g, err := s.gameRepo.Latest(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get latest game: %v", err)
		return "", errors.NewInternalError(err)
	}
	if g == nil {
		return "", errors.NewNotFoundError("game", "latest")
	}
	return g.ID, nil
}
