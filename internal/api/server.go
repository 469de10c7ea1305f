package api

import (
	"context"
	"time"

	"github.com/vytor/wordpuzzle/internal/logger"
	"github.com/vytor/wordpuzzle/internal/services"
)

// ReadyChecker reports whether a backing store can serve requests.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

type Server struct {
	SessionService services.SessionService
	GameService    services.GameService
	// Store is probed by /ready. Nil means always ready.
	Store ReadyChecker
	// RequestTimeout bounds every request when positive. Starting a game
	// can wait on puzzle generation, so keep it above the generate timeout.
	RequestTimeout time.Duration
	Log            *logger.Logger
}

func (s *Server) logger() *logger.Logger {
	if s.Log != nil {
		return s.Log
	}
	return logger.Default()
}
