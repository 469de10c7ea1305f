package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(corsMiddleware)
	if s.RequestTimeout > 0 {
		r.Use(timeoutMiddleware(s.RequestTimeout))
	}

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api/game", func(r chi.Router) {
		r.Post("/start", s.handleStart)
		r.Get("/latest", s.handleLatest)
		r.Get("/{id}", s.handleState)
		r.Post("/{id}/answer", s.handleAnswer)
		r.Post("/{id}/reveal", s.handleReveal)
		r.Post("/{id}/skip", s.handleSkip)
		r.Post("/{id}/giveup", s.handleGiveUp)
		r.Post("/{id}/repeat", s.handleRepeat)
	})
	return r
}
