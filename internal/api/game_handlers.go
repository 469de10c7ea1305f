package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/wordpuzzle/internal/errors"
	"github.com/vytor/wordpuzzle/internal/logger"
	"github.com/vytor/wordpuzzle/internal/models"
)

const maxBodyBytes = 4 << 10

type startRequest struct {
	Bonus bool `json:"bonus"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err == nil || stderrors.Is(err, io.EOF) {
		return nil
	}
	return errors.NewBadRequestError("invalid JSON body")
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Debug("starting game: bonus=%v", req.Bonus)

	resp, err := s.SessionService.Start(r.Context(), req.Bonus)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	id, err := s.GameService.Latest(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"game_id": id})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state, err := s.GameService.State(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		handleError(w, r, errors.NewValidationError("answer", "required"))
		return
	}
	s.respond(w, r, func(ctx context.Context, id string) (*models.ActionResponse, error) {
		return s.GameService.Submit(ctx, id, req.Answer)
	})
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.GameService.Reveal)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.GameService.Skip)
}

func (s *Server) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.GameService.GiveUp)
}

func (s *Server) handleRepeat(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.GameService.Repeat)
}

// respond runs a game action against the {id} route parameter.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, action func(context.Context, string) (*models.ActionResponse, error)) {
	id := chi.URLParam(r, "id")
	logger.FromContext(r.Context()).WithField("game_id", id).Debug("game action")

	resp, err := action(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}
