// Package memory keeps puzzles and games in process memory. It backs the
// server when DB_PATH is "memory" and doubles as a fast store for service
// tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/wordpuzzle/internal/models"
	"github.com/vytor/wordpuzzle/internal/repository"
)

// Store holds every record behind one mutex. Values go in and come out as
// copies.
type Store struct {
	mu      sync.Mutex
	now     func() time.Time
	puzzles map[string]models.Puzzle
	games   map[string]models.Game
	order   map[string]int // insertion sequence, breaks started_at ties
	seq     int
	current string
}

// NewStore creates a new empty Store. A nil now uses the wall clock.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:     now,
		puzzles: make(map[string]models.Puzzle),
		games:   make(map[string]models.Game),
		order:   make(map[string]int),
	}
}

// Puzzles returns the store's PuzzleRepository view.
func (s *Store) Puzzles() repository.PuzzleRepository { return puzzleRepository{s} }

// Games returns the store's GameRepository view.
func (s *Store) Games() repository.GameRepository { return gameRepository{s} }

type puzzleRepository struct{ s *Store }

func (r puzzleRepository) Get(_ context.Context, key string) (*models.Puzzle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.puzzles[key]
	if !ok {
		return nil, nil
	}
	p = p.Clone()
	return &p, nil
}

func (r puzzleRepository) Save(_ context.Context, p models.Puzzle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.puzzles[p.Key]; ok {
		p.CreatedAt = existing.CreatedAt
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.now()
	}
	r.s.puzzles[p.Key] = p.Clone()
	return nil
}

type gameRepository struct{ s *Store }

func (r gameRepository) Get(_ context.Context, id string) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.copyOf(id), nil
}

func (r gameRepository) Create(_ context.Context, puzzle models.Puzzle, isBonus bool) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g := models.NewGame(uuid.NewString(), puzzle, isBonus, r.s.now().UTC())
	r.s.games[g.ID] = g.Clone()
	r.s.seq++
	r.s.order[g.ID] = r.s.seq
	return &g, nil
}

func (r gameRepository) Update(_ context.Context, g models.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.games[g.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.games[g.ID] = g.Clone()
	return nil
}

func (r gameRepository) ActiveDaily(_ context.Context, date string) (*models.Game, error) {
	return r.s.newest(func(g models.Game) bool {
		return g.PuzzleKey == date && !g.IsBonus && g.IsActive
	}), nil
}

func (r gameRepository) CompletedDaily(_ context.Context, date string) (*models.Game, error) {
	return r.s.newest(func(g models.Game) bool {
		return g.PuzzleKey == date && !g.IsBonus && !g.IsActive && g.CompletedAt != nil
	}), nil
}

func (r gameRepository) DeactivateDailyExcept(_ context.Context, date, keepID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for id, g := range r.s.games {
		if id == keepID || g.PuzzleKey != date || g.IsBonus || !g.IsActive {
			continue
		}
		g.IsActive = false
		r.s.games[id] = g
		n++
	}
	return n, nil
}

func (r gameRepository) ActiveBonus(context.Context) (*models.Game, error) {
	return r.s.newest(func(g models.Game) bool { return g.IsBonus && g.IsActive }), nil
}

func (r gameRepository) Latest(context.Context) (*models.Game, error) {
	return r.s.newest(func(g models.Game) bool { return g.IsActive }), nil
}

func (r gameRepository) SetCurrent(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.games[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.current = id
	return nil
}

func (r gameRepository) Current(context.Context) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.current == "" {
		return nil, nil
	}
	return r.s.copyOf(r.s.current), nil
}

func (r gameRepository) DeleteInactiveBefore(_ context.Context, cutoff time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for id, g := range r.s.games {
		if g.IsActive || !g.StartedAt.Before(cutoff) {
			continue
		}
		delete(r.s.games, id)
		delete(r.s.order, id)
		if r.s.current == id {
			r.s.current = ""
		}
		n++
	}
	return n, nil
}

// copyOf must be called with mu held.
func (s *Store) copyOf(id string) *models.Game {
	g, ok := s.games[id]
	if !ok {
		return nil
	}
	g = g.Clone()
	return &g
}

// newest returns a copy of the most recently started game matching keep.
func (s *Store) newest(keep func(models.Game) bool) *models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []models.Game
	for _, g := range s.games {
		if keep(g) {
			matches = append(matches, g)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].StartedAt.Equal(matches[j].StartedAt) {
			return matches[i].StartedAt.After(matches[j].StartedAt)
		}
		return s.order[matches[i].ID] > s.order[matches[j].ID]
	})
	g := matches[0].Clone()
	return &g
}
