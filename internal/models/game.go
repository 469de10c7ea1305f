package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"time"
)

// Game phases.
const (
	PhaseWords = 1
	PhaseTheme = 2
)

// Keys used by the persisted revealed-letters record.
const (
	revealedFinalKey = "final"
	revealedHintKey  = "phase2_hint_position"
)

// Game is the state of one attempt at a puzzle.
type Game struct {
	ID               string          `json:"id"`
	PuzzleKey        string          `json:"puzzle_key"`
	Puzzle           Puzzle          `json:"puzzle"`
	IsBonus          bool            `json:"is_bonus"`
	Phase            int             `json:"phase"`
	CurrentWordIndex int             `json:"current_word_index"`
	Score            int             `json:"score"`
	Reveals          int             `json:"reveals"`
	SolvedWords      []int           `json:"solved_words"`
	SkippedWords     []int           `json:"skipped_words"` // FIFO order
	RevealedLetters  RevealedLetters `json:"revealed_letters"`
	IsActive         bool            `json:"is_active"`
	GaveUp           bool            `json:"gave_up"`
	LastMessage      string          `json:"last_message,omitempty"`
	StartedAt        time.Time       `json:"started_at"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
}

// NewGame returns a fresh phase-1 game for puzzle.
func NewGame(id string, puzzle Puzzle, isBonus bool, startedAt time.Time) Game {
	return Game{
		ID:               id,
		PuzzleKey:        puzzle.Key,
		Puzzle:           puzzle.Clone(),
		IsBonus:          isBonus,
		Phase:            PhaseWords,
		CurrentWordIndex: 0,
		SolvedWords:      []int{},
		SkippedWords:     []int{},
		RevealedLetters:  NewRevealedLetters(),
		IsActive:         true,
		StartedAt:        startedAt,
	}
}

// Clone returns a deep copy of g.
func (g Game) Clone() Game {
	g.Puzzle = g.Puzzle.Clone()
	g.SolvedWords = append([]int{}, g.SolvedWords...)
	g.SkippedWords = append([]int{}, g.SkippedWords...)
	g.RevealedLetters = g.RevealedLetters.Clone()
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		g.CompletedAt = &t
	}
	return g
}

// IsSolved reports whether word index i has been answered.
func (g Game) IsSolved(i int) bool {
	return slices.Contains(g.SolvedWords, i)
}

// IsSkipped reports whether word index i is deferred.
func (g Game) IsSkipped(i int) bool {
	return slices.Contains(g.SkippedWords, i)
}

// SortedSolved returns the solved indices in ascending order.
func (g Game) SortedSolved() []int {
	out := append([]int{}, g.SolvedWords...)
	sort.Ints(out)
	return out
}

// RevealedLetters records revealed character positions per word index,
// for the theme, and the automatic phase-2 hint position.
type RevealedLetters struct {
	Words        map[int][]int
	Final        []int
	HintPosition *int
}

// NewRevealedLetters returns an empty record.
func NewRevealedLetters() RevealedLetters {
	return RevealedLetters{Words: map[int][]int{}}
}

// Clone returns a deep copy of r.
func (r RevealedLetters) Clone() RevealedLetters {
	out := RevealedLetters{Words: make(map[int][]int, len(r.Words))}
	for k, v := range r.Words {
		out.Words[k] = append([]int{}, v...)
	}
	if r.Final != nil {
		out.Final = append([]int{}, r.Final...)
	}
	if r.HintPosition != nil {
		h := *r.HintPosition
		out.HintPosition = &h
	}
	return out
}

// MarshalJSON writes the record using string keys: word indices, "final"
// and "phase2_hint_position".
func (r RevealedLetters) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Words)+2)
	for k, v := range r.Words {
		out[strconv.Itoa(k)] = v
	}
	if len(r.Final) > 0 {
		out[revealedFinalKey] = r.Final
	}
	if r.HintPosition != nil {
		out[revealedHintKey] = *r.HintPosition
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the string-keyed form written by MarshalJSON.
func (r *RevealedLetters) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = NewRevealedLetters()
	for k, v := range raw {
		switch k {
		case revealedFinalKey:
			if err := json.Unmarshal(v, &r.Final); err != nil {
				return fmt.Errorf("revealed letters %q: %w", k, err)
			}
		case revealedHintKey:
			var pos *int
			if err := json.Unmarshal(v, &pos); err != nil {
				return fmt.Errorf("revealed letters %q: %w", k, err)
			}
			r.HintPosition = pos
		default:
			idx, err := strconv.Atoi(k)
			if err != nil {
				return fmt.Errorf("revealed letters: unknown key %q", k)
			}
			var positions []int
			if err := json.Unmarshal(v, &positions); err != nil {
				return fmt.Errorf("revealed letters %q: %w", k, err)
			}
			r.Words[idx] = positions
		}
	}
	return nil
}
