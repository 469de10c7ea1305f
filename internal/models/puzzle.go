package models

import (
	"fmt"
	"strings"
	"time"
)

// WordCount is the number of clue words in every puzzle.
const WordCount = 5

// Scoring constants.
const (
	PointsPerWord    = 10
	FinalAnswerBonus = 20
	MaxScore         = WordCount*PointsPerWord + FinalAnswerBonus
)

// Puzzle is a theme plus five clue words and their clues. Words[i] and
// Clues[i] always describe the same clue word.
type Puzzle struct {
	Key       string    `json:"key"`
	Theme     string    `json:"theme"`
	Words     []string  `json:"words"`
	Clues     []string  `json:"clues"`
	IsDaily   bool      `json:"is_daily"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the structural invariants of a generated puzzle.
func (p Puzzle) Validate() error {
	if strings.TrimSpace(p.Theme) == "" {
		return fmt.Errorf("puzzle has no theme")
	}
	if len(p.Words) != WordCount || len(p.Clues) != WordCount {
		return fmt.Errorf("puzzle must have %d words and clues: words=%d, clues=%d", WordCount, len(p.Words), len(p.Clues))
	}
	for i, w := range p.Words {
		if strings.TrimSpace(w) == "" {
			return fmt.Errorf("word %d is empty", i+1)
		}
	}
	return nil
}

// Clone returns a copy that shares no slices with p.
func (p Puzzle) Clone() Puzzle {
	p.Words = append([]string(nil), p.Words...)
	p.Clues = append([]string(nil), p.Clues...)
	return p
}

// Word returns the clue word at index i, or "" when i is out of range.
func (p Puzzle) Word(i int) string {
	if i < 0 || i >= len(p.Words) {
		return ""
	}
	return p.Words[i]
}

// Clue returns the clue at index i and whether it exists.
func (p Puzzle) Clue(i int) (string, bool) {
	if i < 0 || i >= len(p.Clues) {
		return "", false
	}
	return p.Clues[i], true
}
