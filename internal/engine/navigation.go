package engine

import (
	"fmt"
	"slices"

	"github.com/vytor/wordpuzzle/internal/models"
)

// firstOpen scans forward circularly from start+1 for an index that is
// neither solved nor skipped.
func firstOpen(game models.Game, start int) (int, bool) {
	next := (start + 1) % models.WordCount
	for range models.WordCount {
		if !game.IsSolved(next) && !game.IsSkipped(next) {
			return next, true
		}
		next = (next + 1) % models.WordCount
	}
	return 0, false
}

// advance picks the word shown after a correct answer. When every other
// word is solved or skipped it falls back to the earliest skipped word.
func advance(game models.Game, start int) int {
	if next, ok := firstOpen(game, start); ok {
		return next
	}
	if len(game.SkippedWords) > 0 {
		return game.SkippedWords[0]
	}
	return game.CurrentWordIndex
}

// rotate picks the word shown after a skip. When only skipped words remain
// it cycles to the skipped word after start, wrapping around.
func rotate(game models.Game, start int) int {
	if next, ok := firstOpen(game, start); ok {
		return next
	}
	if len(game.SkippedWords) > 0 {
		pos := slices.Index(game.SkippedWords, start)
		return game.SkippedWords[(pos+1)%len(game.SkippedWords)]
	}
	return game.CurrentWordIndex
}

// Skip defers the current word and moves to the next one. Only allowed
// while guessing clue words.
func (e *Engine) Skip(game models.Game) (models.Game, models.ActionResult) {
	if game.Phase != models.PhaseWords {
		return game, models.ActionResult{Message: "Can't skip during final answer phase."}
	}

	next := game.Clone()
	start := next.CurrentWordIndex
	if !next.IsSkipped(start) {
		next.SkippedWords = append(next.SkippedWords, start)
	}
	next.CurrentWordIndex = rotate(next, start)

	return next, models.ActionResult{
		Success: true,
		Message: fmt.Sprintf("Skipped. Next clue: %s", nextClue(next)),
	}
}
