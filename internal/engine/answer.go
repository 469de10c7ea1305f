package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vytor/wordpuzzle/internal/models"
)

// CheckAnswer compares submitted against the active answer: the current
// clue word in phase 1, the theme in phase 2. Case, surrounding whitespace
// and internal spaces are ignored. The unnormalized answer is returned.
func (e *Engine) CheckAnswer(game models.Game, submitted string) (bool, string) {
	var correct string
	if game.Phase == models.PhaseTheme {
		correct = game.Puzzle.Theme
	} else {
		correct = game.Puzzle.Word(game.CurrentWordIndex)
	}
	return correct != "" && normalize(submitted) == normalize(correct), correct
}

// Submit applies an answer to game.
func (e *Engine) Submit(game models.Game, submitted string) (models.Game, models.SubmitResult) {
	ok, correct := e.CheckAnswer(game, submitted)

	if game.Phase == models.PhaseTheme {
		if ok {
			return e.solveTheme(game, correct)
		}
		return e.missTheme(game, correct)
	}

	if !ok {
		return game, models.SubmitResult{
			Message: fmt.Sprintf("Wrong, try again. %s.", WordDescription(correct)),
		}
	}
	return e.solveWord(game, correct)
}

func (e *Engine) solveWord(game models.Game, correct string) (models.Game, models.SubmitResult) {
	next := game.Clone()
	idx := next.CurrentWordIndex

	next.Score += models.PointsPerWord
	next.Reveals++
	if !next.IsSolved(idx) {
		next.SolvedWords = append(next.SolvedWords, idx)
	}
	next.SkippedWords = slices.DeleteFunc(next.SkippedWords, func(i int) bool { return i == idx })

	if len(next.SolvedWords) >= models.WordCount {
		return e.enterThemePhase(next, correct)
	}

	next.CurrentWordIndex = advance(next, idx)

	return next, models.SubmitResult{
		Correct:     true,
		ScoreChange: models.PointsPerWord,
		Message:     fmt.Sprintf("Correct, %s! Score: %d. Next clue: %s", correct, next.Score, nextClue(next)),
	}
}

func (e *Engine) enterThemePhase(next models.Game, correct string) (models.Game, models.SubmitResult) {
	next.Phase = models.PhaseTheme
	next.CurrentWordIndex = 0
	next.RevealedLetters = models.NewRevealedLetters()

	theme := next.Puzzle.Theme
	hint := ""
	if positions := letterPositions(theme); len(positions) > 0 {
		pos := e.pick(positions)
		next.RevealedLetters.HintPosition = &pos
		hint = " " + hintSentence(theme, pos)
	}

	msg := fmt.Sprintf(
		"Correct, %s! You finished all %d words. Now here's the real challenge. These five words are your clues: %s. %s%s",
		correct, models.WordCount, joinWords(solvedWords(next)), themeShape(theme), hint,
	)

	return next, models.SubmitResult{
		Correct:      true,
		ScoreChange:  models.PointsPerWord,
		Message:      msg,
		PhaseChanged: true,
	}
}

func (e *Engine) solveTheme(game models.Game, correct string) (models.Game, models.SubmitResult) {
	next := e.finish(game, false)
	next.Score += models.FinalAnswerBonus

	var sb strings.Builder
	fmt.Fprintf(&sb, "Correct, %s! Final score: %d out of %d.", correct, next.Score, models.MaxScore)
	if next.Score == models.MaxScore {
		sb.WriteString(" Perfect game!")
	}
	sb.WriteString(" You've completed the puzzle! Say 'play bonus game' to play another round.")

	return next, models.SubmitResult{
		Correct:       true,
		ScoreChange:   models.FinalAnswerBonus,
		Message:       sb.String(),
		GameCompleted: true,
	}
}

func (e *Engine) missTheme(game models.Game, correct string) (models.Game, models.SubmitResult) {
	next := e.finish(game, false)
	return next, models.SubmitResult{
		Message: fmt.Sprintf(
			"Wrong! The answer was %s. Final score: %d out of %d. Better luck next time!",
			correct, next.Score, models.MaxScore,
		),
		GameCompleted: true,
	}
}

// finish marks a copy of game as ended.
// finish ends the game. A game that already ended keeps its completion
// time and give-up flag.
func (e *Engine) finish(game models.Game, gaveUp bool) models.Game {
	next := game.Clone()
	if !game.IsActive && game.CompletedAt != nil {
		return next
	}
	now := e.now()
	next.IsActive = false
	next.GaveUp = gaveUp
	next.CompletedAt = &now
	return next
}

// nextClue renders the clue sentence for the current word, or a neutral
// placeholder when the puzzle has no clue at that index.
func nextClue(game models.Game) string {
	clue, ok := game.Puzzle.Clue(game.CurrentWordIndex)
	if !ok {
		return "No clue available."
	}
	return ClueSentence(clue, game.Puzzle.Word(game.CurrentWordIndex))
}

// solvedWords lists solved clue words in index order.
func solvedWords(game models.Game) []string {
	var out []string
	for _, i := range game.SortedSolved() {
		if w := game.Puzzle.Word(i); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// letterPositions returns the offsets of every non-space character.
func letterPositions(word string) []int {
	var out []int
	for i, r := range []rune(word) {
		if r != ' ' {
			out = append(out, i)
		}
	}
	return out
}
