package engine

import (
	"fmt"
	"strings"

	"github.com/vytor/wordpuzzle/internal/models"
)

// GiveUp ends the game and discloses every answer.
func (e *Engine) GiveUp(game models.Game) (models.Game, models.GiveUpResult) {
	next := e.finish(game, true)
	words := append([]string{}, next.Puzzle.Words...)
	theme := next.Puzzle.Theme

	return next, models.GiveUpResult{
		Success: true,
		Message: fmt.Sprintf(
			"Game over. The words were: %s. The theme was: %s. Final score: %d.",
			joinWords(words), theme, next.Score,
		),
		AllWords: words,
		Theme:    theme,
	}
}

// CurrentClue is the spoken prompt for the active word: the clue and its
// word description in phase 1, a recap of solved words, the theme shape
// and the hint letter in phase 2.
func CurrentClue(game models.Game) string {
	if game.Phase != models.PhaseTheme {
		clue, ok := game.Puzzle.Clue(game.CurrentWordIndex)
		if !ok {
			return "No clue available"
		}
		return ClueSentence(clue, game.Puzzle.Word(game.CurrentWordIndex))
	}

	solved := "none"
	if words := solvedWords(game); len(words) > 0 {
		solved = joinWords(words)
	}

	parts := []string{
		fmt.Sprintf("Your clues are: %s.", solved),
		themeShape(game.Puzzle.Theme),
	}
	if pos := game.RevealedLetters.HintPosition; pos != nil {
		if hint := hintSentence(game.Puzzle.Theme, *pos); hint != "" {
			parts = append(parts, hint)
		}
	}
	return strings.Join(parts, " ")
}

// RepairHint assigns a theme hint to a phase-2 game that has none, as
// happens with records written before hints existed. It reports whether
// the game changed.
func (e *Engine) RepairHint(game models.Game) (models.Game, bool) {
	if game.Phase != models.PhaseTheme || game.RevealedLetters.HintPosition != nil {
		return game, false
	}
	positions := letterPositions(game.Puzzle.Theme)
	if len(positions) == 0 {
		return game, false
	}
	next := game.Clone()
	pos := e.pick(positions)
	next.RevealedLetters.HintPosition = &pos
	return next, true
}

// State builds the presentation view of game.
func State(game models.Game) models.GameState {
	state := models.GameState{
		GameID:            game.ID,
		Phase:             game.Phase,
		WordNumber:        game.CurrentWordIndex + 1,
		Score:             game.Score,
		Reveals:           game.Reveals,
		SolvedWords:       solvedWords(game),
		SolvedWordIndices: game.SortedSolved(),
		IsActive:          game.IsActive,
		IsBonus:           game.IsBonus,
		LastMessage:       game.LastMessage,
	}
	if game.Phase == models.PhaseTheme {
		state.WordNumber = models.WordCount + 1
		// Records repaired by hand can reach phase 2 with no solved words;
		// show the full word list rather than an empty recap.
		if len(state.SolvedWords) == 0 {
			state.SolvedWords = append([]string{}, game.Puzzle.Words...)
		}
	}
	if state.SolvedWords == nil {
		state.SolvedWords = []string{}
	}

	if game.IsActive {
		state.Blanks = Blanks(game)
		state.Clue = CurrentClue(game)
	} else {
		state.Blanks = game.Puzzle.Theme
		state.Clue = "Game ended"
		state.ThemeRevealed = game.Puzzle.Theme
	}
	return state
}
