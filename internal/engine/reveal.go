package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vytor/wordpuzzle/internal/models"
)

// Reveal uncovers one random hidden letter of the active word, consuming
// a reveal. In the theme phase only a single manual reveal is allowed and
// the automatic hint letter is never chosen.
func (e *Engine) Reveal(game models.Game) (models.Game, models.ActionResult) {
	if game.Reveals <= 0 {
		return game, models.ActionResult{Message: "No reveals left. Earn more by solving words correctly."}
	}

	var word string
	var taken []int
	if game.Phase == models.PhaseTheme {
		if len(game.RevealedLetters.Final) > 0 {
			return game, models.ActionResult{Message: "No reveals allowed on the final word."}
		}
		word = game.Puzzle.Theme
		taken = slices.Clone(game.RevealedLetters.Final)
		if game.RevealedLetters.HintPosition != nil {
			taken = append(taken, *game.RevealedLetters.HintPosition)
		}
	} else {
		word = game.Puzzle.Word(game.CurrentWordIndex)
		taken = game.RevealedLetters.Words[game.CurrentWordIndex]
	}

	var eligible []int
	for _, pos := range letterPositions(word) {
		if !slices.Contains(taken, pos) {
			eligible = append(eligible, pos)
		}
	}
	if len(eligible) == 0 {
		return game, models.ActionResult{Message: "All letters already revealed."}
	}

	next := game.Clone()
	pos := e.pick(eligible)
	if next.Phase == models.PhaseTheme {
		next.RevealedLetters.Final = append(next.RevealedLetters.Final, pos)
	} else {
		idx := next.CurrentWordIndex
		next.RevealedLetters.Words[idx] = append(next.RevealedLetters.Words[idx], pos)
	}
	next.Reveals--

	return next, models.ActionResult{
		Success: true,
		Message: fmt.Sprintf("Here's a letter: %s. %d reveals left.", Blanks(next), next.Reveals),
	}
}

// Blanks renders the active word with revealed letters in place and
// underscores elsewhere, every token separated by a space and word gaps
// widened to three spaces.
func Blanks(game models.Game) string {
	var word string
	var revealed []int
	if game.Phase == models.PhaseTheme {
		word = game.Puzzle.Theme
		revealed = slices.Clone(game.RevealedLetters.Final)
		if game.RevealedLetters.HintPosition != nil {
			revealed = append(revealed, *game.RevealedLetters.HintPosition)
		}
	} else {
		word = game.Puzzle.Word(game.CurrentWordIndex)
		revealed = game.RevealedLetters.Words[game.CurrentWordIndex]
	}
	return renderBlanks(word, revealed)
}

func renderBlanks(word string, revealed []int) string {
	var tokens []string
	for i, r := range []rune(word) {
		switch {
		case r == ' ':
			if len(tokens) > 0 {
				tokens = tokens[:len(tokens)-1]
			}
			tokens = append(tokens, "   ")
		case slices.Contains(revealed, i):
			tokens = append(tokens, string(r), " ")
		default:
			tokens = append(tokens, "_", " ")
		}
	}
	if n := len(tokens); n > 0 && tokens[n-1] == " " {
		tokens = tokens[:n-1]
	}
	return strings.Join(tokens, "")
}
