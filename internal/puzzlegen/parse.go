package puzzlegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vytor/wordpuzzle/internal/models"
)

// ErrIncompleteReply is returned when a reply lacks a theme or does not
// carry exactly five word/clue pairs.
var ErrIncompleteReply = errors.New("incomplete puzzle reply")

// ParseReply reads a reply in the form
//
//	THEME: CAROUSEL
//	WORD1: HORSES | Animals you ride in circles
//	...
//
// Words and theme are uppercased. WORD lines without a "|" are ignored.
func ParseReply(text string) (models.Puzzle, error) {
	var theme string
	var words, clues []string

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "THEME:"):
			theme = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(line, "THEME:")))
		case strings.HasPrefix(line, "WORD"):
			_, rest, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			word, clue, ok := strings.Cut(rest, "|")
			if !ok {
				continue
			}
			words = append(words, strings.ToUpper(strings.TrimSpace(word)))
			clues = append(clues, strings.TrimSpace(clue))
		}
	}

	if theme == "" || len(words) != models.WordCount || len(clues) != models.WordCount {
		return models.Puzzle{}, fmt.Errorf("%w: theme=%q, words=%d, clues=%d",
			ErrIncompleteReply, theme, len(words), len(clues))
	}

	p := models.Puzzle{Theme: theme, Words: words, Clues: clues}
	if err := p.Validate(); err != nil {
		return models.Puzzle{}, fmt.Errorf("%w: %v", ErrIncompleteReply, err)
	}
	return p, nil
}
