package engine

import (
	"fmt"
	"strings"
)

// Ordinal formats n as 1st, 2nd, 3rd, 4th, 11th, 21st and so on.
func Ordinal(n int) string {
	suffix := "th"
	if m := n % 100; m < 10 || m > 20 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// WordDescription describes the shape of an answer without revealing it,
// e.g. "Word has 5 letters" or "2 words, 11 letters".
func WordDescription(word string) string {
	count, letters := shape(word)
	if count > 1 {
		return fmt.Sprintf("%d words, %d letters", count, letters)
	}
	return fmt.Sprintf("Word has %d letters", letters)
}

// Punctuate ends a clue with a period unless it already ends in terminal
// punctuation.
func Punctuate(clue string) string {
	clue = strings.TrimSpace(clue)
	if strings.HasSuffix(clue, ".") || strings.HasSuffix(clue, "!") || strings.HasSuffix(clue, "?") {
		return clue
	}
	return clue + "."
}

// ClueSentence joins a punctuated clue and its word description.
func ClueSentence(clue, word string) string {
	return fmt.Sprintf("%s %s.", Punctuate(clue), WordDescription(word))
}

func shape(word string) (count, letters int) {
	parts := strings.Fields(word)
	for _, p := range parts {
		letters += len([]rune(p))
	}
	return len(parts), letters
}

// themeShape renders "The theme has 2 words and 11 letters."
func themeShape(theme string) string {
	count, letters := shape(theme)
	plural := "s"
	if count == 1 {
		plural = ""
	}
	return fmt.Sprintf("The theme has %d word%s and %d letters.", count, plural, letters)
}

// hintSentence renders the theme hint letter with its ordinal position
// among non-space characters, or "" when pos is out of range.
func hintSentence(theme string, pos int) string {
	runes := []rune(theme)
	if pos < 0 || pos >= len(runes) {
		return ""
	}
	ordinal := 1
	for _, r := range runes[:pos] {
		if r != ' ' {
			ordinal++
		}
	}
	return fmt.Sprintf("The %s letter is %c.", Ordinal(ordinal), runes[pos])
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "")
}

func joinWords(words []string) string {
	return strings.Join(words, ", ")
}
