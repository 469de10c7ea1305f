package puzzlegen

import (
	"fmt"
	"time"
)

// Rand is the random source used for difficulty, seeds and fallback
// selection. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Level describes how hard a generated puzzle should be.
type Level struct {
	Difficulty  int
	Instruction string
}

// Temperature scales sampling temperature with difficulty: 0.9 for the
// easiest puzzles up to 1.35 for the hardest.
func (l Level) Temperature() float64 {
	return 0.85 + 0.05*float64(l.Difficulty)
}

// Difficulty picks the puzzle level for a day of the week. Thursdays get a
// movie theme, Sundays the hardest puzzle, every other day a random level
// between 1 and 9.
func Difficulty(day time.Weekday, r Rand) Level {
	switch day {
	case time.Thursday:
		return Level{
			Difficulty: 5,
			Instruction: `THURSDAY SPECIAL - MOVIE THEME:
Your theme MUST be a famous movie, film franchise, or movie-related concept.
Examples: STAR WARS, JAWS, TITANIC, MARVEL, PIXAR, HOLLYWOOD, CINEMA, etc.
Difficulty: Medium (5/10) - Make it recognizable but not too obvious.`,
		}
	case time.Sunday:
		return Level{
			Difficulty: 10,
			Instruction: `SUNDAY CHALLENGE - HARDEST PUZZLE:
Choose an obscure or complex theme. Make it challenging!
Difficulty: 10/10 - Use uncommon themes and tricky clues.`,
		}
	}

	d := r.IntN(9) + 1
	switch {
	case d <= 3:
		return Level{Difficulty: d, Instruction: fmt.Sprintf(`EASY PUZZLE (Difficulty %d/10):
Choose a common, everyday theme that most people would know.
Use simple, straightforward clues.`, d)}
	case d <= 6:
		return Level{Difficulty: d, Instruction: fmt.Sprintf(`MEDIUM PUZZLE (Difficulty %d/10):
Choose a moderately familiar theme.
Make clues clear but not too obvious.`, d)}
	default:
		return Level{Difficulty: d, Instruction: fmt.Sprintf(`HARD PUZZLE (Difficulty %d/10):
Choose a less common but still recognizable theme.
Make clues more challenging and require some thought.`, d)}
	}
}

const promptTemplate = `You are a creative puzzle generator. Generate a unique and interesting word puzzle.

%s

BE COMPLETELY CREATIVE AND RANDOM! Think of ANY interesting theme from the entire world:
- Objects, places, activities, concepts, animals, plants, food, tools, buildings, vehicles
- Pop culture, history, science, nature, sports, hobbies, occupations, emotions
- Household items, technology, art, music, weather, geography, mythology
- Literally ANYTHING that comes to mind - don't limit yourself!

Each puzzle should be COMPLETELY DIFFERENT from any previous puzzles.
Think of specific, tangible, interesting things that people would recognize.

Create a puzzle with these components:

1. A THEME (final answer): Choose ANY interesting noun or concept (4-15 letters, uppercase)
   - Can be single word: LIGHTHOUSE, TREEHOUSE, DETECTIVE, MICROSCOPE, SKATEBOARD
   - Can be two words: FERRIS WHEEL, FIRE STATION, COMIC BOOK, CORAL REEF, PINBALL MACHINE
   - Be creative and diverse! Think of something completely unique and different each time
   - Can be from any topic, category, or domain imaginable

2. FIVE CLUE WORDS (4-10 letters each, uppercase) that ALL strongly relate to your chosen theme
   - Must be clearly connected to the theme
   - For lower difficulty: Use more obvious words related to the theme
   - For higher difficulty: Use less obvious but still related words
   - Not synonyms of the theme
   - Each word should help players guess the theme

3. FIVE DESCRIPTIVE CLUES for each word (one sentence each)
   - Must DESCRIBE the word without revealing it directly
   - No letters, rhymes, or phonetic hints
   - Keep clues concise (under 15 words)
   - For lower difficulty: Make clues more direct and descriptive
   - For higher difficulty: Make clues require more thinking

Format your response EXACTLY like this:
THEME: CAROUSEL
WORD1: HORSES | Animals you ride in circles
WORD2: POLES | Vertical metal bars to hold onto
WORD3: ROTATE | Spin around in circles
WORD4: MUSIC | Sound played from the organ
WORD5: CARNIVAL | Event where you find this ride

Now generate a completely unique and creative puzzle with a theme you've never used before:`

// BuildPrompt renders the generation prompt for level.
func BuildPrompt(l Level) string {
	return fmt.Sprintf(promptTemplate, l.Instruction)
}
