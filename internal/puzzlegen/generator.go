// Package puzzlegen produces new puzzles, either from a language model or
// from a fixed set of hand-written puzzles.
package puzzlegen

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/vytor/wordpuzzle/internal/logger"
	"github.com/vytor/wordpuzzle/internal/models"
)

// Generator produces a puzzle with a theme and five word/clue pairs. Key,
// IsDaily and CreatedAt are left for the caller to fill in.
type Generator interface {
	Generate(ctx context.Context) (models.Puzzle, error)
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// AIGenerator asks a completion backend for a puzzle sized to the
// difficulty of the current weekday.
type AIGenerator struct {
	client ClientInterface
	rand   Rand
	now    func() time.Time
}

// NewAIGenerator creates an AIGenerator. A nil r or now selects the
// process-wide random source and the local wall clock.
func NewAIGenerator(client ClientInterface, r Rand, now func() time.Time) *AIGenerator {
	if r == nil {
		r = globalRand{}
	}
	if now == nil {
		now = time.Now
	}
	return &AIGenerator{client: client, rand: r, now: now}
}

func (g *AIGenerator) Generate(ctx context.Context) (models.Puzzle, error) {
	now := g.now()
	level := Difficulty(now.Weekday(), g.rand)
	seed := now.UnixMilli() + int64(g.rand.IntN(100001))

	log := logger.FromContext(ctx).WithPrefix("puzzlegen").WithFields(map[string]any{
		"difficulty": level.Difficulty,
		"seed":       seed,
	})
	log.Debug("generating puzzle")

	text, err := g.client.Generate(ctx, BuildPrompt(level), DefaultOptions(level.Temperature(), seed))
	if err != nil {
		return models.Puzzle{}, err
	}
	p, err := ParseReply(text)
	if err != nil {
		return models.Puzzle{}, err
	}
	log.Info("generated puzzle with %d words", len(p.Words))
	return p, nil
}

// Static picks a random puzzle from the built-in fallback set.
type Static struct {
	rand Rand
}

// NewStatic creates a new Static generator. A nil r uses the process-wide source.
func NewStatic(r Rand) *Static {
	if r == nil {
		r = globalRand{}
	}
	return &Static{rand: r}
}

func (s *Static) Generate(context.Context) (models.Puzzle, error) {
	return fallbackPuzzles[s.rand.IntN(len(fallbackPuzzles))].Clone(), nil
}

// FallbackGenerator serves puzzles from an upstream generator and
// substitutes a built-in puzzle whenever the upstream fails. It never
// returns an error.
type FallbackGenerator struct {
	upstream Generator
	fallback *Static
}

// NewFallbackGenerator creates a new FallbackGenerator over upstream.
func NewFallbackGenerator(upstream Generator, r Rand) *FallbackGenerator {
	return &FallbackGenerator{upstream: upstream, fallback: NewStatic(r)}
}

func (g *FallbackGenerator) Generate(ctx context.Context) (models.Puzzle, error) {
	p, err := g.upstream.Generate(ctx)
	if err == nil {
		return p, nil
	}
	logger.FromContext(ctx).WithPrefix("puzzlegen").WithError(err).Warn("generation failed, using fallback puzzle")
	return g.fallback.Generate(ctx)
}

// FallbackPuzzles returns a copy of the built-in puzzle set.
func FallbackPuzzles() []models.Puzzle {
	out := make([]models.Puzzle, len(fallbackPuzzles))
	for i, p := range fallbackPuzzles {
		out[i] = p.Clone()
	}
	return out
}

var fallbackPuzzles = []models.Puzzle{
	{
		Theme: "BASEBALL",
		Words: []string{"PITCHER", "STRIKE", "DIAMOND", "GLOVE", "HOMERUN"},
		Clues: []string{
			"Player who throws the ball to start play",
			"When the batter misses or doesn't swing",
			"Shape of the playing field",
			"Leather hand protection for catching",
			"Hitting the ball over the fence",
		},
	},
	{
		Theme: "PIZZA",
		Words: []string{"CHEESE", "TOMATO", "SLICE", "CRUST", "OVEN"},
		Clues: []string{
			"Dairy product that melts on top",
			"Red fruit used for sauce",
			"Triangular piece you eat",
			"Baked dough on the bottom",
			"Hot appliance for baking",
		},
	},
	{
		Theme: "VOLCANO",
		Words: []string{"LAVA", "ERUPTION", "MOUNTAIN", "MAGMA", "ASH"},
		Clues: []string{
			"Molten rock flowing down the sides",
			"Explosive event from the crater",
			"Large natural elevation of earth",
			"Hot liquid rock underground",
			"Fine powder particles in the air",
		},
	},
	{
		Theme: "MOVIES",
		Words: []string{"SCREEN", "POPCORN", "ACTOR", "THEATER", "DIRECTOR"},
		Clues: []string{
			"Large white surface for projection",
			"Popular buttery snack",
			"Person who plays a character",
			"Building where films are shown",
			"Person who leads the film production",
		},
	},
	{
		Theme: "ELEPHANT",
		Words: []string{"TRUNK", "IVORY", "AFRICA", "GRAY", "MAMMAL"},
		Clues: []string{
			"Long flexible nose appendage",
			"White material from tusks",
			"Continent where they live wild",
			"Their typical skin color",
			"Class of warm-blooded animals",
		},
	},
	{
		Theme: "GUITAR",
		Words: []string{"STRINGS", "CHORDS", "ROCK", "ACOUSTIC", "FRET"},
		Clues: []string{
			"Six thin wires you pluck",
			"Multiple notes played together",
			"Genre of loud music",
			"Type without electrical amplification",
			"Metal bars along the neck",
		},
	},
	{
		Theme: "DOCTOR",
		Words: []string{"HOSPITAL", "PATIENT", "MEDICINE", "SURGERY", "NURSE"},
		Clues: []string{
			"Medical facility for treatment",
			"Person receiving medical care",
			"Drugs prescribed for illness",
			"Operation to fix internal problems",
			"Healthcare worker assisting physicians",
		},
	},
	{
		Theme: "AIRPLANE",
		Words: []string{"PILOT", "WINGS", "TAKEOFF", "FLIGHT", "LUGGAGE"},
		Clues: []string{
			"Person who flies the aircraft",
			"Large appendages for lift",
			"Leaving the ground to fly",
			"Journey through the air",
			"Bags and suitcases you bring",
		},
	},
	{
		Theme: "OCEAN",
		Words: []string{"WAVES", "SALT", "FISH", "CORAL", "TIDE"},
		Clues: []string{
			"Rolling movements of water",
			"Mineral that makes it taste different",
			"Swimming creatures with gills",
			"Colorful underwater reef builders",
			"Daily rise and fall of water level",
		},
	},
	{
		Theme: "BIRTHDAY",
		Words: []string{"CAKE", "CANDLES", "GIFTS", "PARTY", "BALLOONS"},
		Clues: []string{
			"Sweet dessert with frosting",
			"You blow these out and make a wish",
			"Wrapped presents from friends",
			"Celebration with guests",
			"Inflated decorations that float",
		},
	},
}
