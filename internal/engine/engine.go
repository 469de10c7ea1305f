// Package engine implements the rules of the two-phase word puzzle.
//
// Every operation is a pure transition: it takes a models.Game value and
// returns the next value together with a result describing what happened.
// The input game is never modified. Persisting the returned game is the
// caller's job.
package engine

import (
	"math/rand/v2"
	"time"
)

// Rand is the source of randomness used for letter reveals and the
// automatic theme hint. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Engine applies game actions.
type Engine struct {
	rand Rand
	now  func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source. Tests pass a seeded *rand.Rand.
func WithRand(r Rand) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// WithClock sets the clock used for completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine. Without options it uses the process-wide random
// source and the UTC wall clock.
func New(opts ...Option) *Engine {
	e := &Engine{
		rand: globalRand{},
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) pick(candidates []int) int {
	return candidates[e.rand.IntN(len(candidates))]
}
