package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/wordpuzzle/internal/logger"
)

func newBufferLogger(buf *bytes.Buffer, level logger.Level) *logger.Logger {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(level),
		logger.WithColors(false),
		logger.WithClock(func() time.Time { return fixed }),
	)
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, logger.WARN)

	log.Info("hidden")
	log.Warn("shown %d", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 1")
	assert.Contains(t, buf.String(), "2026-01-02 03:04:05.000 WARN")
}

func TestLogger_PrefixAndSortedFields(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, logger.DEBUG).
		WithPrefix("engine").
		WithFields(map[string]any{"game_id": "abc", "phase": 2}).
		WithError(errors.New("boom"))

	log.Debug("transition")

	out := buf.String()
	assert.Contains(t, out, "[engine]")
	assert.Contains(t, out, "transition error=boom game_id=abc phase=2")
}

func TestLogger_DerivedLoggerDoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	base := newBufferLogger(&buf, logger.DEBUG)
	_ = base.WithField("request_id", "r1")

	base.Info("plain")

	assert.NotContains(t, buf.String(), "request_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel(" error "))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, logger.INFO).WithField("request_id", "r42")
	ctx := logger.NewContext(context.Background(), log)

	logger.FromContext(ctx).Info("scoped")

	assert.Contains(t, buf.String(), "request_id=r42")
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
