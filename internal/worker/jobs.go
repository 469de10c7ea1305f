package worker

import (
	"context"
	"time"

	"github.com/vytor/wordpuzzle/internal/logger"
)

// SweepJob runs one retention pass.
type SweepJob struct {
	Sweeper Sweeper
	Now     func() time.Time
}

func (j *SweepJob) Name() string { return "retention_sweep" }

func (j *SweepJob) Run(ctx context.Context) error {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	removed, err := j.Sweeper.Sweep(ctx, now())
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("sweep removed %d games", removed)
	return nil
}
