package worker

import (
	"context"
	"time"
)

// Sweeper removes finished games older than the retention window.
// services.RetentionService satisfies it without this package importing services.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}
