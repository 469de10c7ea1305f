package jobs

import (
	"context"
	"time"

	"github.com/vytor/wordpuzzle/internal/logger"
)

// Schedule enqueues a sweep right away and then once per interval until ctx
// is done. Enqueue failures are logged and retried on the next tick.
func Schedule(ctx context.Context, q JobQueue, interval time.Duration) {
	log := logger.FromContext(ctx).WithPrefix("scheduler")
	enqueue := func() {
		if err := q.EnqueueSweep(); err != nil {
			log.Warn("failed to enqueue retention sweep: %v", err)
		}
	}

	enqueue()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug("scheduler stopped")
			return
		case <-ticker.C:
			enqueue()
		}
	}
}
