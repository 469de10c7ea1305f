package jobs

import (
	"time"

	"github.com/vytor/wordpuzzle/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool    *worker.Pool
	sweeper worker.Sweeper
	now     func() time.Time
}

// NewWorkerQueue creates a new WorkerQueue implementation. A nil now uses
// the wall clock.
func NewWorkerQueue(pool *worker.Pool, sweeper worker.Sweeper, now func() time.Time) *WorkerQueue {
	if now == nil {
		now = time.Now
	}
	return &WorkerQueue{pool: pool, sweeper: sweeper, now: now}
}

func (q *WorkerQueue) EnqueueSweep() error {
	return q.pool.Submit(&worker.SweepJob{Sweeper: q.sweeper, Now: q.now})
}
