package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/BinhiHeritage_Go/internal/logger"
	"github.com/osse101/BinhiHeritage_Go/internal/worker"
)

// LogMsgJobDropped is logged when the pool queue is full at tick time
const LogMsgJobDropped = "Scheduled job dropped, worker queue full"

// Scheduler enqueues jobs on the worker pool at fixed intervals
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
	once       sync.Once
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run every interval, starting one interval from now
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// A full queue means the previous run is still backed up; skip this tick.
				if !s.workerPool.Enqueue(job) {
					logger.FromContext(context.Background()).Warn(LogMsgJobDropped, "job", name)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.once.Do(func() {
		close(s.quit)
	})
	s.wg.Wait()
}
