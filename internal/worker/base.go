package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/BinhiHeritage_Go/internal/logger"
)

// BaseWorker provides common functionality for background workers that manage timers
type BaseWorker struct {
	mu       sync.Mutex
	timers   map[string]*time.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
}

func (w *BaseWorker) init() {
	if w.timers == nil {
		w.timers = make(map[string]*time.Timer)
	}
	if w.shutdown == nil {
		w.shutdown = make(chan struct{})
	}
}

func (w *BaseWorker) isShutdown() bool {
	select {
	case <-w.shutdown:
		return true
	default:
		return false
	}
}

// schedule runs fn after d, replacing any pending timer for key. fn runs in a
// goroutine tracked by the worker's WaitGroup.
func (w *BaseWorker) schedule(key string, d time.Duration, fn func(ctx context.Context)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isShutdown() {
		return
	}
	if existing, ok := w.timers[key]; ok && existing.Stop() {
		w.wg.Done()
	}

	w.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.timers[key] == timer {
			delete(w.timers, key)
		}
		w.mu.Unlock()

		if w.isShutdown() {
			return
		}
		fn(context.Background())
	})
	w.timers[key] = timer
}

func (w *BaseWorker) pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

func (w *BaseWorker) shutdownInternal(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down " + workerName)

	w.mu.Lock()
	close(w.shutdown)
	for key, timer := range w.timers {
		// A stopped timer never runs its func, so release its WaitGroup slot here.
		if timer.Stop() {
			w.wg.Done()
		}
		log.Info("Cancelled pending "+workerName+" timer", "key", key)
	}
	w.timers = make(map[string]*time.Timer)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(workerName + " shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn(workerName + " shutdown timeout")
		return ctx.Err()
	}
}
