package scheduler

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/osse101/BinhiHeritage_Go/internal/worker"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	done := make(chan struct{}, 10)
	sched.Schedule("test", 10*time.Millisecond, worker.JobFunc(func(context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	}))

	timeout := time.After(time.Second)
	for runs := 0; runs < 2; {
		select {
		case <-done:
			runs++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}
}

func TestScheduler_StopTwice(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	sched.Schedule("noop", time.Hour, worker.JobFunc(func(context.Context) error { return nil }))
	sched.Stop()
	sched.Stop()
}
