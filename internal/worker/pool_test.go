package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := JobFunc(func(context.Context) error {
		atomic.AddInt32(&executed, 1)
		return nil
	})
	assert.True(t, pool.Enqueue(job))
	assert.True(t, pool.Enqueue(job))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == TestExpectedJobCount
	}, time.Second, 5*time.Millisecond)

	pool.Stop()
}

func TestPool_FailingJobKeepsWorkerAlive(t *testing.T) {
	var executed int32
	pool := NewPool(1, TestQueueSize)
	pool.Start()
	defer pool.Stop()

	pool.Enqueue(JobFunc(func(context.Context) error { return errors.New("boom") }))
	pool.Enqueue(JobFunc(func(context.Context) error {
		atomic.AddInt32(&executed, 1)
		return nil
	}))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()
	pool.Stop()
	assert.False(t, pool.Enqueue(JobFunc(func(context.Context) error { return nil })))
}
