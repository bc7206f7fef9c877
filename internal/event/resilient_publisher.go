package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/BinhiHeritage_Go/internal/logger"
)

// ErrPublisherClosed is returned when publishing after Shutdown
var ErrPublisherClosed = errors.New("event publisher is shut down")

type retryItem struct {
	event    Event
	attempts int
	lastErr  error
	// pending lists the subscribers still owed the event; nil means all of them
	pending []int
}

// redeliverer is a bus that can retry just the subscribers that failed
type redeliverer interface {
	Redeliver(ctx context.Context, event Event, positions []int) error
}

// ResilientPublisher wraps a Bus and retries failed publishes in the
// background with exponential backoff. When the bus reports which subscribers
// failed, only those are retried. Events that exhaust their retries are
// written to a dead-letter file.
type ResilientPublisher struct {
	bus        Bus
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter

	queue    chan retryItem
	shutdown chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
	mu       sync.RWMutex
	closed   bool
}

// NewResilientPublisher creates a publisher and starts its retry loop
func NewResilientPublisher(bus Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = RetryInitialDelay
	}

	rp := &ResilientPublisher{
		bus:        bus,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		deadLetter: dlw,
		queue:      make(chan retryItem, RetryQueueBufferSize),
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryLoop()

	return rp, nil
}

// Publish delivers the event synchronously and queues it for retry on failure.
// Callers never see bus failures; only ErrPublisherClosed is returned.
func (rp *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	rp.mu.RLock()
	closed := rp.closed
	rp.mu.RUnlock()
	if closed {
		return ErrPublisherClosed
	}

	if err := rp.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "type", evt.Type, "error", err)
		rp.enqueue(retryItem{event: evt, attempts: 1, lastErr: err, pending: rp.stillPending(err)})
	}
	return nil
}

// stillPending narrows a retry to the subscribers that failed, when the bus
// can redeliver to them alone
func (rp *ResilientPublisher) stillPending(err error) []int {
	if _, ok := rp.bus.(redeliverer); !ok {
		return nil
	}
	var herr *HandlerErrors
	if errors.As(err, &herr) {
		return herr.Failed
	}
	return nil
}

func (rp *ResilientPublisher) deliver(item retryItem) error {
	if rd, ok := rp.bus.(redeliverer); ok && item.pending != nil {
		return rd.Redeliver(context.Background(), item.event, item.pending)
	}
	return rp.bus.Publish(context.Background(), item.event)
}

// PublishWithRetry is Publish for callers that have nothing to do with the error
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	_ = rp.Publish(ctx, evt)
}

// Subscribe registers a handler on the wrapped bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

func (rp *ResilientPublisher) enqueue(item retryItem) {
	select {
	case rp.queue <- item:
	default:
		slog.Error(LogMsgRetryQueueFull, "type", item.event.Type)
		rp.writeDeadLetter(item)
	}
}

func (rp *ResilientPublisher) retryLoop() {
	defer rp.wg.Done()

	for {
		select {
		case <-rp.shutdown:
			return
		case item := <-rp.queue:
			if !rp.retry(item) {
				return
			}
		}
	}
}

// retry keeps publishing one event until it succeeds or runs out of attempts.
// Returns false if shutdown interrupted the wait.
func (rp *ResilientPublisher) retry(item retryItem) bool {
	for item.attempts < rp.maxRetries {
		timer := time.NewTimer(CalculateRetryDelay(rp.baseDelay, item.attempts))
		select {
		case <-rp.shutdown:
			timer.Stop()
			slog.Warn(LogMsgEventDroppedShutdown, "type", item.event.Type, "attempts", item.attempts)
			rp.writeDeadLetter(item)
			return false
		case <-timer.C:
		}

		item.attempts++
		err := rp.deliver(item)
		if err == nil {
			slog.Info(LogMsgEventRetrySucceeded, "type", item.event.Type, "attempts", item.attempts)
			return true
		}
		item.lastErr = err
		if item.pending != nil {
			item.pending = rp.stillPending(err)
		}
		slog.Warn(LogMsgEventRetryFailed, "type", item.event.Type, "attempts", item.attempts, "error", err)
	}

	slog.Error(LogMsgEventRetryExhausted, "type", item.event.Type, "attempts", item.attempts, "error", item.lastErr)
	rp.writeDeadLetter(item)
	return true
}

func (rp *ResilientPublisher) writeDeadLetter(item retryItem) {
	if err := rp.deadLetter.Write(item.event, item.attempts, item.lastErr); err != nil {
		slog.Error(LogMsgDeadLetterWriteFailed, "type", item.event.Type, "error", err)
	}
}

// Shutdown stops the retry loop, moves queued events to the dead-letter file
// and closes it.
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	var err error
	rp.once.Do(func() {
		rp.mu.Lock()
		rp.closed = true
		rp.mu.Unlock()
		close(rp.shutdown)

		done := make(chan struct{})
		go func() {
			rp.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			slog.Warn(LogMsgShutdownTimeout)
			err = ctx.Err()
			return
		}

	drain:
		for {
			select {
			case item := <-rp.queue:
				rp.writeDeadLetter(item)
			default:
				break drain
			}
		}

		err = rp.deadLetter.Close()
	})
	return err
}
