package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
)

// CheckoutService is the part of the adoption service the worker drives
type CheckoutService interface {
	Complete(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error)
	Processing(ctx context.Context) ([]domain.CheckoutSession, error)
}

// CheckoutWorker completes confirmed checkouts after the simulated processing delay
type CheckoutWorker struct {
	BaseWorker
	service CheckoutService
	delay   time.Duration
}

// NewCheckoutWorker creates a new CheckoutWorker
func NewCheckoutWorker(service CheckoutService, delay time.Duration) *CheckoutWorker {
	w := &CheckoutWorker{service: service, delay: delay}
	w.init()
	return w
}

// Start schedules any session already waiting in processing
func (w *CheckoutWorker) Start() {
	ctx := context.Background()
	sessions, err := w.service.Processing(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToLoadProcessingCheckouts, "error", err)
		return
	}
	for _, cs := range sessions {
		w.Schedule(cs.ID)
	}
}

// Subscribe subscribes the worker to checkout step changes
func (w *CheckoutWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.CheckoutStepChanged, w.handleStepChanged)
}

func (w *CheckoutWorker) handleStepChanged(_ context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.CheckoutPayloadV1](e.Payload)
	if err != nil {
		return err
	}
	if payload.Step != string(domain.StepProcessing) {
		return nil
	}
	id, err := uuid.Parse(payload.SessionID)
	if err != nil {
		return err
	}
	w.Schedule(id)
	return nil
}

// Schedule completes the session after the processing delay
func (w *CheckoutWorker) Schedule(id uuid.UUID) {
	logger.FromContext(context.Background()).Info(LogMsgSchedulingCheckoutCompletion, "session_id", id, "delay", w.delay)

	w.schedule(id.String(), w.delay, func(ctx context.Context) {
		log := logger.FromContext(ctx)
		log.Info(LogMsgCompletingCheckout, "session_id", id)
		if _, err := w.service.Complete(ctx, id); err != nil {
			log.Error(LogMsgFailedToCompleteCheckout, "session_id", id, "error", err)
		}
	})
}

// Pending is the number of scheduled completions
func (w *CheckoutWorker) Pending() int {
	return w.pending()
}

// Shutdown cancels pending completions and waits for running ones
func (w *CheckoutWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, "checkout worker")
}
