package worker

import (
	"context"
	"time"

	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
)

// ConfirmationService is the part of the transparency service the worker drives
type ConfirmationService interface {
	AddConfirmation(ctx context.Context, hash string) (int, bool, error)
	Pending(ctx context.Context) ([]string, error)
}

// ConfirmationWorker adds one simulated block confirmation per interval to
// each tracked transaction until it is final.
type ConfirmationWorker struct {
	BaseWorker
	service  ConfirmationService
	interval time.Duration
}

// NewConfirmationWorker creates a new ConfirmationWorker
func NewConfirmationWorker(service ConfirmationService, interval time.Duration) *ConfirmationWorker {
	w := &ConfirmationWorker{service: service, interval: interval}
	w.init()
	return w
}

// Start resumes tracking of every transaction that is not yet final
func (w *ConfirmationWorker) Start() {
	ctx := context.Background()
	hashes, err := w.service.Pending(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToLoadPendingTransactions, "error", err)
		return
	}
	for _, h := range hashes {
		w.Track(h)
	}
}

// Subscribe tracks the transaction of every completed adoption
func (w *ConfirmationWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.AdoptionCompleted, w.handleAdoptionCompleted)
}

func (w *ConfirmationWorker) handleAdoptionCompleted(_ context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.AdoptionCompletedPayloadV1](e.Payload)
	if err != nil {
		return err
	}
	if payload.TxHash != "" {
		w.Track(payload.TxHash)
	}
	return nil
}

// Track starts confirming hash
func (w *ConfirmationWorker) Track(hash string) {
	logger.FromContext(context.Background()).Info(LogMsgTrackingTransaction, "tx_hash", hash, "interval", w.interval)
	w.next(hash)
}

func (w *ConfirmationWorker) next(hash string) {
	w.schedule(hash, w.interval, func(ctx context.Context) {
		log := logger.FromContext(ctx)
		n, final, err := w.service.AddConfirmation(ctx, hash)
		if err != nil {
			log.Error(LogMsgFailedToAddConfirmation, "tx_hash", hash, "error", err)
			return
		}
		if final {
			log.Info(LogMsgTransactionFinal, "tx_hash", hash, "confirmations", n)
			return
		}
		w.next(hash)
	})
}

// Pending is the number of transactions being tracked
func (w *ConfirmationWorker) Pending() int {
	return w.pending()
}

// Shutdown stops tracking and waits for in-flight confirmations
func (w *ConfirmationWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, "confirmation worker")
}
