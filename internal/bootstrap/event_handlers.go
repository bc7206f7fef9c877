package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/BinhiHeritage_Go/internal/community"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/eventlog"
	"github.com/osse101/BinhiHeritage_Go/internal/metrics"
	"github.com/osse101/BinhiHeritage_Go/internal/sse"
	"github.com/osse101/BinhiHeritage_Go/internal/worker"
)

// EventHandlerDeps lists everything that listens on the bus
type EventHandlerDeps struct {
	Bus                event.Bus
	Activity           eventlog.Service
	Community          community.Service
	Hub                *sse.Hub
	CheckoutWorker     *worker.CheckoutWorker
	ConfirmationWorker *worker.ConfirmationWorker
}

// RegisterEventHandlers subscribes every listener to the bus.
// The bus is synchronous, so listeners run in the publisher's goroutine.
func RegisterEventHandlers(deps EventHandlerDeps) error {
	if err := metrics.NewEventMetricsCollector().Register(deps.Bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if err := deps.Activity.Subscribe(deps.Bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	deps.Community.Subscribe(deps.Bus)
	sse.NewSubscriber(deps.Hub, deps.Bus).Subscribe()
	deps.CheckoutWorker.Subscribe(deps.Bus)
	deps.ConfirmationWorker.Subscribe(deps.Bus)
	return nil
}
