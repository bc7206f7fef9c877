package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/scheduler"
	"github.com/osse101/BinhiHeritage_Go/internal/server"
	"github.com/osse101/BinhiHeritage_Go/internal/sse"
	"github.com/osse101/BinhiHeritage_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	CheckoutWorker     *worker.CheckoutWorker
	ConfirmationWorker *worker.ConfirmationWorker
	Scheduler          *scheduler.Scheduler
	Pool               *worker.Pool
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	Storage            *Storage
}

// GracefulShutdown stops the server first so no new checkouts arrive, then
// the workers and scheduled jobs, then the event stream, and finally flushes
// the publisher before the store goes away.
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.CheckoutWorker != nil {
		shutdownWorker(ctx, "checkout", components.CheckoutWorker)
	}
	if components.ConfirmationWorker != nil {
		shutdownWorker(ctx, "confirmation", components.ConfirmationWorker)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.Pool != nil {
		components.Pool.Stop()
	}
	if components.Hub != nil {
		components.Hub.Stop()
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Storage != nil {
		components.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownable interface {
	Shutdown(context.Context) error
}

func shutdownWorker(ctx context.Context, name string, w shutdownable) {
	if err := w.Shutdown(ctx); err != nil {
		slog.Error(LogMsgWorkerShutdownFailed, "worker", name, "error", err)
	}
}
