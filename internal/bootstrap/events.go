package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/BinhiHeritage_Go/internal/config"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
)

// orDefault returns v unless it is the zero value
func orDefault[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}

// InitializeEventSystem returns the in-process bus and the publisher services
// send through. Events that exhaust their retries are appended to the
// dead-letter file.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	var (
		retries    = orDefault(cfg.EventMaxRetries, EventDefaultMaxRetries)
		delay      = orDefault(cfg.EventRetryDelay, EventDefaultRetryDelay)
		deadLetter = orDefault(cfg.EventDeadLetterPath, EventDefaultDeadLetterPath)
	)

	if err := os.MkdirAll(filepath.Dir(deadLetter), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, retries, delay, deadLetter)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPub, err)
	}

	slog.Info(LogMsgEventSystemInitialized, "max_retries", retries, "retry_delay", delay, "deadletter_path", deadLetter)
	return bus, publisher, nil
}
