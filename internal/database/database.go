// Package database owns the Postgres connection pool and schema migrations.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the slice of *pgxpool.Pool that readiness checks need
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolSettings tunes the connection pool. Zero values fall back to pgx defaults.
type PoolSettings struct {
	MaxConns    int
	MaxConnIdle time.Duration
	MaxConnLife time.Duration
	// AppName shows up in pg_stat_activity
	AppName string
}

// NewPool opens a pool and verifies it with a ping
func NewPool(ctx context.Context, connString string, s PoolSettings) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}
	s.apply(cfg)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase,
		"max_conns", cfg.MaxConns,
		"app_name", cfg.ConnConfig.RuntimeParams[runtimeParamAppName])
	return pool, nil
}

func (s PoolSettings) apply(cfg *pgxpool.Config) {
	if s.MaxConns > 0 {
		cfg.MaxConns = int32(min(s.MaxConns, math.MaxInt32))
	}
	cfg.MinConns = min(DefaultMinConnections, cfg.MaxConns)
	if s.MaxConnIdle > 0 {
		cfg.MaxConnIdleTime = s.MaxConnIdle
	}
	if s.MaxConnLife > 0 {
		cfg.MaxConnLifetime = s.MaxConnLife
	}
	cfg.HealthCheckPeriod = DefaultHealthCheckPeriod

	name := s.AppName
	if name == "" {
		name = DefaultAppName
	}
	cfg.ConnConfig.RuntimeParams[runtimeParamAppName] = name
}
