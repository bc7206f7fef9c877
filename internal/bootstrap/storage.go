package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/BinhiHeritage_Go/internal/config"
	"github.com/osse101/BinhiHeritage_Go/internal/database"
	"github.com/osse101/BinhiHeritage_Go/internal/database/memory"
	"github.com/osse101/BinhiHeritage_Go/internal/database/postgres"
	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/repository"
)

// Storage is the chosen backend. Pool is nil for the in-memory store.
type Storage struct {
	Store repository.Store
	Pool  database.Pool
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// OpenStorage returns the in-memory store unless Postgres is configured,
// in which case it migrates the schema and seeds the crop catalog.
func OpenStorage(ctx context.Context, cfg *config.Config, crops []domain.Crop) (*Storage, error) {
	if !cfg.UsePostgres() {
		slog.Info(LogMsgStorageMemory, "crops", len(crops))
		return &Storage{Store: memory.NewStore(crops)}, nil
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolSettings{
		MaxConns:    cfg.DBMaxConns,
		MaxConnIdle: DBMaxConnIdle,
		MaxConnLife: DBMaxConnLife,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenDatabase, err)
	}

	migrator, err := database.NewMigrator(pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	defer migrator.Close()

	if err := migrator.Up(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	slog.Info(LogMsgMigrationsApplied)

	store := postgres.NewStore(pool)
	if err := store.SeedCrops(ctx, crops); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSeedCrops, err)
	}

	slog.Info(LogMsgStoragePostgres, "host", cfg.DBHost, "db", cfg.DBName)
	return &Storage{Store: store, Pool: pool}, nil
}
