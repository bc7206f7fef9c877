package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/BinhiHeritage_Go/internal/adoption"
	"github.com/osse101/BinhiHeritage_Go/internal/catalog"
	"github.com/osse101/BinhiHeritage_Go/internal/community"
	"github.com/osse101/BinhiHeritage_Go/internal/concurrency"
	"github.com/osse101/BinhiHeritage_Go/internal/config"
	"github.com/osse101/BinhiHeritage_Go/internal/content"
	"github.com/osse101/BinhiHeritage_Go/internal/database"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/eventlog"
	"github.com/osse101/BinhiHeritage_Go/internal/guide"
	"github.com/osse101/BinhiHeritage_Go/internal/handler"
	"github.com/osse101/BinhiHeritage_Go/internal/metrics"
	"github.com/osse101/BinhiHeritage_Go/internal/profile"
	"github.com/osse101/BinhiHeritage_Go/internal/quest"
	"github.com/osse101/BinhiHeritage_Go/internal/rewards"
	"github.com/osse101/BinhiHeritage_Go/internal/scheduler"
	"github.com/osse101/BinhiHeritage_Go/internal/server"
	"github.com/osse101/BinhiHeritage_Go/internal/share"
	"github.com/osse101/BinhiHeritage_Go/internal/sse"
	"github.com/osse101/BinhiHeritage_Go/internal/transparency"
	"github.com/osse101/BinhiHeritage_Go/internal/worker"
)

// App is a fully wired museum backend
type App struct {
	Server   *server.Server
	Handlers *handler.Handlers
	Services handler.Services

	storage            *Storage
	publisher          *event.ResilientPublisher
	hub                *sse.Hub
	checkoutWorker     *worker.CheckoutWorker
	confirmationWorker *worker.ConfirmationWorker
	pool               *worker.Pool
	scheduler          *scheduler.Scheduler
}

// NewApp loads content, opens storage and wires every service.
// Nothing runs in the background until Start.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	c, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadContent, err)
	}

	storage, err := OpenStorage(ctx, cfg, c.Crops)
	if err != nil {
		return nil, err
	}

	bus, publisher, err := InitializeEventSystem(cfg)
	if err != nil {
		storage.Close()
		return nil, err
	}

	defaultWallet := ""
	if len(c.Wallets) > 0 {
		defaultWallet = c.Wallets[0].Address
	}

	engine := rewards.NewEngine()
	locks := concurrency.NewLockManager()
	profiles := profile.NewService(storage.Store, c, engine, locks, profile.CacheConfig{
		Size: cfg.ProfileCacheSize,
		TTL:  cfg.ProfileCacheTTL,
	})
	tx := transparency.NewService(storage.Store, publisher, defaultWallet)
	svcs := handler.Services{
		Catalog:      catalog.NewService(storage.Store),
		Adoption:     adoption.NewService(storage.Store, profiles, tx, engine, publisher, locks),
		Profiles:     profiles,
		Quests:       quest.NewService(c.Provinces, profiles, engine, publisher),
		Transparency: tx,
		Community:    community.NewService(c.Community, c.Leaderboard, storage.Store, publisher),
		Activity:     eventlog.NewService(storage.Store, c.Activity),
		Share:        share.NewService(profiles, c.Provinces, defaultWallet),
		Guide:        guide.NewService(c.Guide, c.Highlights),
	}

	if cfg.SeedDemo {
		if err := profiles.SeedDemo(ctx); err != nil {
			storage.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedSeedDemo, err)
		}
		slog.Info(LogMsgDemoSeeded)
	}

	hub := sse.NewHub()
	hub.OnClientsChanged(func(n int) { metrics.SSEClients.Set(float64(n)) })

	app := &App{
		Services:           svcs,
		Handlers:           handler.NewHandlers(svcs),
		storage:            storage,
		publisher:          publisher,
		hub:                hub,
		checkoutWorker:     worker.NewCheckoutWorker(svcs.Adoption, cfg.CheckoutProcessingDelay),
		confirmationWorker: worker.NewConfirmationWorker(tx, cfg.ConfirmationInterval),
		pool:               worker.NewPool(WorkerPoolSize, WorkerQueueSize),
	}
	app.scheduler = scheduler.New(app.pool)

	if err := RegisterEventHandlers(EventHandlerDeps{
		Bus:                bus,
		Activity:           svcs.Activity,
		Community:          svcs.Community,
		Hub:                hub,
		CheckoutWorker:     app.checkoutWorker,
		ConfirmationWorker: app.confirmationWorker,
	}); err != nil {
		storage.Close()
		return nil, err
	}

	app.Server = server.NewServer(server.Config{
		Port:            cfg.Port,
		APIKey:          cfg.APIKey,
		TrustedProxies:  cfg.TrustedProxies,
		MaxRequestBytes: cfg.MaxRequestBytes,
		SSEKeepalive:    cfg.SSEKeepalive,
		Detector: server.DetectorConfig{
			RateLimit: cfg.RateLimitPerWindow,
			Window:    cfg.RateLimitWindow,
		},
	}, app.Handlers, hub, readinessPool(storage))

	app.schedule(cfg)
	return app, nil
}

// readinessPool keeps a memory backend's pool an untyped nil so readiness
// treats it as always up.
func readinessPool(s *Storage) database.Pool {
	if s.Pool == nil {
		return nil
	}
	return s.Pool
}

func (a *App) schedule(cfg *config.Config) {
	a.scheduler.Schedule(JobCommunityTick, cfg.CommunityTickInterval, worker.JobFunc(a.Services.Community.Tick))
	retention := time.Duration(cfg.ActivityRetentionDays) * 24 * time.Hour
	a.scheduler.Schedule(JobActivityCleanup, ActivityCleanupEvery, worker.JobFunc(func(ctx context.Context) error {
		_, err := a.Services.Activity.Prune(ctx, retention)
		return err
	}))

	ttl := cfg.SessionTTL
	a.scheduler.Schedule(JobSessionPrune, cfg.SessionPruneInterval, worker.JobFunc(func(ctx context.Context) error {
		a.Services.Adoption.Prune(ctx, time.Now().Add(-ttl))
		return nil
	}))
}

// Start launches the background workers. The HTTP server is started
// separately through Server.Start.
func (a *App) Start() {
	a.hub.Start()
	a.pool.Start()
	a.checkoutWorker.Start()
	a.confirmationWorker.Start()
}

// Shutdown stops everything in reverse dependency order
func (a *App) Shutdown(ctx context.Context) {
	GracefulShutdown(ctx, ShutdownComponents{
		Server:             a.Server,
		CheckoutWorker:     a.checkoutWorker,
		ConfirmationWorker: a.confirmationWorker,
		Scheduler:          a.scheduler,
		Pool:               a.pool,
		Hub:                a.hub,
		ResilientPublisher: a.publisher,
		Storage:            a.storage,
	})
}
