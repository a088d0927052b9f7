package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	followservice "plume/contexts/community/follow-service"
	followbus "plume/contexts/community/follow-service/adapters/bus"
	followpostgres "plume/contexts/community/follow-service/adapters/postgres"
	followworkers "plume/contexts/community/follow-service/application/workers"
	notificationservice "plume/contexts/community/notification-service"
	notificationpostgres "plume/contexts/community/notification-service/adapters/postgres"
	pollengine "plume/contexts/publishing/poll-engine"
	pollpostgres "plume/contexts/publishing/poll-engine/adapters/postgres"
	pollredis "plume/contexts/publishing/poll-engine/adapters/redis"
	pollports "plume/contexts/publishing/poll-engine/ports"
	postservice "plume/contexts/publishing/post-service"
	postpostgres "plume/contexts/publishing/post-service/adapters/postgres"
	"plume/internal/platform/cache"
	"plume/internal/platform/config"
	"plume/internal/platform/db"
	"plume/internal/platform/httpserver"
	"plume/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *cache.Redis
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	bus          *messaging.Bus
	followRelay  followworkers.OutboxRelay
	notifModule  notificationservice.Module
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	var rd *cache.Redis
	var tallyCache pollports.TallyCache
	if cfg.EnableTallyCache && strings.TrimSpace(cfg.RedisAddr) != "" {
		rd, err = cache.Connect(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		tallyCache = pollredis.NewCache(rd.Client)
	}

	postRepo := postpostgres.NewRepository(pg.DB, logger)
	postsModule := postservice.NewModule(postservice.Dependencies{
		Posts:  postRepo,
		Clock:  postpostgres.SystemClock{},
		IDGen:  postpostgres.UUIDGenerator{},
		Logger: logger,
	})

	pollRepo := pollpostgres.NewRepository(pg.DB, logger)
	pollsModule := pollengine.NewModule(pollengine.Dependencies{
		Polls:    pollRepo,
		Cache:    tallyCache,
		Clock:    pollpostgres.SystemClock{},
		CacheTTL: cfg.TallyCacheTTL,
		Logger:   logger,
	})

	followRepo := followpostgres.NewRepository(pg.DB)
	followsModule := followservice.NewModule(followservice.Dependencies{
		Follows:      followRepo,
		People:       followRepo,
		Outbox:       followRepo,
		Clock:        followpostgres.SystemClock{},
		IDGen:        followpostgres.UUIDGenerator{},
		EnableFanout: cfg.EnableFollowFanout,
		Logger:       logger,
	})

	notificationRepo := notificationpostgres.NewRepository(pg.DB)
	notificationsModule := notificationservice.NewModule(notificationservice.Dependencies{
		Notifications: notificationRepo,
		Clock:         notificationpostgres.SystemClock{},
		IDGen:         notificationpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	server := httpserver.New(
		postsModule,
		pollsModule,
		followsModule,
		notificationsModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		redis:    rd,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)

	followRepo := followpostgres.NewRepository(pg.DB)
	notificationRepo := notificationpostgres.NewRepository(pg.DB)
	notificationsModule := notificationservice.NewModule(notificationservice.Dependencies{
		Notifications: notificationRepo,
		Clock:         notificationpostgres.SystemClock{},
		IDGen:         notificationpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	return &WorkerApp{
		postgres: pg,
		bus:      bus,
		followRelay: followworkers.OutboxRelay{
			Outbox:    followRepo,
			Publisher: followbus.NewPublisher(bus),
			Clock:     followpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		notifModule:  notificationsModule,
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	err := w.bus.Subscribe(
		ctx,
		followworkers.FollowEventsTopic,
		"notification-service-cg",
		w.notifModule.Consumer.Handle,
	)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.followRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
