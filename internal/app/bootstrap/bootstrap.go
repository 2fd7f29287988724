// Package bootstrap is the composition root: it loads configuration, picks
// storage adapters, wires the modules onto the bus and runs the HTTP server
// with its background workers.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	campaignservice "advidly/contexts/ad-operations/campaign-service"
	campaignmemory "advidly/contexts/ad-operations/campaign-service/adapters/memory"
	campaignpostgres "advidly/contexts/ad-operations/campaign-service/adapters/postgres"
	videoservice "advidly/contexts/creator-studio/video-service"
	videomemory "advidly/contexts/creator-studio/video-service/adapters/memory"
	videopostgres "advidly/contexts/creator-studio/video-service/adapters/postgres"
	accountservice "advidly/contexts/identity-access/account-service"
	accountmemory "advidly/contexts/identity-access/account-service/adapters/memory"
	accountpostgres "advidly/contexts/identity-access/account-service/adapters/postgres"
	"advidly/internal/platform/config"
	"advidly/internal/platform/db"
	"advidly/internal/platform/filestore"
	"advidly/internal/platform/httpserver"
	"advidly/internal/platform/messaging"
)

type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Server    *httpserver.Server
	Accounts  accountservice.Module
	Campaigns campaignservice.Module
	Videos    videoservice.Module

	postgres *db.Postgres
}

func BuildAPI() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		"service", cfg.ServiceName,
	)
	bus := messaging.NewBus(logger)

	files, err := filestore.New(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if cfg.PostgresDSN != "" {
		pg, err := db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		app.postgres = pg

		accountRepo := accountpostgres.NewRepository(pg.DB, logger)
		app.Accounts = accountservice.NewModule(accountservice.Dependencies{
			Users:      accountRepo,
			Sessions:   accountRepo,
			Clock:      accountpostgres.SystemClock{},
			Tokens:     accountpostgres.UUIDTokenGenerator{},
			SessionTTL: cfg.SessionTTL,
			Logger:     logger,
		})

		campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)
		app.Campaigns = campaignservice.NewModule(campaignservice.Dependencies{
			Campaigns:  campaignRepo,
			Ads:        campaignRepo,
			Clock:      campaignpostgres.SystemClock{},
			Subscriber: bus,
			Logger:     logger,
		})

		videoRepo := videopostgres.NewRepository(pg.DB, logger)
		app.Videos = videoservice.NewModule(videoservice.Dependencies{
			Videos:          videoRepo,
			Placements:      videoRepo,
			Clock:           videopostgres.SystemClock{},
			Publisher:       bus,
			ProcessingDelay: cfg.ProcessingDelay,
			Logger:          logger,
		})
	} else {
		accountStore := accountmemory.NewStore()
		app.Accounts = accountservice.NewModule(accountservice.Dependencies{
			Users:      accountStore,
			Sessions:   accountStore,
			Clock:      accountStore,
			Tokens:     accountStore,
			SessionTTL: cfg.SessionTTL,
			Logger:     logger,
		})
		app.Accounts.Store = accountStore

		campaignStore := campaignmemory.NewStore()
		app.Campaigns = campaignservice.NewModule(campaignservice.Dependencies{
			Campaigns:  campaignStore,
			Ads:        campaignStore,
			Clock:      campaignStore,
			Subscriber: bus,
			Logger:     logger,
		})
		app.Campaigns.Store = campaignStore

		videoStore := videomemory.NewStore()
		app.Videos = videoservice.NewModule(videoservice.Dependencies{
			Videos:          videoStore,
			Placements:      videoStore,
			Clock:           videoStore,
			Publisher:       bus,
			ProcessingDelay: cfg.ProcessingDelay,
			Logger:          logger,
		})
		app.Videos.Store = videoStore
	}

	app.Server = httpserver.New(
		app.Accounts,
		app.Campaigns,
		app.Videos,
		files,
		logger,
		":"+cfg.HTTPPort,
	)
	return app, nil
}

// Run starts the projection consumer, the worker loops and the HTTP server,
// then blocks until the context is cancelled and everything has drained.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Campaigns.Consumer.Start(ctx); err != nil {
		return err
	}
	go a.runWorkers(ctx)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("http shutdown failed",
			"event", "http_shutdown_failed",
			"module", "internal/app/bootstrap",
			"layer", "app",
			"error", err.Error(),
		)
	}
	if a.postgres != nil {
		_ = a.postgres.Close()
	}

	a.Logger.Info("app stopped",
		"event", "app_stopped",
		"module", "internal/app/bootstrap",
		"layer", "app",
	)
	return nil
}

// runWorkers drives the session pruner and the video processing sweep on
// one shared ticker. Workers live in the API process because the memory
// stores cannot be shared across processes.
func (a *App) runWorkers(ctx context.Context) {
	ticker := time.NewTicker(a.Config.WorkerPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.Videos.Sweep.RunOnce(ctx); err != nil {
				a.Logger.Error("processing sweep run failed",
					"event", "worker_run_failed",
					"module", "internal/app/bootstrap",
					"layer", "app",
					"worker", "processing_sweep",
					"error", err.Error(),
				)
			}
			if err := a.Accounts.Pruner.RunOnce(ctx); err != nil {
				a.Logger.Error("session pruner run failed",
					"event", "worker_run_failed",
					"module", "internal/app/bootstrap",
					"layer", "app",
					"worker", "session_pruner",
					"error", err.Error(),
				)
			}
		}
	}
}
