package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/api"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/config"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/currencyapi"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/database"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/freshness"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/logging"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/metrics"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/repository"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/scheduler"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/secret"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/service"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/version"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("connected to database", "path", cfg.Database.Path, "version", version.Version)

	// Create repositories
	currencyRepo := repository.NewCurrencyRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)

	box, err := secret.NewBox(cfg.Security.EncryptionKey)
	if err != nil {
		return fmt.Errorf("invalid ENCRYPTION_KEY: %w", err)
	}
	if !box.Enabled() {
		logger.Warn("ENCRYPTION_KEY not set, storing an api key is disabled")
	}

	// Create services
	preferenceService, err := service.NewPreferenceService(ctx, preferenceRepo, box, freshness.Default, logger)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	rateClient := currencyapi.NewRateClient(
		cfg.CurrencyAPI.Endpoint,
		service.APIKeyResolver{Configured: cfg.CurrencyAPI.APIKey, Prefs: preferenceService},
		cfg.CurrencyAPI.Timeout,
		logger,
	)

	syncMetrics := metrics.NewSyncMetrics()
	syncService := service.NewSyncService(
		currencyRepo,
		preferenceService,
		rateClient,
		syncMetrics,
		logger,
		service.SyncOptions{
			FetchWhenEmpty: cfg.Sync.FetchWhenEmpty,
			FetchTimeout:   cfg.CurrencyAPI.Timeout,
		},
	)
	syncService.Start(ctx)
	defer func() {
		// Cancelling ends the selection watchers that Close waits for.
		stop()
		syncService.Close()
	}()

	var sched *scheduler.Scheduler
	if cfg.Sync.Schedule != "" {
		sched, err = scheduler.New(cfg.Sync.Schedule, syncService, logger)
		if err != nil {
			return err
		}
	}

	conversionService := service.NewConversionService(syncService, time.Now)
	systemService := service.NewSystemService(db, map[string]bool{
		"scheduler":  sched != nil,
		"encryption": box.Enabled(),
	})

	// Create router
	router := api.NewRouter(api.Services{
		System:     systemService,
		Sync:       syncService,
		Preference: preferenceService,
		Conversion: conversionService,
		Metrics:    syncMetrics,
	}, cfg, logger)

	// Create HTTP server. WriteTimeout stays zero so the rate stream can stay open.
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if sched != nil {
		sched.Start()
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if sched != nil {
			if err := sched.Stop(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("scheduler stop: %w", err))
			}
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}
