package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/i474232898/weather-placeholder/internal/api/http"
	"github.com/i474232898/weather-placeholder/internal/config"
	"github.com/i474232898/weather-placeholder/internal/observability"
	"github.com/i474232898/weather-placeholder/internal/scheduler"
	"github.com/i474232898/weather-placeholder/internal/store"
	"github.com/i474232898/weather-placeholder/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge, nil)

	service := weather.NewService(memStore, weather.ServiceConfig{
		DefaultDays: cfg.DefaultDays,
		MaxDays:     cfg.MaxDays,
		Seed:        cfg.Seed,
	}, logger, metrics)

	if cfg.Seed == nil {
		logger.Info("SAMPLE_SEED not set; today's samples are non-deterministic")
	}

	// Scheduler that periodically regenerates today's samples.
	sched := scheduler.New(cfg.RefreshInterval, service, logger)
	if err := sched.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, httpapi.Options{
		MaxDays:   cfg.MaxDays,
		AccessLog: true,
	})

	go func() {
		logger.Info("http server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
	logger.Info("shutdown complete")
}
