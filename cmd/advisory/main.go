package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/heatwatch/wetbulb-advisory/internal/adapter/http"
	"github.com/heatwatch/wetbulb-advisory/internal/adapter/nea"
	"github.com/heatwatch/wetbulb-advisory/internal/config"
	"github.com/heatwatch/wetbulb-advisory/internal/domain"
	"github.com/heatwatch/wetbulb-advisory/internal/observability"
	"github.com/heatwatch/wetbulb-advisory/internal/pipeline"
	"github.com/heatwatch/wetbulb-advisory/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	feeds := nea.NewClient(cfg.FeedBaseURL, cfg.FeedTimeout, logger)
	pipe := pipeline.New(feeds, domain.ReconcileOptions{
		MaxSkew: cfg.MaxSkew,
		MaxAge:  cfg.MaxReadingAge,
	}, logger, metrics, nil)

	srv := httpadapter.NewServer(cfg.HTTPAddr, pipe, pipe, logger)
	sched := scheduler.New(pipe, cfg.PollInterval, cfg.CycleTimeout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if err := sched.Start(ctx); err != nil {
		logger.Error("scheduler start failed", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
