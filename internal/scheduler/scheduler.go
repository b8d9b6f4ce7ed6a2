// Package scheduler owns the polling cadence. The refresh cycle itself knows
// nothing about scheduling; this package just invokes it on a timer.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/heatwatch/wetbulb-advisory/internal/pipeline"
)

// Scheduler triggers refresh cycles at a fixed interval.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	pipe         *pipeline.Pipeline
	interval     time.Duration
	cycleTimeout time.Duration
	logger       *slog.Logger
}

// New creates a Scheduler. cycleTimeout bounds each scheduled cycle so a hung
// fetch can never wedge the cadence.
func New(pipe *pipeline.Pipeline, interval, cycleTimeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler:    gocron.NewScheduler(time.UTC),
		pipe:         pipe,
		interval:     interval,
		cycleTimeout: cycleTimeout,
		logger:       logger,
	}
}

// Start schedules the periodic refresh and runs the first cycle immediately.
// Cycles inherit ctx, so cancelling it abandons any in-flight fetches.
// SingletonMode plus the pipeline's own guard means a tick that fires while a
// cycle is still running is skipped, never run concurrently.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().StartImmediately().Do(func() {
		cycleCtx, cancel := context.WithTimeout(ctx, s.cycleTimeout)
		defer cancel()

		if err := s.pipe.RunCycle(cycleCtx); err != nil && !errors.Is(err, pipeline.ErrCycleInFlight) {
			s.logger.Warn("scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", "interval", s.interval)
	return nil
}

// Stop cancels future ticks. An in-flight cycle finishes on its own context.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
