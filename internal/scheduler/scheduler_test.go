package scheduler_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heatwatch/wetbulb-advisory/internal/domain"
	"github.com/heatwatch/wetbulb-advisory/internal/observability"
	"github.com/heatwatch/wetbulb-advisory/internal/pipeline"
	"github.com/heatwatch/wetbulb-advisory/internal/scheduler"
)

type staticFeeds struct{}

func (staticFeeds) FetchTemperatures(_ context.Context) ([]domain.StationReading, error) {
	return []domain.StationReading{
		{StationID: "S109", Value: 30.0, MeasuredAt: time.Now()},
	}, nil
}

func (staticFeeds) FetchHumidities(_ context.Context) ([]domain.StationReading, error) {
	return []domain.StationReading{
		{StationID: "S109", Value: 70.0, MeasuredAt: time.Now()},
	}, nil
}

func TestScheduler_RunsFirstCycleImmediately(t *testing.T) {
	p := pipeline.New(staticFeeds{}, domain.ReconcileOptions{}, slog.Default(), observability.NewMetricsForTesting(), nil)
	s := scheduler.New(p, time.Hour, 10*time.Second, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	defer s.Stop()

	require.Eventually(t, func() bool {
		_, ok := p.Latest()
		return ok
	}, 5*time.Second, 20*time.Millisecond, "first cycle should publish without waiting for the interval")
}
