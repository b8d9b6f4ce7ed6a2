// Package pipeline drives the fetch-reconcile-derive-publish refresh cycle
// and owns the single published AreaSnapshot.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/heatwatch/wetbulb-advisory/internal/domain"
	"github.com/heatwatch/wetbulb-advisory/internal/observability"
)

// ErrCycleInFlight is returned when a refresh is triggered while another
// cycle is still running. Cycles are never pipelined; the trigger is skipped.
var ErrCycleInFlight = errors.New("refresh cycle already in flight")

// Feed kind labels used in logs and metrics.
const (
	feedTemperature = "air-temperature"
	feedHumidity    = "relative-humidity"
)

// FeedSource fetches the current station snapshot for each measurement kind.
// Implementations must return a complete, internally consistent set or an
// error — never a partial set.
type FeedSource interface {
	FetchTemperatures(ctx context.Context) ([]domain.StationReading, error)
	FetchHumidities(ctx context.Context) ([]domain.StationReading, error)
}

// Pipeline composes feed fetching, reconciliation, wet-bulb derivation,
// aggregation, and classification into one refresh cycle, and holds the last
// successfully published snapshot.
type Pipeline struct {
	feeds   FeedSource
	opts    domain.ReconcileOptions
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock

	// cycleMu enforces the single-writer model: TryLock, never Lock, so a
	// trigger arriving mid-cycle is skipped instead of queued.
	cycleMu  sync.Mutex
	snapshot atomic.Pointer[domain.AreaSnapshot]
}

// New creates a Pipeline. A nil clock means real time.
func New(feeds FeedSource, opts domain.ReconcileOptions, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		feeds:   feeds,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

// Latest returns a copy of the last published snapshot. Never blocks; the
// second return is false before the first successful cycle.
func (p *Pipeline) Latest() (domain.AreaSnapshot, bool) {
	snap := p.snapshot.Load()
	if snap == nil {
		return domain.AreaSnapshot{}, false
	}
	return *snap, true
}

// CheckReadiness returns nil once the first snapshot has been published.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.snapshot.Load() == nil {
		return errors.New("no snapshot published yet")
	}
	return nil
}

// RunCycle executes one refresh cycle. On any failure the previously
// published snapshot remains visible; no partial snapshot is ever stored.
// Returns ErrCycleInFlight when another cycle is already running.
func (p *Pipeline) RunCycle(ctx context.Context) error {
	if !p.cycleMu.TryLock() {
		p.metrics.CyclesTotal.WithLabelValues("skipped").Inc()
		p.logger.Debug("refresh trigger skipped, cycle in flight")
		return ErrCycleInFlight
	}
	defer p.cycleMu.Unlock()

	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	start := p.clock.Now()

	temps, humidities, err := p.fetchBoth(ctx)
	if err != nil {
		p.metrics.CyclesTotal.WithLabelValues("feed_error").Inc()
		p.logger.Error("cycle aborted, keeping previous snapshot", "error", err)
		return err
	}

	samples, drops, err := domain.Reconcile(temps, humidities, p.opts)
	p.recordDrops(drops)
	if err != nil {
		p.metrics.CyclesTotal.WithLabelValues("no_stations").Inc()
		p.logger.Warn("cycle aborted, keeping previous snapshot",
			"error", err,
			"temperature_stations", len(temps),
			"humidity_stations", len(humidities),
			"dropped", drops.Total(),
		)
		return err
	}

	estimates := make([]domain.StationEstimate, 0, len(samples))
	for _, s := range samples {
		estimates = append(estimates, domain.EstimateWetBulb(s))
	}

	means, err := domain.Aggregate(estimates, samples)
	if err != nil {
		// Unreachable after the reconciler check, but a zero-station mean
		// must never be classified.
		p.metrics.CyclesTotal.WithLabelValues("no_stations").Inc()
		p.logger.Error("aggregation failed", "error", err)
		return err
	}

	snap := &domain.AreaSnapshot{
		Timestamp:       p.clock.Now(),
		MeanTemperature: means.MeanTemperature,
		MeanHumidity:    means.MeanHumidity,
		MeanWetBulb:     means.MeanWetBulb,
		Advisory:        domain.Classify(means.MeanWetBulb),
		StationCount:    means.StationCount,
	}
	p.publish(snap)

	p.metrics.CyclesTotal.WithLabelValues("success").Inc()
	p.metrics.CycleDuration.Observe(p.clock.Now().Sub(start).Seconds())
	p.logger.Info("snapshot published",
		"stations", snap.StationCount,
		"mean_wet_bulb", snap.MeanWetBulb,
		"tier", snap.Advisory.Tier,
		"dropped", drops.Total(),
	)
	return nil
}

// fetchBoth runs the two feed fetches concurrently and waits for both. A
// failure on either cancels the other; the cycle needs both snapshots.
func (p *Pipeline) fetchBoth(ctx context.Context) (temps, humidities []domain.StationReading, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		temps, err = p.fetchFeed(gctx, feedTemperature, p.feeds.FetchTemperatures)
		return err
	})
	g.Go(func() error {
		var err error
		humidities, err = p.fetchFeed(gctx, feedHumidity, p.feeds.FetchHumidities)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return temps, humidities, nil
}

func (p *Pipeline) fetchFeed(ctx context.Context, kind string, fetch func(context.Context) ([]domain.StationReading, error)) ([]domain.StationReading, error) {
	start := p.clock.Now()
	readings, err := fetch(ctx)
	p.metrics.FeedDuration.WithLabelValues(kind).Observe(p.clock.Now().Sub(start).Seconds())

	if err != nil {
		p.metrics.FeedRequests.WithLabelValues(kind, "error").Inc()
		return nil, err
	}
	p.metrics.FeedRequests.WithLabelValues(kind, "success").Inc()
	return readings, nil
}

// publish swaps the snapshot reference atomically and updates the exported
// gauges. Readers only ever see the previous or the new snapshot, whole.
func (p *Pipeline) publish(snap *domain.AreaSnapshot) {
	p.snapshot.Store(snap)

	p.metrics.StationsPaired.Set(float64(snap.StationCount))
	p.metrics.MeanWetBulb.Set(snap.MeanWetBulb)
	p.metrics.MeanTemperature.Set(snap.MeanTemperature)
	p.metrics.MeanHumidity.Set(snap.MeanHumidity)
	p.metrics.SnapshotTimestamp.Set(float64(snap.Timestamp.Unix()))
	for _, tier := range []domain.AdvisoryTier{domain.TierLow, domain.TierModerate, domain.TierHigh, domain.TierExtreme} {
		v := 0.0
		if tier == snap.Advisory.Tier {
			v = 1.0
		}
		p.metrics.AdvisoryTier.WithLabelValues(string(tier)).Set(v)
	}
}

func (p *Pipeline) recordDrops(drops domain.DropStats) {
	p.metrics.StationsDropped.WithLabelValues("unmatched").Add(float64(drops.Unmatched))
	p.metrics.StationsDropped.WithLabelValues("skew").Add(float64(drops.SkewExceeded))
	p.metrics.StationsDropped.WithLabelValues("stale").Add(float64(drops.Stale))
	p.metrics.StationsDropped.WithLabelValues("out_of_range").Add(float64(drops.OutOfRange))
}
