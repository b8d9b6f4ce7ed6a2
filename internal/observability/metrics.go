package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// refresh pipeline.
type Metrics struct {
	CyclesTotal   *prometheus.CounterVec // labels: outcome={success,feed_error,no_stations,skipped}
	CycleDuration prometheus.Histogram

	FeedRequests *prometheus.CounterVec // labels: kind={air-temperature,relative-humidity}, outcome={success,error}
	FeedDuration *prometheus.HistogramVec

	StationsPaired  prometheus.Gauge
	StationsDropped *prometheus.CounterVec // labels: reason={unmatched,skew,stale,out_of_range}

	// Last published snapshot, for dashboards and staleness alerting.
	MeanWetBulb       prometheus.Gauge
	MeanTemperature   prometheus.Gauge
	MeanHumidity      prometheus.Gauge
	AdvisoryTier      *prometheus.GaugeVec // labels: tier; 1 for the active tier, 0 otherwise
	SnapshotTimestamp prometheus.Gauge     // unix seconds of the last publish

	PipelineRunning prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.CyclesTotal,
		m.CycleDuration,
		m.FeedRequests,
		m.FeedDuration,
		m.StationsPaired,
		m.StationsDropped,
		m.MeanWetBulb,
		m.MeanTemperature,
		m.MeanHumidity,
		m.AdvisoryTier,
		m.SnapshotTimestamp,
		m.PipelineRunning,
	)
	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		CyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wetbulb",
			Name:      "cycles_total",
			Help:      "Refresh cycles by outcome.",
		}, []string{"outcome"}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wetbulb",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete fetch-reconcile-publish cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wetbulb",
			Name:      "feed_requests_total",
			Help:      "Feed fetches by measurement kind and outcome.",
		}, []string{"kind", "outcome"}),
		FeedDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wetbulb",
			Name:      "feed_request_duration_seconds",
			Help:      "Feed fetch duration by measurement kind, retries included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),
		StationsPaired: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wetbulb",
			Name:      "stations_paired",
			Help:      "Stations contributing to the last published snapshot.",
		}),
		StationsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wetbulb",
			Name:      "stations_dropped_total",
			Help:      "Stations excluded during reconciliation, by reason.",
		}, []string{"reason"}),
		MeanWetBulb: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wetbulb",
			Name:      "mean_wet_bulb_celsius",
			Help:      "Area-mean wet-bulb temperature of the last published snapshot.",
		}),
		MeanTemperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wetbulb",
			Name:      "mean_temperature_celsius",
			Help:      "Area-mean dry-bulb temperature of the last published snapshot.",
		}),
		MeanHumidity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wetbulb",
			Name:      "mean_humidity_percent",
			Help:      "Area-mean relative humidity of the last published snapshot.",
		}),
		AdvisoryTier: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "wetbulb",
			Name:      "advisory_tier",
			Help:      "1 for the currently active advisory tier, 0 for the others.",
		}, []string{"tier"}),
		SnapshotTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wetbulb",
			Name:      "snapshot_timestamp_seconds",
			Help:      "Unix time of the last successful snapshot publish.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wetbulb",
			Name:      "pipeline_running",
			Help:      "1 while a refresh cycle is in flight.",
		}),
	}
}
