package domain

import (
	"math"
	"sort"
	"time"
)

// Defaults for the reconciliation window. A 30 minute skew tolerance matches
// the feeds' worst observed refresh lag; readings older than an hour are
// treated as a stuck sensor rather than a current observation.
const (
	DefaultMaxSkew = 30 * time.Minute
	DefaultMaxAge  = time.Hour
)

// Plausible physical bounds for the measured area. Values outside these are
// sensor faults and are rejected, not clamped.
const (
	MinPlausibleTemperature = -10.0 // °C
	MaxPlausibleTemperature = 60.0  // °C
)

// ReconcileOptions tunes the pairing window. Zero values fall back to the
// package defaults.
type ReconcileOptions struct {
	// MaxSkew is the largest allowed |temperature.MeasuredAt − humidity.MeasuredAt|.
	MaxSkew time.Duration
	// MaxAge is the oldest a reading may be, against the package clock,
	// before it is considered stale.
	MaxAge time.Duration
}

// DropStats counts stations excluded during reconciliation, by reason.
// Drops are expected operational noise, not errors.
type DropStats struct {
	Unmatched    int // present in only one feed
	SkewExceeded int // timestamps too far apart
	Stale        int // at least one reading older than MaxAge
	OutOfRange   int // value outside plausible physical bounds
}

// Total returns the number of stations dropped for any reason.
func (d DropStats) Total() int {
	return d.Unmatched + d.SkewExceeded + d.Stale + d.OutOfRange
}

// Reconcile joins the temperature and humidity feeds on station identifier
// and returns one PairedSample per station that survives the skew, staleness,
// and physical-range checks. Stations failing any check are dropped silently
// and counted in DropStats. Returns ErrNoReconcilableStations when zero
// stations survive.
//
// Output is sorted by station identifier so downstream aggregation is
// deterministic; ordering carries no other meaning.
func Reconcile(temps, humidities []StationReading, opts ReconcileOptions) ([]PairedSample, DropStats, error) {
	maxSkew := opts.MaxSkew
	if maxSkew <= 0 {
		maxSkew = DefaultMaxSkew
	}
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	humidityByStation := make(map[StationID]StationReading, len(humidities))
	for _, h := range humidities {
		humidityByStation[h.StationID] = h
	}

	var stats DropStats
	matched := make(map[StationID]struct{}, len(temps))
	samples := make([]PairedSample, 0, len(temps))
	now := clock.Now()

	for _, t := range temps {
		h, ok := humidityByStation[t.StationID]
		if !ok {
			stats.Unmatched++
			continue
		}
		matched[t.StationID] = struct{}{}

		if absDuration(t.MeasuredAt.Sub(h.MeasuredAt)) > maxSkew {
			stats.SkewExceeded++
			continue
		}
		if now.Sub(t.MeasuredAt) > maxAge || now.Sub(h.MeasuredAt) > maxAge {
			stats.Stale++
			continue
		}
		if !plausibleTemperature(t.Value) || !plausibleHumidity(h.Value) {
			stats.OutOfRange++
			continue
		}

		measuredAt := t.MeasuredAt
		if h.MeasuredAt.After(measuredAt) {
			measuredAt = h.MeasuredAt
		}
		samples = append(samples, PairedSample{
			StationID:   t.StationID,
			Temperature: t.Value,
			Humidity:    h.Value,
			MeasuredAt:  measuredAt,
		})
	}

	// Humidity-only stations count as unmatched too.
	for _, h := range humidities {
		if _, ok := matched[h.StationID]; !ok {
			stats.Unmatched++
		}
	}

	if len(samples) == 0 {
		return nil, stats, ErrNoReconcilableStations
	}

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].StationID < samples[j].StationID
	})
	return samples, stats, nil
}

func plausibleTemperature(v float64) bool {
	return !math.IsNaN(v) && v >= MinPlausibleTemperature && v <= MaxPlausibleTemperature
}

func plausibleHumidity(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 100
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
