package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heatwatch/wetbulb-advisory/internal/domain"
)

var baseTime = time.Date(2025, time.June, 14, 12, 0, 0, 0, time.UTC)

func freezeClock(t *testing.T) clockwork.Clock {
	t.Helper()
	fake := clockwork.NewFakeClockAt(baseTime)
	domain.SetClock(fake)
	t.Cleanup(func() {
		domain.SetClock(nil)
	})
	return fake
}

func reading(id string, value float64, at time.Time) domain.StationReading {
	return domain.StationReading{
		StationID:  domain.NormalizeStationID(id),
		Value:      value,
		MeasuredAt: at,
	}
}

func TestReconcile_IntersectsStationSets(t *testing.T) {
	freezeClock(t)

	temps := []domain.StationReading{
		reading("A", 30.1, baseTime),
		reading("B", 29.8, baseTime),
		reading("C", 31.0, baseTime),
	}
	humidities := []domain.StationReading{
		reading("B", 70.0, baseTime),
		reading("C", 65.5, baseTime),
		reading("D", 80.0, baseTime),
	}

	samples, drops, err := domain.Reconcile(temps, humidities, domain.ReconcileOptions{})
	require.NoError(t, err)

	ids := make([]domain.StationID, 0, len(samples))
	for _, s := range samples {
		ids = append(ids, s.StationID)
	}
	assert.Equal(t, []domain.StationID{"B", "C"}, ids)
	assert.Equal(t, 2, drops.Unmatched) // A (temp only) and D (humidity only)
	assert.Zero(t, drops.SkewExceeded)
}

func TestReconcile_NormalizesStationIDs(t *testing.T) {
	freezeClock(t)

	temps := []domain.StationReading{reading("  s109 ", 30.0, baseTime)}
	humidities := []domain.StationReading{reading("S109", 70.0, baseTime)}

	samples, _, err := domain.Reconcile(temps, humidities, domain.ReconcileOptions{})
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, domain.StationID("S109"), samples[0].StationID)
}

func TestReconcile_ExcludesSkewedPairs(t *testing.T) {
	freezeClock(t)

	temps := []domain.StationReading{
		reading("B", 30.0, baseTime),
		reading("C", 31.0, baseTime),
	}
	humidities := []domain.StationReading{
		reading("B", 70.0, baseTime.Add(-31*time.Minute)), // beyond max skew
		reading("C", 65.0, baseTime.Add(-10*time.Minute)),
	}

	samples, drops, err := domain.Reconcile(temps, humidities, domain.ReconcileOptions{MaxSkew: 30 * time.Minute})
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, domain.StationID("C"), samples[0].StationID)
	assert.Equal(t, 1, drops.SkewExceeded)
}

func TestReconcile_ExcludesStaleReadings(t *testing.T) {
	freezeClock(t)

	temps := []domain.StationReading{
		reading("B", 30.0, baseTime.Add(-2*time.Hour)),
		reading("C", 31.0, baseTime.Add(-5*time.Minute)),
	}
	humidities := []domain.StationReading{
		reading("B", 70.0, baseTime.Add(-2*time.Hour)),
		reading("C", 65.0, baseTime.Add(-5*time.Minute)),
	}

	samples, drops, err := domain.Reconcile(temps, humidities, domain.ReconcileOptions{})
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, domain.StationID("C"), samples[0].StationID)
	assert.Equal(t, 1, drops.Stale)
}

func TestReconcile_RejectsImplausibleValues(t *testing.T) {
	freezeClock(t)

	temps := []domain.StationReading{
		reading("A", 85.0, baseTime),  // sensor fault, above plausible range
		reading("B", -15.0, baseTime), // below plausible range
		reading("C", 30.0, baseTime),
		reading("D", 31.0, baseTime),
	}
	humidities := []domain.StationReading{
		reading("A", 70.0, baseTime),
		reading("B", 70.0, baseTime),
		reading("C", 101.0, baseTime), // humidity out of [0,100]
		reading("D", 65.0, baseTime),
	}

	samples, drops, err := domain.Reconcile(temps, humidities, domain.ReconcileOptions{})
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, domain.StationID("D"), samples[0].StationID)
	assert.Equal(t, 3, drops.OutOfRange)
}

func TestReconcile_EmptyResultSignalsNoStations(t *testing.T) {
	freezeClock(t)

	temps := []domain.StationReading{reading("A", 30.0, baseTime)}
	humidities := []domain.StationReading{reading("B", 70.0, baseTime)}

	_, drops, err := domain.Reconcile(temps, humidities, domain.ReconcileOptions{})
	assert.ErrorIs(t, err, domain.ErrNoReconcilableStations)
	assert.Equal(t, 2, drops.Unmatched)
}

func TestReconcile_OrderIndependent(t *testing.T) {
	freezeClock(t)

	temps := []domain.StationReading{
		reading("A", 30.0, baseTime),
		reading("B", 29.0, baseTime),
		reading("C", 31.0, baseTime),
	}
	humidities := []domain.StationReading{
		reading("C", 65.0, baseTime),
		reading("A", 70.0, baseTime),
		reading("B", 75.0, baseTime),
	}

	forward, _, err := domain.Reconcile(temps, humidities, domain.ReconcileOptions{})
	require.NoError(t, err)

	reversedTemps := []domain.StationReading{temps[2], temps[0], temps[1]}
	reversedHums := []domain.StationReading{humidities[1], humidities[2], humidities[0]}
	shuffled, _, err := domain.Reconcile(reversedTemps, reversedHums, domain.ReconcileOptions{})
	require.NoError(t, err)

	if diff := cmp.Diff(forward, shuffled); diff != "" {
		t.Fatalf("input order changed output (-forward +shuffled):\n%s", diff)
	}
}

func TestReconcile_PairCarriesNewestTimestamp(t *testing.T) {
	freezeClock(t)

	tempAt := baseTime.Add(-20 * time.Minute)
	humAt := baseTime.Add(-5 * time.Minute)
	samples, _, err := domain.Reconcile(
		[]domain.StationReading{reading("A", 30.0, tempAt)},
		[]domain.StationReading{reading("A", 70.0, humAt)},
		domain.ReconcileOptions{},
	)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, humAt, samples[0].MeasuredAt)
}
