package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heatwatch/wetbulb-advisory/internal/domain"
)

func TestAggregate_EmptyFailsWithInsufficientData(t *testing.T) {
	_, err := domain.Aggregate(nil, nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)

	_, err = domain.Aggregate([]domain.StationEstimate{}, []domain.PairedSample{})
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestAggregate_MeanIdentity(t *testing.T) {
	estimates := []domain.StationEstimate{
		{StationID: "A", WetBulb: 26.4},
		{StationID: "B", WetBulb: 26.4},
		{StationID: "C", WetBulb: 26.4},
	}
	samples := []domain.PairedSample{
		{StationID: "A", Temperature: 31.0, Humidity: 72.0},
		{StationID: "B", Temperature: 31.0, Humidity: 72.0},
		{StationID: "C", Temperature: 31.0, Humidity: 72.0},
	}

	means, err := domain.Aggregate(estimates, samples)
	require.NoError(t, err)
	assert.Equal(t, 26.4, means.MeanWetBulb)
	assert.Equal(t, 31.0, means.MeanTemperature)
	assert.Equal(t, 72.0, means.MeanHumidity)
	assert.Equal(t, 3, means.StationCount)
}

func TestAggregate_UnweightedMean(t *testing.T) {
	estimates := []domain.StationEstimate{
		{StationID: "A", WetBulb: 24.0},
		{StationID: "B", WetBulb: 28.0},
	}
	samples := []domain.PairedSample{
		{StationID: "A", Temperature: 29.0, Humidity: 60.0},
		{StationID: "B", Temperature: 33.0, Humidity: 80.0},
	}

	means, err := domain.Aggregate(estimates, samples)
	require.NoError(t, err)
	assert.InDelta(t, 26.0, means.MeanWetBulb, 1e-9)
	assert.InDelta(t, 31.0, means.MeanTemperature, 1e-9)
	assert.InDelta(t, 70.0, means.MeanHumidity, 1e-9)
	assert.Equal(t, 2, means.StationCount)
}
