package nea

import (
	"context"

	"github.com/heatwatch/wetbulb-advisory/internal/domain"
)

// FetchTemperatures fetches the current air-temperature station snapshot.
// Satisfies the pipeline's FeedSource.
func (c *Client) FetchTemperatures(ctx context.Context) ([]domain.StationReading, error) {
	return c.Fetch(ctx, KindAirTemperature)
}

// FetchHumidities fetches the current relative-humidity station snapshot.
func (c *Client) FetchHumidities(ctx context.Context) ([]domain.StationReading, error) {
	return c.Fetch(ctx, KindRelativeHumidity)
}
