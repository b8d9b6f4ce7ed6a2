// Package nea fetches station-keyed readings from the data.gov.sg realtime
// environment API (NEA weather station network).
package nea

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/heatwatch/wetbulb-advisory/internal/domain"
)

// Kind selects which measurement feed to fetch. The value doubles as the API
// path segment.
type Kind string

const (
	KindAirTemperature   Kind = "air-temperature"
	KindRelativeHumidity Kind = "relative-humidity"
)

// DefaultBaseURL is the public data.gov.sg realtime API root.
const DefaultBaseURL = "https://api.data.gov.sg/v1/environment"

// defaultRetryBackoff is the pause before the single retry of a failed fetch.
const defaultRetryBackoff = 2 * time.Second

// Client fetches complete per-station reading snapshots for one or both
// measurement kinds. Each fetch either returns the full, internally
// consistent station set for that kind or fails — never a partial set.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	limiter      *rate.Limiter
	breakers     map[Kind]*gobreaker.CircuitBreaker
	retryBackoff time.Duration
	logger       *slog.Logger
}

// NewClient creates a feed client. The timeout bounds every request; the
// built-in rate limiter keeps the service polite toward the public API, and a
// per-feed circuit breaker stops hammering an endpoint that is persistently
// failing.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	breakers := make(map[Kind]*gobreaker.CircuitBreaker, 2)
	for _, kind := range []Kind{KindAirTemperature, KindRelativeHumidity} {
		breakers[kind] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    string(kind),
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		})
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      baseURL,
		limiter:      rate.NewLimiter(rate.Every(time.Second), 4),
		breakers:     breakers,
		retryBackoff: defaultRetryBackoff,
		logger:       logger,
	}
}

// Fetch returns the current snapshot of all stations for the given kind.
// One retry with backoff on any failure; errors wrap
// domain.ErrFeedUnavailable or domain.ErrFeedMalformed.
func (c *Client) Fetch(ctx context.Context, kind Kind) ([]domain.StationReading, error) {
	readings, err := c.fetchOnce(ctx, kind)
	if err == nil {
		return readings, nil
	}
	if ctx.Err() != nil || errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, err
	}

	c.logger.Warn("feed fetch failed, retrying once", "kind", kind, "error", err)
	if !sleepWithContext(ctx, c.retryBackoff) {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, ctx.Err())
	}
	return c.fetchOnce(ctx, kind)
}

func (c *Client) fetchOnce(ctx context.Context, kind Kind) ([]domain.StationReading, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}

	result, err := c.breakers[kind].Execute(func() (interface{}, error) {
		return c.doRequest(ctx, kind)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open for %s: %w", domain.ErrFeedUnavailable, kind, err)
		}
		return nil, err
	}
	return result.([]domain.StationReading), nil
}

func (c *Client) doRequest(ctx context.Context, kind Kind) ([]domain.StationReading, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFeedUnavailable, kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrFeedUnavailable, kind, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrFeedMalformed, kind, err)
	}

	return readingsFromEnvelope(env, kind)
}

// readingsFromEnvelope extracts the newest item's readings. The feed may
// carry several items; only the most recent snapshot is current.
func readingsFromEnvelope(env envelope, kind Kind) ([]domain.StationReading, error) {
	if env.APIInfo.Status != "" && env.APIInfo.Status != "healthy" {
		return nil, fmt.Errorf("%w: %s api_info status %q", domain.ErrFeedMalformed, kind, env.APIInfo.Status)
	}
	if len(env.Items) == 0 {
		return nil, fmt.Errorf("%w: %s response has no items", domain.ErrFeedMalformed, kind)
	}

	newest := env.Items[0]
	for _, it := range env.Items[1:] {
		if it.Timestamp.After(newest.Timestamp) {
			newest = it
		}
	}
	if len(newest.Readings) == 0 {
		return nil, fmt.Errorf("%w: %s snapshot has no readings", domain.ErrFeedMalformed, kind)
	}

	out := make([]domain.StationReading, 0, len(newest.Readings))
	for _, r := range newest.Readings {
		out = append(out, domain.StationReading{
			StationID:  domain.NormalizeStationID(r.StationID),
			Value:      r.Value,
			MeasuredAt: newest.Timestamp,
		})
	}
	return out, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
