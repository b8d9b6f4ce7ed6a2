// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	FeedBaseURL string
	FeedTimeout time.Duration

	PollInterval  time.Duration
	CycleTimeout  time.Duration
	MaxSkew       time.Duration
	MaxReadingAge time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. A local .env file is loaded first, best effort.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		FeedBaseURL: envOrDefault("FEED_BASE_URL", "https://api.data.gov.sg/v1/environment"),
		HTTPAddr:    envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.FeedTimeout, err = durationOrDefault("FEED_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = durationOrDefault("POLL_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CycleTimeout, err = durationOrDefault("CYCLE_TIMEOUT", time.Minute); err != nil {
		return nil, err
	}
	if cfg.MaxSkew, err = durationOrDefault("MAX_SKEW", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.MaxReadingAge, err = durationOrDefault("MAX_READING_AGE", time.Hour); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if cfg.FeedBaseURL == "" {
		return nil, errors.New("FEED_BASE_URL is required")
	}
	if cfg.CycleTimeout <= cfg.FeedTimeout {
		return nil, errors.New("CYCLE_TIMEOUT must exceed FEED_TIMEOUT")
	}
	if cfg.PollInterval < time.Minute {
		return nil, errors.New("POLL_INTERVAL must be at least 1m")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}
