// Package worker provides the timed producers that keep dashboard state fresh.
package worker

import (
	"time"
)

// Default refresh intervals.
const (
	DefaultReadingInterval  = 5 * time.Second
	DefaultForecastInterval = 10 * time.Second
)

// Producer names.
const (
	ProducerReading  = "reading"
	ProducerForecast = "forecast"
)

// RefreshConfig holds the refresh cadence of both producers.
type RefreshConfig struct {
	// ReadingInterval is how often the current reading is replaced.
	// Default: 5 seconds
	ReadingInterval time.Duration

	// ForecastInterval is how often the forecast is replaced.
	// Default: 10 seconds
	ForecastInterval time.Duration
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		ReadingInterval:  DefaultReadingInterval,
		ForecastInterval: DefaultForecastInterval,
	}
}

// WithDefaults fills zero intervals with their defaults.
func (c RefreshConfig) WithDefaults() RefreshConfig {
	if c.ReadingInterval <= 0 {
		c.ReadingInterval = DefaultReadingInterval
	}
	if c.ForecastInterval <= 0 {
		c.ForecastInterval = DefaultForecastInterval
	}
	return c
}
