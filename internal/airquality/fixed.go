package airquality

import (
	"context"
	"sync"
)

// FixedSource always returns the same reading and forecast.
type FixedSource struct {
	reading  AirQualityData
	forecast ChartData
}

// NewFixedSource creates a source that serves the given values.
func NewFixedSource(reading AirQualityData, forecast ChartData) *FixedSource {
	return &FixedSource{
		reading:  reading,
		forecast: forecast.Clone(),
	}
}

// Reading returns the fixed reading.
func (s *FixedSource) Reading(_ context.Context) (AirQualityData, error) {
	return s.reading, nil
}

// Forecast returns a copy of the fixed forecast.
func (s *FixedSource) Forecast(_ context.Context) (ChartData, error) {
	return s.forecast.Clone(), nil
}

// ReplaySource cycles through recorded readings and forecasts in order,
// wrapping around after the last entry.
type ReplaySource struct {
	mu           sync.Mutex
	readings     []AirQualityData
	forecasts    []ChartData
	nextReading  int
	nextForecast int
}

// NewReplaySource creates a replay source. Both sequences must be non-empty
// and every forecast must be a valid 24-hour forecast.
func NewReplaySource(readings []AirQualityData, forecasts []ChartData) (*ReplaySource, error) {
	if len(readings) == 0 || len(forecasts) == 0 {
		return nil, ErrEmptyReplay
	}

	recorded := make([]ChartData, len(forecasts))
	for i, f := range forecasts {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		recorded[i] = f.Clone()
	}

	return &ReplaySource{
		readings:  append([]AirQualityData(nil), readings...),
		forecasts: recorded,
	}, nil
}

// Reading returns the next recorded reading.
func (s *ReplaySource) Reading(_ context.Context) (AirQualityData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.readings[s.nextReading]
	s.nextReading = (s.nextReading + 1) % len(s.readings)
	return r, nil
}

// Forecast returns the next recorded forecast.
func (s *ReplaySource) Forecast(_ context.Context) (ChartData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.forecasts[s.nextForecast]
	s.nextForecast = (s.nextForecast + 1) % len(s.forecasts)
	return f.Clone(), nil
}
