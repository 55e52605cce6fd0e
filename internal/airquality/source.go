package airquality

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DefaultLocation is the location reported by the mock source.
const DefaultLocation = "Central Park, NY"

// ReadingSource produces the current air quality reading.
type ReadingSource interface {
	Reading(ctx context.Context) (AirQualityData, error)
}

// ForecastSource produces the 24-hour forecast.
type ForecastSource interface {
	Forecast(ctx context.Context) (ChartData, error)
}

// Generation ranges: a value is drawn uniformly from [Min, Min+Span-1].
type valueRange struct {
	Min  int
	Span int
}

var (
	aqiRange      = valueRange{Min: 20, Span: 200}
	pm25Range     = valueRange{Min: 10, Span: 100}
	pm10Range     = valueRange{Min: 20, Span: 150}
	o3Range       = valueRange{Min: 5, Span: 50}
	no2Range      = valueRange{Min: 5, Span: 40}
	forecastRange = valueRange{Min: 20, Span: 100}
)

// RandomConfig holds configuration for the random mock source.
type RandomConfig struct {
	// Location is reported on every reading.
	// Default: DefaultLocation
	Location string

	// Seed seeds the generator. Zero seeds from the current time.
	Seed int64

	// Now supplies reading timestamps.
	// Default: time.Now
	Now func() time.Time
}

// RandomSource generates uniformly random readings and forecasts.
// It implements both ReadingSource and ForecastSource and is safe for
// concurrent use.
type RandomSource struct {
	location string
	now      func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource creates a new random source.
func NewRandomSource(cfg RandomConfig) *RandomSource {
	location := cfg.Location
	if location == "" {
		location = DefaultLocation
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &RandomSource{
		location: location,
		now:      now,
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec // mock data, not security sensitive
	}
}

// Reading returns a freshly randomized reading.
func (s *RandomSource) Reading(_ context.Context) (AirQualityData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return AirQualityData{
		Location: s.location,
		AQI:      s.draw(aqiRange),
		Pollutants: Pollutants{
			PM25: s.draw(pm25Range),
			PM10: s.draw(pm10Range),
			O3:   s.draw(o3Range),
			NO2:  s.draw(no2Range),
		},
		Timestamp: s.now(),
	}, nil
}

// Forecast returns a freshly randomized 24-hour forecast.
func (s *RandomSource) Forecast(_ context.Context) (ChartData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make([]int, ForecastHours)
	for i := range values {
		values[i] = s.draw(forecastRange)
	}

	return ChartData{
		Labels: HourLabels(),
		Values: values,
	}, nil
}

// draw must be called with s.mu held.
func (s *RandomSource) draw(r valueRange) int {
	return r.Min + s.rng.Intn(r.Span)
}
