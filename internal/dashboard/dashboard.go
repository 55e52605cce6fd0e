// Package dashboard owns the live dashboard state: the current reading and
// the forecast, each refreshed by its own timed producer.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/envmonitor/envmonitor/internal/airquality"
	"github.com/envmonitor/envmonitor/internal/chart"
	"github.com/envmonitor/envmonitor/internal/insights"
	"github.com/envmonitor/envmonitor/internal/worker"
)

// ChartTitle is the title of the forecast chart.
const ChartTitle = "Forecasted Air Quality Index"

// ErrNotStarted is returned when state is requested before Start.
var ErrNotStarted = errors.New("dashboard not started")

// Config holds configuration for the dashboard.
type Config struct {
	// ReadingSource supplies current readings.
	ReadingSource airquality.ReadingSource

	// ForecastSource supplies forecasts.
	ForecastSource airquality.ForecastSource

	// Refresh holds both refresh intervals; zero values use defaults.
	Refresh worker.RefreshConfig

	// Clock drives both producers. Default: clockwork.NewRealClock()
	Clock clockwork.Clock

	// Logger for dashboard operations.
	Logger zerolog.Logger

	// Paused, if set, freezes both producers while it returns true.
	Paused func(ctx context.Context) bool

	// Meter records refresh metrics. Default: the global meter.
	Meter metric.Meter
}

// Snapshot is everything the dashboard view needs at one point in time.
type Snapshot struct {
	Reading    airquality.AirQualityData
	Band       airquality.Band
	Forecast   airquality.ChartData
	Chart      chart.Chart
	Insights   insights.Panel
	ReadingAt  time.Time
	ForecastAt time.Time
}

// Dashboard composes the reading and forecast producers.
type Dashboard struct {
	reading  *worker.Producer[airquality.AirQualityData]
	forecast *worker.Producer[airquality.ChartData]
	logger   zerolog.Logger
	metrics  *Metrics
}

// New creates a dashboard. Nothing is generated until Start.
func New(cfg Config) (*Dashboard, error) {
	if cfg.ReadingSource == nil || cfg.ForecastSource == nil {
		return nil, errors.New("dashboard: reading and forecast sources are required")
	}

	refresh := cfg.Refresh.WithDefaults()

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	d := &Dashboard{
		logger: cfg.Logger.With().Str("component", "dashboard").Logger(),
	}

	metrics, err := newMetrics(cfg.Meter, d)
	if err != nil {
		return nil, fmt.Errorf("creating dashboard metrics: %w", err)
	}
	d.metrics = metrics

	d.reading = worker.NewProducer(worker.ProducerConfig[airquality.AirQualityData]{
		Name:     worker.ProducerReading,
		Interval: refresh.ReadingInterval,
		Fetch:    cfg.ReadingSource.Reading,
		Clock:    clock,
		Logger:   cfg.Logger,
		Paused:   cfg.Paused,
		OnUpdate: func(ctx context.Context, r airquality.AirQualityData) {
			metrics.recordReading(ctx, r)
		},
	})

	d.forecast = worker.NewProducer(worker.ProducerConfig[airquality.ChartData]{
		Name:     worker.ProducerForecast,
		Interval: refresh.ForecastInterval,
		Fetch:    cfg.ForecastSource.Forecast,
		Clock:    clock,
		Logger:   cfg.Logger,
		Paused:   cfg.Paused,
		OnUpdate: func(ctx context.Context, _ airquality.ChartData) {
			metrics.recordForecast(ctx)
		},
	})

	return d, nil
}

// Start generates the initial state and starts both refresh timers.
func (d *Dashboard) Start(ctx context.Context) error {
	if err := d.reading.Start(ctx); err != nil {
		return fmt.Errorf("starting reading producer: %w", err)
	}
	if err := d.forecast.Start(ctx); err != nil {
		d.reading.Stop()
		return fmt.Errorf("starting forecast producer: %w", err)
	}

	d.logger.Info().Msg("dashboard started")
	return nil
}

// Stop cancels both refresh timers. State is left at its last value.
func (d *Dashboard) Stop() {
	d.reading.Stop()
	d.forecast.Stop()
	d.logger.Info().Msg("dashboard stopped")
}

// Ready reports whether both cells hold a value and both refresh loops are
// running. A stopped dashboard keeps its state but is not ready.
func (d *Dashboard) Ready() bool {
	return d.reading.Ready() && d.forecast.Ready() &&
		d.reading.Running() && d.forecast.Running()
}

// Snapshot assembles the current view state.
func (d *Dashboard) Snapshot() (Snapshot, error) {
	reading, readingAt, err := d.reading.Current()
	if err != nil {
		return Snapshot{}, ErrNotStarted
	}
	forecast, forecastAt, err := d.forecast.Current()
	if err != nil {
		return Snapshot{}, ErrNotStarted
	}

	return Snapshot{
		Reading:    reading,
		Band:       airquality.BandFor(reading.AQI),
		Forecast:   forecast.Clone(),
		Chart:      chart.Build(forecast, ChartTitle),
		Insights:   insights.Build(reading, forecast),
		ReadingAt:  readingAt,
		ForecastAt: forecastAt,
	}, nil
}

// Status returns the status of both producers.
func (d *Dashboard) Status() []worker.Status {
	return []worker.Status{
		d.reading.Status(),
		d.forecast.Status(),
	}
}
