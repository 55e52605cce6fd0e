package dashboard

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/envmonitor/envmonitor/internal/airquality"
)

const meterName = "github.com/envmonitor/envmonitor/internal/dashboard"

// Metrics holds the dashboard's OpenTelemetry instruments.
type Metrics struct {
	readingRefreshes  metric.Int64Counter
	forecastRefreshes metric.Int64Counter
	currentAQI        metric.Int64ObservableGauge
}

func newMetrics(meter metric.Meter, d *Dashboard) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(meterName)
	}

	readingRefreshes, err := meter.Int64Counter(
		"dashboard.reading.refresh.total",
		metric.WithDescription("Number of air quality readings produced"),
		metric.WithUnit("{reading}"),
	)
	if err != nil {
		return nil, err
	}

	forecastRefreshes, err := meter.Int64Counter(
		"dashboard.forecast.refresh.total",
		metric.WithDescription("Number of forecasts produced"),
		metric.WithUnit("{forecast}"),
	)
	if err != nil {
		return nil, err
	}

	currentAQI, err := meter.Int64ObservableGauge(
		"dashboard.aqi.current",
		metric.WithDescription("Current air quality index"),
		metric.WithUnit("{aqi}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			if d.reading == nil {
				return nil
			}
			r, _, err := d.reading.Current()
			if err != nil {
				return nil //nolint:nilerr // nothing to observe before the first reading
			}
			o.Observe(int64(r.AQI), metric.WithAttributes(attribute.String("location", r.Location)))
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		readingRefreshes:  readingRefreshes,
		forecastRefreshes: forecastRefreshes,
		currentAQI:        currentAQI,
	}, nil
}

func (m *Metrics) recordReading(ctx context.Context, r airquality.AirQualityData) {
	m.readingRefreshes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("location", r.Location),
		attribute.String("status", airquality.Status(r.AQI)),
	))
}

func (m *Metrics) recordForecast(ctx context.Context) {
	m.forecastRefreshes.Add(ctx, 1)
}
