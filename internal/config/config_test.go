package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envmonitor/envmonitor/internal/config"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(context.Background(), map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Empty(t, cfg.Location)
	assert.Equal(t, 5*time.Second, cfg.ReadingInterval)
	assert.Equal(t, 10*time.Second, cfg.ForecastInterval)
	assert.Equal(t, int64(0), cfg.RandomSeed)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Empty(t, cfg.FeatureFlags)
	assert.False(t, cfg.FlagsWritable)
	assert.Equal(t, 1.0, cfg.SampleRatio)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := config.LoadFrom(context.Background(), map[string]string{
		"APP_PORT":                "9090",
		"LOG_LEVEL":               "debug",
		"LOCATION":                "Vondelpark",
		"RANDOM_SEED":             "42",
		"READING_INTERVAL":        "1s",
		"FORECAST_INTERVAL":       "2m",
		"OTEL_ENABLED":            "true",
		"FEATURE_FLAGS":           "pause_refresh:true,show_insights:false",
		"FEATURE_FLAGS_WRITABLE":  "true",
		"OTEL_TRACE_SAMPLE_RATIO": "0.25",
	})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, "Vondelpark", cfg.Location)
	assert.Equal(t, int64(42), cfg.RandomSeed)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, map[string]bool{"pause_refresh": true, "show_insights": false}, cfg.FeatureFlags)
	assert.True(t, cfg.FlagsWritable)
	assert.Equal(t, 0.25, cfg.SampleRatio)

	refresh := cfg.Refresh()
	assert.Equal(t, time.Second, refresh.ReadingInterval)
	assert.Equal(t, 2*time.Minute, refresh.ForecastInterval)
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"bad duration", map[string]string{"READING_INTERVAL": "soon"}},
		{"zero interval", map[string]string{"FORECAST_INTERVAL": "0s"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"bad seed", map[string]string{"RANDOM_SEED": "abc"}},
		{"sample ratio above one", map[string]string{"OTEL_TRACE_SAMPLE_RATIO": "1.5"}},
		{"misspelled feature flag", map[string]string{"FEATURE_FLAGS": "pause_refesh:true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadFrom(context.Background(), tt.vars)
			assert.Error(t, err)
		})
	}
}

func TestLoadFrom_UnknownFeatureFlags(t *testing.T) {
	_, err := config.LoadFrom(context.Background(), map[string]string{
		"FEATURE_FLAGS": "show_insights:false,pause_refesh:true,dark_mode:true",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dark_mode, pause_refesh")
	assert.NotContains(t, err.Error(), "show_insights")
}
