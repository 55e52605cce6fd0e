// Package config loads service configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/envmonitor/envmonitor/internal/featureflags"
	"github.com/envmonitor/envmonitor/internal/worker"
)

// Config holds all configuration for the monitor service.
type Config struct {
	// Server configuration
	Port        string `env:"APP_PORT,default=8080"`
	Environment string `env:"APP_ENV,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	RequireTLS  bool   `env:"REQUIRE_TLS,default=false"`

	// Data generation
	Location         string        `env:"LOCATION"` // empty uses airquality.DefaultLocation
	RandomSeed       int64         `env:"RANDOM_SEED,default=0"`
	ReadingInterval  time.Duration `env:"READING_INTERVAL,default=5s"`
	ForecastInterval time.Duration `env:"FORECAST_INTERVAL,default=10s"`

	// Telemetry
	OTelEnabled  bool    `env:"OTEL_ENABLED,default=false"`
	OTLPEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT,default=localhost:4317"`
	SampleRatio  float64 `env:"OTEL_TRACE_SAMPLE_RATIO,default=1"`

	// FeatureFlags overrides flag defaults, e.g. "pause_refresh:true,show_insights:false".
	FeatureFlags map[string]bool `env:"FEATURE_FLAGS"`

	// FlagsWritable exposes PUT /v1/feature-flags.
	FlagsWritable bool `env:"FEATURE_FLAGS_WRITABLE,default=false"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return process(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from the given variables only.
func LoadFrom(ctx context.Context, vars map[string]string) (*Config, error) {
	return process(ctx, envconfig.MapLookuper(vars))
}

func process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if c.ReadingInterval <= 0 {
		return fmt.Errorf("READING_INTERVAL must be positive, got %s", c.ReadingInterval)
	}
	if c.ForecastInterval <= 0 {
		return fmt.Errorf("FORECAST_INTERVAL must be positive, got %s", c.ForecastInterval)
	}
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("OTEL_TRACE_SAMPLE_RATIO must be between 0 and 1, got %v", c.SampleRatio)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}

	var unknown []string
	for key := range c.FeatureFlags {
		if !featureflags.IsKnown(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("FEATURE_FLAGS has unknown flags: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Refresh returns the producer refresh intervals.
func (c *Config) Refresh() worker.RefreshConfig {
	return worker.RefreshConfig{
		ReadingInterval:  c.ReadingInterval,
		ForecastInterval: c.ForecastInterval,
	}
}
