// Package main provides the entrypoint for the environmental monitor server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/envmonitor/envmonitor/internal/airquality"
	"github.com/envmonitor/envmonitor/internal/api"
	"github.com/envmonitor/envmonitor/internal/api/middleware"
	"github.com/envmonitor/envmonitor/internal/config"
	"github.com/envmonitor/envmonitor/internal/dashboard"
	"github.com/envmonitor/envmonitor/internal/featureflags"
	"github.com/envmonitor/envmonitor/internal/telemetry"
	"github.com/envmonitor/envmonitor/internal/view"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const serviceName = "envmonitor"

func main() {
	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("monitor exited with error")
	}
}

func run(log zerolog.Logger) error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log = log.Level(cfg.Level())

	log.Info().
		Str("build_time", BuildTime).
		Str("environment", cfg.Environment).
		Msg("starting environmental monitor")

	// Initialize OpenTelemetry
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTelEnabled,
		SampleRatio:    cfg.SampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTelEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics(tp.Meter)
	if err != nil {
		return err
	}

	// Feature flags: defaults overlaid with configured overrides
	ffService := featureflags.NewService(featureflags.ServiceConfig{
		Logger:   log,
		CacheTTL: 10 * time.Second,
	})
	if len(cfg.FeatureFlags) > 0 {
		if err := ffService.SetFlags(ctx, featureflags.FromOverrides(cfg.FeatureFlags)); err != nil {
			return err
		}
	}
	log.Info().Msg("feature flags service initialized")

	// Simulated data source and the dashboard producers
	source := airquality.NewRandomSource(airquality.RandomConfig{
		Location: cfg.Location,
		Seed:     cfg.RandomSeed,
	})

	dash, err := dashboard.New(dashboard.Config{
		ReadingSource:  source,
		ForecastSource: source,
		Refresh:        cfg.Refresh(),
		Logger:         log,
		Paused:         ffService.RefreshPaused,
		Meter:          tp.Meter,
	})
	if err != nil {
		return err
	}

	renderer, err := view.NewRenderer(nil)
	if err != nil {
		return err
	}

	if err := dash.Start(ctx); err != nil {
		return err
	}
	defer dash.Stop()

	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            metrics,
		RequireTLS:         cfg.RequireTLS,
		Dashboard:          dash,
		Renderer:           renderer,
		FeatureFlagService: ffService,
		PageRefresh:        cfg.ReadingInterval,
		FlagsWritable:      cfg.FlagsWritable,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return err
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
