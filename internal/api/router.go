// Package api provides the HTTP surface of the monitor service: the
// dashboard page, its JSON API and the ops endpoints.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/envmonitor/envmonitor/internal/api/handler"
	"github.com/envmonitor/envmonitor/internal/api/middleware"
	"github.com/envmonitor/envmonitor/internal/api/response"
	"github.com/envmonitor/envmonitor/internal/featureflags"
	"github.com/envmonitor/envmonitor/internal/view"
)

// DefaultServiceName is used for tracing when RouterConfig.ServiceName is empty.
const DefaultServiceName = "envmonitor"

// DashboardService is the dashboard as seen by the HTTP layer.
type DashboardService interface {
	handler.SnapshotProvider
	handler.StatusReporter
}

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version            string
	BuildTime          string
	Logger             zerolog.Logger
	ServiceName        string
	Metrics            *middleware.Metrics
	RequireTLS         bool
	Dashboard          DashboardService
	Renderer           *view.Renderer
	FeatureFlagService *featureflags.Service

	// PageRefresh is the dashboard page reload interval, normally the
	// reading refresh interval.
	PageRefresh time.Duration

	// FlagsWritable enables PUT /v1/feature-flags.
	FlagsWritable bool
}

// NewRouter creates a new chi router with all routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))         // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))       // Panic recovery
	r.Use(chimiddleware.RealIP)                  // Real IP extraction
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, req, "no route matches "+req.URL.Path)
	})
	r.MethodNotAllowed(response.MethodNotAllowed)

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Dashboard, cfg.FeatureFlagService)
	dashboardHandler := handler.NewDashboardHandler(handler.DashboardHandlerConfig{
		Dashboard:   cfg.Dashboard,
		Flags:       cfg.FeatureFlagService,
		Renderer:    cfg.Renderer,
		Logger:      cfg.Logger,
		Version:     cfg.Version,
		PageRefresh: cfg.PageRefresh,
	})
	featureFlagsHandler := handler.NewFeatureFlagsHandler(cfg.FeatureFlagService)

	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 120 req/min
	renderRateLimit := middleware.RateLimitByIP(middleware.RenderRateLimit)     // 30 req/min

	// Dashboard page and its assets
	r.With(standardRateLimit).Get("/", dashboardHandler.Page)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(view.Static()))))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)

		// Ops endpoints (public, not rate limited for probes)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Dashboard state - standard rate limiting
		r.Group(func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/dashboard", dashboardHandler.Dashboard)
			r.Get("/readings/current", dashboardHandler.CurrentReading)
			r.Get("/forecast", dashboardHandler.Forecast)
			r.Get("/insights", dashboardHandler.Insights)

			r.Get("/feature-flags", featureFlagsHandler.ListFeatureFlags)
			if cfg.FlagsWritable {
				r.Put("/feature-flags", featureFlagsHandler.UpsertFeatureFlags)
			}
		})

		// Rendered charts - stricter rate limiting
		r.Group(func(r chi.Router) {
			r.Use(renderRateLimit)
			r.Get("/forecast.png", dashboardHandler.ForecastPNG)
			r.Get("/forecast/chart", dashboardHandler.ForecastChart)
		})
	})

	return r
}
