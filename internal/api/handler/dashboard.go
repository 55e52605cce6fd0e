package handler

import (
	"bytes"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/envmonitor/envmonitor/internal/api/middleware"
	"github.com/envmonitor/envmonitor/internal/api/models"
	"github.com/envmonitor/envmonitor/internal/api/response"
	"github.com/envmonitor/envmonitor/internal/chart"
	"github.com/envmonitor/envmonitor/internal/dashboard"
	"github.com/envmonitor/envmonitor/internal/featureflags"
	"github.com/envmonitor/envmonitor/internal/view"
)

// ForecastChartPath is where the interactive forecast chart is served.
const ForecastChartPath = "/v1/forecast/chart"

// SnapshotProvider supplies the current dashboard state.
type SnapshotProvider interface {
	Snapshot() (dashboard.Snapshot, error)
}

// DashboardHandlerConfig holds dependencies for the DashboardHandler.
type DashboardHandlerConfig struct {
	Dashboard SnapshotProvider
	Flags     *featureflags.Service
	Renderer  *view.Renderer
	Logger    zerolog.Logger
	Version   string

	// PageRefresh is how often the page reloads itself. Zero disables it.
	PageRefresh time.Duration
}

// DashboardHandler serves the dashboard page and its JSON API.
type DashboardHandler struct {
	dashboard   SnapshotProvider
	flags       *featureflags.Service
	renderer    *view.Renderer
	logger      zerolog.Logger
	version     string
	pageRefresh time.Duration
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(cfg DashboardHandlerConfig) *DashboardHandler {
	return &DashboardHandler{
		dashboard:   cfg.Dashboard,
		flags:       cfg.Flags,
		renderer:    cfg.Renderer,
		logger:      cfg.Logger,
		version:     cfg.Version,
		pageRefresh: cfg.PageRefresh,
	}
}

// Page handles GET / - the rendered dashboard.
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	data := view.PageData{
		Snapshot:         snapshot,
		ShowInsights:     h.flags.ShowInsights(r.Context()),
		InteractiveChart: h.flags.InteractiveForecastChart(r.Context()),
		ChartURL:         ForecastChartPath,
		RefreshSeconds:   refreshSeconds(h.pageRefresh),
		Version:          h.version,
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, data); err != nil {
		h.renderFailed(w, r, err, "dashboard page")
		return
	}

	middleware.SetContentSecurityPolicy(w, middleware.PageContentSecurityPolicy)
	response.Bytes(w, r, http.StatusOK, response.ContentTypeHTML, buf.Bytes())
}

// Dashboard handles GET /v1/dashboard - the full dashboard state. Insights
// are omitted while the show_insights flag is off.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	resp := models.Dashboard{
		Reading:  toReading(snapshot),
		Forecast: toForecast(snapshot),
	}
	if h.flags.ShowInsights(r.Context()) {
		insights := toInsights(snapshot)
		resp.Insights = &insights
	}

	response.JSON(w, r, http.StatusOK, resp)
}

// CurrentReading handles GET /v1/readings/current.
func (h *DashboardHandler) CurrentReading(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	response.JSON(w, r, http.StatusOK, toReading(snapshot))
}

// Forecast handles GET /v1/forecast.
func (h *DashboardHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	response.JSON(w, r, http.StatusOK, toForecast(snapshot))
}

// Insights handles GET /v1/insights.
func (h *DashboardHandler) Insights(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	response.JSON(w, r, http.StatusOK, toInsights(snapshot))
}

// ForecastPNG handles GET /v1/forecast.png - the forecast as a bar chart image.
func (h *DashboardHandler) ForecastPNG(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, snapshot.Forecast, dashboard.ChartTitle); err != nil {
		h.renderFailed(w, r, err, "forecast image")
		return
	}

	response.Bytes(w, r, http.StatusOK, response.ContentTypePNG, buf.Bytes())
}

// ForecastChart handles GET /v1/forecast/chart - the interactive forecast
// page embedded by the dashboard. It is only served while the
// interactive_forecast_chart flag is on.
func (h *DashboardHandler) ForecastChart(w http.ResponseWriter, r *http.Request) {
	if !h.flags.InteractiveForecastChart(r.Context()) {
		response.NotFound(w, r, "interactive forecast chart is disabled")
		return
	}

	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderECharts(&buf, snapshot.Forecast, dashboard.ChartTitle); err != nil {
		h.renderFailed(w, r, err, "interactive forecast")
		return
	}

	middleware.SetContentSecurityPolicy(w, middleware.ChartContentSecurityPolicy)
	response.Bytes(w, r, http.StatusOK, response.ContentTypeHTML, buf.Bytes())
}

// snapshot fetches the dashboard state, writing a 503 problem if it is not
// available yet.
func (h *DashboardHandler) snapshot(w http.ResponseWriter, r *http.Request) (dashboard.Snapshot, bool) {
	snapshot, err := h.dashboard.Snapshot()
	if err != nil {
		if errors.Is(err, dashboard.ErrNotStarted) {
			response.ServiceUnavailable(w, r, "dashboard data is not available yet")
			return dashboard.Snapshot{}, false
		}
		h.logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Msg("failed to read dashboard state")
		response.InternalError(w, r, "failed to read dashboard state")
		return dashboard.Snapshot{}, false
	}
	return snapshot, true
}

func (h *DashboardHandler) renderFailed(w http.ResponseWriter, r *http.Request, err error, what string) {
	h.logger.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Msgf("failed to render %s", what)
	response.InternalError(w, r, "failed to render "+what)
}

// refreshSeconds rounds d up to whole seconds; the refresh meta tag has
// second granularity.
func refreshSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
