// Package handler provides the HTTP handlers of the monitor service.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/envmonitor/envmonitor/internal/api/models"
	"github.com/envmonitor/envmonitor/internal/api/response"
	"github.com/envmonitor/envmonitor/internal/featureflags"
	"github.com/envmonitor/envmonitor/internal/worker"
)

// StatusReporter reports whether the dashboard state is available and how
// its producers are doing.
type StatusReporter interface {
	Ready() bool
	Status() []worker.Status
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	status    StatusReporter
	flags     *featureflags.Service
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, status StatusReporter, flags *featureflags.Service) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		status:    status,
		flags:     flags,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - ready while both the reading and
// the forecast have been generated and their refresh loops are running.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if !h.status.Ready() {
		response.JSON(w, r, http.StatusServiceUnavailable, models.Health{
			Status: models.HealthStatusFail,
			Time:   models.Timestamp(time.Now()),
			Details: map[string]interface{}{
				"reason": "dashboard state not generated or refresh stopped",
			},
		})
		return
	}

	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	})
}

// SystemStatus handles GET /v1/ops/status - producer status and active flags.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	producers := h.status.Status()

	status := models.SystemStatus{
		Status:      models.HealthStatusOK,
		Time:        models.Timestamp(time.Now()),
		Producers:   make([]models.ProducerStatus, 0, len(producers)),
		ActiveFlags: h.activeFlags(r.Context()),
	}

	for _, p := range producers {
		ps := producerStatus(p)
		status.Producers = append(status.Producers, ps)
		status.Status = worse(status.Status, ps.Status)
	}

	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) activeFlags(ctx context.Context) []string {
	if h.flags == nil {
		return nil
	}

	var active []string
	for _, flag := range h.flags.GetAllFlags(ctx).Items {
		if flag.Value {
			active = append(active, flag.Key)
		}
	}
	return active
}

// producerStatus maps a producer to OK, DEGRADED (last refresh failed) or
// FAIL (stopped or never produced a value).
func producerStatus(s worker.Status) models.ProducerStatus {
	ps := models.ProducerStatus{
		Name:          s.Name,
		Status:        models.HealthStatusOK,
		Running:       s.Running,
		IntervalMs:    s.Interval.Milliseconds(),
		LastUpdatedAt: models.TimestampPtr(s.UpdatedAt),
		Refreshes:     s.Refreshes,
		Failures:      s.Failures,
		Skipped:       s.Skipped,
	}

	switch {
	case !s.Running || !s.Ready:
		ps.Status = models.HealthStatusFail
	case s.LastError != "":
		ps.Status = models.HealthStatusDegraded
	}

	if s.LastError != "" {
		msg := s.LastError
		ps.Message = &msg
	}
	return ps
}

var healthRank = map[models.HealthStatus]int{
	models.HealthStatusOK:       0,
	models.HealthStatusDegraded: 1,
	models.HealthStatusFail:     2,
}

func worse(a, b models.HealthStatus) models.HealthStatus {
	if healthRank[b] > healthRank[a] {
		return b
	}
	return a
}
