package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envmonitor/envmonitor/internal/api/handler"
	"github.com/envmonitor/envmonitor/internal/api/models"
	"github.com/envmonitor/envmonitor/internal/dashboard"
	"github.com/envmonitor/envmonitor/internal/worker"
)

type stubStatus struct {
	ready    bool
	statuses []worker.Status
}

func (s stubStatus) Ready() bool             { return s.ready }
func (s stubStatus) Status() []worker.Status { return s.statuses }

func TestOpsHandler_SystemStatus(t *testing.T) {
	updated := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		statuses []worker.Status
		want     models.HealthStatus
		perProd  []models.HealthStatus
	}{
		{
			name: "all healthy",
			statuses: []worker.Status{
				{Name: worker.ProducerReading, Running: true, Ready: true, UpdatedAt: updated},
				{Name: worker.ProducerForecast, Running: true, Ready: true, UpdatedAt: updated},
			},
			want:    models.HealthStatusOK,
			perProd: []models.HealthStatus{models.HealthStatusOK, models.HealthStatusOK},
		},
		{
			name: "last refresh failed",
			statuses: []worker.Status{
				{Name: worker.ProducerReading, Running: true, Ready: true, UpdatedAt: updated, Failures: 1, LastError: "sensor offline"},
				{Name: worker.ProducerForecast, Running: true, Ready: true, UpdatedAt: updated},
			},
			want:    models.HealthStatusDegraded,
			perProd: []models.HealthStatus{models.HealthStatusDegraded, models.HealthStatusOK},
		},
		{
			name: "stopped beats degraded",
			statuses: []worker.Status{
				{Name: worker.ProducerReading, Running: true, Ready: true, LastError: "sensor offline"},
				{Name: worker.ProducerForecast, Running: false, Ready: true},
			},
			want:    models.HealthStatusFail,
			perProd: []models.HealthStatus{models.HealthStatusDegraded, models.HealthStatusFail},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewOpsHandler("v", "b", stubStatus{ready: true, statuses: tt.statuses}, nil)

			w := httptest.NewRecorder()
			h.SystemStatus(w, httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody))

			require.Equal(t, http.StatusOK, w.Code)
			var status models.SystemStatus
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))

			assert.Equal(t, tt.want, status.Status)
			assert.Empty(t, status.ActiveFlags)
			require.Len(t, status.Producers, len(tt.perProd))
			for i, want := range tt.perProd {
				assert.Equal(t, want, status.Producers[i].Status, status.Producers[i].Name)
			}
		})
	}
}

func TestOpsHandler_SystemStatus_ReportsLastError(t *testing.T) {
	h := handler.NewOpsHandler("v", "b", stubStatus{statuses: []worker.Status{
		{Name: worker.ProducerReading, Running: true, Ready: true, Failures: 2, LastError: "sensor offline"},
	}}, nil)

	w := httptest.NewRecorder()
	h.SystemStatus(w, httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody))

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	require.Len(t, status.Producers, 1)
	require.NotNil(t, status.Producers[0].Message)
	assert.Equal(t, "sensor offline", *status.Producers[0].Message)
	assert.Equal(t, int64(2), status.Producers[0].Failures)
	assert.Nil(t, status.Producers[0].LastUpdatedAt)
}

type failingSnapshot struct{ err error }

func (f failingSnapshot) Snapshot() (dashboard.Snapshot, error) { return dashboard.Snapshot{}, f.err }

func TestDashboardHandler_SnapshotErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not started", dashboard.ErrNotStarted, http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewDashboardHandler(handler.DashboardHandlerConfig{
				Dashboard: failingSnapshot{err: tt.err},
			})

			w := httptest.NewRecorder()
			h.CurrentReading(w, httptest.NewRequest(http.MethodGet, "/v1/readings/current", http.NoBody))

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
		})
	}
}
