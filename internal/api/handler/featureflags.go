package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/envmonitor/envmonitor/internal/api/models"
	"github.com/envmonitor/envmonitor/internal/api/response"
	"github.com/envmonitor/envmonitor/internal/featureflags"
)

// maxFlagUpdateBytes bounds the feature flag update body.
const maxFlagUpdateBytes = 4 << 10

// FeatureFlagsHandler handles feature flag endpoints.
type FeatureFlagsHandler struct {
	service *featureflags.Service
}

// NewFeatureFlagsHandler creates a new FeatureFlagsHandler.
func NewFeatureFlagsHandler(service *featureflags.Service) *FeatureFlagsHandler {
	return &FeatureFlagsHandler{service: service}
}

// ListFeatureFlags handles GET /v1/feature-flags - list all feature flags.
func (h *FeatureFlagsHandler) ListFeatureFlags(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, toFlagList(h.service.GetAllFlags(r.Context())))
}

// UpsertFeatureFlags handles PUT /v1/feature-flags - update known flags and
// return the full list. Unknown keys are rejected.
func (h *FeatureFlagsHandler) UpsertFeatureFlags(w http.ResponseWriter, r *http.Request) {
	var req models.FeatureFlagUpdate
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFlagUpdateBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		response.BadRequest(w, r, "request body must be a JSON object with a flags map", nil)
		return
	}
	if len(req.Flags) == 0 {
		response.BadRequest(w, r, "no flags to update", []models.FieldError{
			{Field: "flags", Message: "required", Code: "REQUIRED"},
		})
		return
	}

	keys := make([]string, 0, len(req.Flags))
	for key := range req.Flags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var fieldErrors []models.FieldError
	flags := make([]*featureflags.Flag, 0, len(keys))
	for _, key := range keys {
		if !featureflags.IsKnown(key) {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   "flags." + key,
				Message: "unknown feature flag",
				Code:    "UNKNOWN_FLAG",
			})
			continue
		}
		flags = append(flags, &featureflags.Flag{Key: key, Value: req.Flags[key]})
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "request contains unknown feature flags", fieldErrors)
		return
	}

	if err := h.service.SetFlags(r.Context(), flags); err != nil {
		response.InternalError(w, r, "failed to update feature flags")
		return
	}

	response.JSON(w, r, http.StatusOK, toFlagList(h.service.GetAllFlags(r.Context())))
}
