package handlers

import (
	"context"
	"net/http"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	componentUp     = "up"
	componentDown   = "down"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Components map[string]string `json:"components,omitempty"`
}

// HealthHandler serves the operational endpoints
type HealthHandler struct {
	version     string
	environment string
	checks      map[string]HealthCheck
}

// NewHealthHandler creates a HealthHandler. Each named check is run on every
// health request.
func NewHealthHandler(version, environment string, checks map[string]HealthCheck) *HealthHandler {
	if checks == nil {
		checks = map[string]HealthCheck{}
	}
	return &HealthHandler{
		version:     version,
		environment: environment,
		checks:      checks,
	}
}

// Health answers 200 when every dependency is up and 503 otherwise
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{
		Status:     statusHealthy,
		Version:    h.version,
		Components: make(map[string]string, len(names)),
	}

	for _, name := range names {
		if err := h.checks[name](r.Context()); err != nil {
			log.Error().Err(err).Str("component", name).Msg("Health check failed")
			resp.Status = statusUnhealthy
			resp.Components[name] = componentDown
			continue
		}
		resp.Components[name] = componentUp
	}

	status := http.StatusOK
	if resp.Status != statusHealthy {
		status = http.StatusServiceUnavailable
	}
	utils.JSON(w, status, resp)
}

// Version returns the build version and environment
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"version":     h.version,
		"environment": h.environment,
	})
}
