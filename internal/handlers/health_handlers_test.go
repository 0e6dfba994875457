package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler_Health(t *testing.T) {
	up := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name           string
		checks         map[string]HealthCheck
		expectedCode   int
		expectedStatus string
	}{
		{"No dependencies", nil, http.StatusOK, statusHealthy},
		{"All up", map[string]HealthCheck{"database": up, "redis": up}, http.StatusOK, statusHealthy},
		{"Redis down", map[string]HealthCheck{"database": up, "redis": down}, http.StatusServiceUnavailable, statusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler("1.2.3", "test", tt.checks)

			rr := httptest.NewRecorder()
			handler.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedCode, rr.Code)
			body := decodeBody(t, rr)
			assert.Equal(t, tt.expectedStatus, body["status"])
			assert.Equal(t, "1.2.3", body["version"])
			assert.NotContains(t, rr.Body.String(), "connection refused")
		})
	}
}

func TestHealthHandler_Version(t *testing.T) {
	handler := NewHealthHandler("1.2.3", "production", nil)

	rr := httptest.NewRecorder()
	handler.Version(rr, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.2.3","environment":"production"}`, rr.Body.String())
}
