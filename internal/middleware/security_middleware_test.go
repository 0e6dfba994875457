package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/config"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/middleware"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils/ratelimit"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// stubChecker answers every Allow call with a fixed decision.
type stubChecker struct {
	decision ratelimit.Decision
	err      error
	calls    int
	lastID   string
}

func (s *stubChecker) Allow(_ context.Context, clientID, _ string) (ratelimit.Decision, error) {
	s.calls++
	s.lastID = clientID
	return s.decision, s.err
}

func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	middleware.SecurityHeaders()(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	expected := map[string]string{
		constants.HeaderXContentTypeOptions:   constants.ContentTypeOptionsNoSniff,
		constants.HeaderXFrameOptions:         constants.FrameOptionsDeny,
		constants.HeaderReferrerPolicy:        constants.ReferrerPolicyStrictOrigin,
		constants.HeaderContentSecurityPolicy: constants.CSPDefaultSrc,
		constants.HeaderCacheControl:          constants.CacheControlNoStore,
	}
	for header, value := range expected {
		if got := rr.Header().Get(header); got != value {
			t.Errorf("Expected %s to be %q, got %q", header, value, got)
		}
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name            string
		cfg             config.CORSSettings
		method          string
		origin          string
		expectedStatus  int
		expectedOrigin  string
		expectedCreds   string
		expectPreflight bool
	}{
		{
			name:           "Wildcard allows any origin",
			cfg:            config.CORSSettings{AllowedOrigins: []string{"*"}},
			method:         http.MethodGet,
			origin:         "https://app.example.com",
			expectedStatus: http.StatusOK,
			expectedOrigin: "*",
		},
		{
			name:           "Listed origin is echoed with credentials",
			cfg:            config.CORSSettings{AllowedOrigins: []string{"https://app.example.com"}, AllowCredentials: true},
			method:         http.MethodGet,
			origin:         "https://app.example.com",
			expectedStatus: http.StatusOK,
			expectedOrigin: "https://app.example.com",
			expectedCreds:  "true",
		},
		{
			name:           "Unknown origin gets no CORS headers",
			cfg:            config.CORSSettings{AllowedOrigins: []string{"https://app.example.com"}},
			method:         http.MethodGet,
			origin:         "https://evil.example.com",
			expectedStatus: http.StatusOK,
		},
		{
			name:            "Preflight is answered directly",
			cfg:             config.CORSSettings{AllowedOrigins: []string{"*"}},
			method:          http.MethodOptions,
			origin:          "https://app.example.com",
			expectedStatus:  http.StatusNoContent,
			expectedOrigin:  "*",
			expectPreflight: true,
		},
		{
			name:           "Request without origin passes through",
			cfg:            config.CORSSettings{AllowedOrigins: []string{"*"}},
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/tasks", nil)
			if tt.origin != "" {
				req.Header.Set(constants.HeaderOrigin, tt.origin)
			}
			rr := httptest.NewRecorder()
			middleware.CORS(tt.cfg)(okHandler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
			if got := rr.Header().Get(constants.HeaderAccessControlAllowOrigin); got != tt.expectedOrigin {
				t.Errorf("Expected allow origin %q, got %q", tt.expectedOrigin, got)
			}
			if got := rr.Header().Get(constants.HeaderAccessControlAllowCreds); got != tt.expectedCreds {
				t.Errorf("Expected allow credentials %q, got %q", tt.expectedCreds, got)
			}
			gotMethods := rr.Header().Get(constants.HeaderAccessControlAllowMethod)
			if tt.expectPreflight && gotMethods != constants.CORSAllowMethods {
				t.Errorf("Expected allow methods %q, got %q", constants.CORSAllowMethods, gotMethods)
			}
			if !tt.expectPreflight && gotMethods != "" {
				t.Errorf("Expected no allow methods header, got %q", gotMethods)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	t.Run("Allowed request carries rate limit headers", func(t *testing.T) {
		checker := &stubChecker{decision: ratelimit.Decision{Allowed: true, Limit: 5, Remaining: 4}}
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "192.0.2.10:54321"
		rr := httptest.NewRecorder()

		middleware.RateLimit(checker, constants.RateLimitCategoryAuth, nil)(okHandler).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("Expected status %d, got %d", http.StatusOK, rr.Code)
		}
		if checker.lastID != "192.0.2.10" {
			t.Errorf("Expected client id without port, got %q", checker.lastID)
		}
		if got := rr.Header().Get(constants.HeaderRateLimitLimit); got != "5" {
			t.Errorf("Expected limit header 5, got %q", got)
		}
		if got := rr.Header().Get(constants.HeaderRateLimitRemaining); got != "4" {
			t.Errorf("Expected remaining header 4, got %q", got)
		}
	})

	t.Run("Rejected request gets 429 and Retry-After", func(t *testing.T) {
		checker := &stubChecker{decision: ratelimit.Decision{Limit: 5, RetryAfter: 1500 * time.Millisecond}}
		metrics := middleware.NewMetrics(nil)
		rr := httptest.NewRecorder()

		middleware.RateLimit(checker, constants.RateLimitCategoryAuth, metrics)(okHandler).
			ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/login", nil))

		if rr.Code != http.StatusTooManyRequests {
			t.Errorf("Expected status %d, got %d", http.StatusTooManyRequests, rr.Code)
		}
		if got := rr.Header().Get(constants.HeaderRetryAfter); got != "2" {
			t.Errorf("Expected Retry-After 2, got %q", got)
		}
	})

	t.Run("Never-refilling bucket is capped at one window", func(t *testing.T) {
		checker := &stubChecker{decision: ratelimit.Decision{Limit: 0, RetryAfter: time.Duration(1<<63 - 1)}}
		rr := httptest.NewRecorder()

		middleware.RateLimit(checker, constants.RateLimitCategoryAuth, nil)(okHandler).
			ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/login", nil))

		if got := rr.Header().Get(constants.HeaderRetryAfter); got != "60" {
			t.Errorf("Expected Retry-After 60, got %q", got)
		}
	})

	t.Run("Limiter failure lets the request through", func(t *testing.T) {
		checker := &stubChecker{err: errors.New("redis unavailable")}
		rr := httptest.NewRecorder()

		middleware.RateLimit(checker, constants.RateLimitCategoryAuth, nil)(okHandler).
			ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/login", nil))

		if rr.Code != http.StatusOK {
			t.Errorf("Expected status %d, got %d", http.StatusOK, rr.Code)
		}
	})
}
