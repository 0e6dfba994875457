package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/middleware"
)

func TestRecovery(t *testing.T) {
	tests := []struct {
		name           string
		handler        http.Handler
		expectedStatus int
		expectedBody   string
		expectLog      bool
	}{
		{
			name: "No panic occurs",
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				if _, err := w.Write([]byte("Success")); err != nil {
					t.Fatalf("failed to write response: %v", err)
				}
			}),
			expectedStatus: http.StatusOK,
			expectedBody:   "Success",
		},
		{
			name: "Panic with error",
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(errors.New("test error"))
			}),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"` + constants.MsgInternalServerError + `"}`,
			expectLog:      true,
		},
		{
			name: "Panic with string",
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("test panic")
			}),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"` + constants.MsgInternalServerError + `"}`,
			expectLog:      true,
		},
	}

	// Set up logger to capture logs
	var logBuf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&logBuf)
	defer func() { log.Logger = original }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuf.Reset()

			handler := middleware.Recovery()(tt.handler)

			req, err := http.NewRequest(http.MethodGet, "/test", nil)
			if err != nil {
				t.Fatalf("Failed to create request: %v", err)
			}
			req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-request-id"))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
			if got := strings.TrimSpace(rr.Body.String()); got != tt.expectedBody {
				t.Errorf("Expected body %q, got %q", tt.expectedBody, got)
			}

			logOutput := logBuf.String()
			if tt.expectLog {
				if !strings.Contains(logOutput, "Panic recovered") {
					t.Errorf("Expected panic to be logged, got %q", logOutput)
				}
				if !strings.Contains(logOutput, "test-request-id") {
					t.Errorf("Expected request id in log, got %q", logOutput)
				}
				if !strings.Contains(logOutput, "stack") {
					t.Errorf("Expected stack trace in log, got %q", logOutput)
				}
			} else if logOutput != "" {
				t.Errorf("Expected no log output, got %q", logOutput)
			}
		})
	}
}

func TestRecovery_AbortHandlerIsRepanicked(t *testing.T) {
	handler := middleware.Recovery()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("Expected http.ErrAbortHandler to propagate, got %v", rec)
		}
	}()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
	t.Error("Expected panic to propagate")
}
