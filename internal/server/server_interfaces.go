package server

import (
	"context"

	"github.com/go-chi/chi/v5"
)

// APIServer is the lifecycle surface used by cmd/api.
type APIServer interface {
	// GetRouter returns the configured router for request handling
	GetRouter() chi.Router

	// Start begins listening for HTTP requests and blocks until shutdown
	Start() error

	// Shutdown gracefully stops the server
	Shutdown(ctx context.Context) error
}

var _ APIServer = (*Server)(nil)
