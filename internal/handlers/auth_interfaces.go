// Package handlers provides the HTTP request handlers of the TaskTracker API.
// Handlers decode and validate input, call a service and translate its
// errors into JSON responses.
package handlers

import (
	"context"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
)

// AuthServiceInterface defines the methods required from the authentication service.
type AuthServiceInterface interface {
	// Register creates a user account and returns a token for it.
	//
	// Returns:
	//   - The token and role of the new account
	//   - A duplicate error when the username is taken
	Register(ctx context.Context, reg *models.UserRegistration) (*models.AuthResponse, error)

	// Login checks the credentials and returns a token.
	//
	// Returns:
	//   - The token and role of the account
	//   - An invalid credentials error for an unknown user or a wrong password
	Login(ctx context.Context, creds *models.UserCredentials) (*models.AuthResponse, error)
}
