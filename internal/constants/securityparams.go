// Package constants provides shared constant values used throughout the application.
//
// The securityparams.go file defines security parameters checked at startup.
package constants

// Minimum JWT secret length accepted outside development.
const MinJWTSecretLength = 32
