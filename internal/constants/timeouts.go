// Package constants provides shared constant values used throughout the application.
//
// The timeouts.go file defines timeout durations and lifetimes.
package constants

import "time"

// Server Timeouts define the HTTP server timing parameters.
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database Timeouts define the database connection and query timing.
const (
	DBConnectionTimeout  = 30 * time.Second
	DBHealthCheckTimeout = 5 * time.Second
	DBConnMaxLifetime    = 1 * time.Hour
	DBConnMaxIdleTime    = 30 * time.Minute
)

// DefaultJWTExpiry is the token lifetime when none is configured.
const DefaultJWTExpiry = 24 * time.Hour

// RateLimitCleanupInterval is how often idle in-memory limiters are evicted.
const RateLimitCleanupInterval = 10 * time.Minute

// RateLimitWindow is the fixed window used by the Redis limiter.
const RateLimitWindow = time.Minute
