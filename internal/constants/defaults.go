// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the application.
// These constants provide fallbacks for configuration settings and boundaries for
// resource usage.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultAppName is the application name reported by /version and the logger.
	DefaultAppName = "tasktracker"

	// DefaultServerHost is the default listen host (all interfaces).
	DefaultServerHost = "0.0.0.0"

	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 5000

	// DefaultDBDriver is the database driver used when none is configured.
	DefaultDBDriver = DriverPostgres

	// DefaultDBHost is the default Postgres host.
	DefaultDBHost = "localhost"

	// DefaultDBPort is the default Postgres port.
	DefaultDBPort = 5432

	// DefaultDBName is the default database name.
	DefaultDBName = "tasktracker"

	// DefaultSQLitePath is the default SQLite database file.
	DefaultSQLitePath = "./tasktracker.db"

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default number of idle database connections kept open.
	DefaultDBMinConnections = 5

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// LogFormatConsole selects zerolog's human readable console writer.
	LogFormatConsole = "console"

	// DefaultCORSOrigin allows any origin.
	DefaultCORSOrigin = "*"
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// MaxRequestBodySize is the maximum size in bytes for HTTP request bodies.
const MaxRequestBodySize = 1048576 // 1MB

// Default Password Hash Settings define the Argon2id parameters for password hashing.
const (
	// DefaultPasswordHashMemory is the memory cost in KiB.
	DefaultPasswordHashMemory = 64 * 1024

	// DefaultPasswordHashIterations is the time cost.
	DefaultPasswordHashIterations = 3

	// DefaultPasswordHashParallelism is the number of lanes.
	DefaultPasswordHashParallelism = 2

	// DefaultPasswordHashSaltLength is the length in bytes of the random salt.
	DefaultPasswordHashSaltLength = 16

	// DefaultPasswordHashKeyLength is the length in bytes of the derived key.
	DefaultPasswordHashKeyLength = 32

	// DevPasswordHashMemory is a reduced memory setting for development environments.
	DevPasswordHashMemory = 16 * 1024

	// DevPasswordHashIterations is a reduced iteration count for development environments.
	DevPasswordHashIterations = 1
)

// Token Constants.
const (
	// DefaultJWTIssuer is the issuer claim value for JWT tokens.
	DefaultJWTIssuer = "tasktracker-api"

	// BearerScheme is the only accepted Authorization scheme.
	BearerScheme = "Bearer"

	// JWTSigningAlgorithm is the only accepted signing algorithm.
	JWTSigningAlgorithm = "HS256"
)

// Bootstrap admin account, created at startup when no admin exists.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// Rate limiting defaults for the public authentication endpoints.
const (
	// DefaultRateLimitRequestsPerMinute is the sustained request rate per client.
	DefaultRateLimitRequestsPerMinute = 20

	// DefaultRateLimitBurst is the number of requests allowed in a burst.
	DefaultRateLimitBurst = 10

	// RateLimitCategoryAuth groups register and login under one budget.
	RateLimitCategoryAuth = "auth"

	// RateLimitKeyPrefix namespaces limiter keys in Redis.
	RateLimitKeyPrefix = "tasktracker:ratelimit"
)
