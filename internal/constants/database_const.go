// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines table names, column names and driver
// identifiers.
package constants

// Table names.
const (
	// TableUsers is the name of the table storing user accounts.
	TableUsers = "users"

	// TableTasks is the name of the table storing tasks.
	TableTasks = "tasks"
)

// User table columns.
const (
	ColumnUsername     = "username"
	ColumnPasswordHash = "password_hash"
	ColumnRole         = "role"
)

// Supported database/sql driver names.
const (
	// DriverPostgres selects github.com/lib/pq.
	DriverPostgres = "postgres"

	// DriverSQLite selects github.com/mattn/go-sqlite3.
	DriverSQLite = "sqlite3"

	// PostgresSSLDisable is the sslmode used when none is configured.
	PostgresSSLDisable = "disable"

	// SQLiteMemoryPath opens a private in-memory SQLite database.
	SQLiteMemoryPath = ":memory:"
)
