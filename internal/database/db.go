// internal/database/db.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"           // Postgres driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/config"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
)

// Pool represents a database connection pool
type Pool struct {
	*sql.DB

	// Driver is the database/sql driver name the pool was opened with
	Driver string
}

// Connect opens a connection pool for the configured driver and verifies it.
func Connect(cfg *config.AppConfig) (*Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.DBConnectionTimeout)
	defer cancel()

	driver := cfg.Database.Driver
	dsn := cfg.Database.ConnectionString()

	switch driver {
	case constants.DriverPostgres:
		log.Info().
			Str("driver", driver).
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.Name).
			Str("user", cfg.Database.User).
			Msg("Connecting to database")
	case constants.DriverSQLite:
		dsn = sqliteDSN(dsn)
		log.Info().
			Str("driver", driver).
			Str("path", cfg.Database.Path).
			Msg("Connecting to database")
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	configurePool(db, driver, cfg.Database.Path, cfg.Database.MaxConns, cfg.Database.MinConns)

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("Successfully connected to database")

	return &Pool{DB: db, Driver: driver}, nil
}

// NewPool wraps an already opened database, typically sqlmock in tests.
func NewPool(db *sql.DB, driver string) *Pool {
	return &Pool{DB: db, Driver: driver}
}

// sqliteDSN enables foreign keys, which SQLite leaves off per connection,
// and a busy timeout for concurrent writers.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

func configurePool(db *sql.DB, driver, path string, maxConns, minConns int) {
	// Every connection to :memory: is a separate database
	if driver == constants.DriverSQLite && strings.HasPrefix(path, constants.SQLiteMemoryPath) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
		return
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(minConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBConnMaxIdleTime)
}

// IsSQLite reports whether the pool talks to SQLite.
func (p *Pool) IsSQLite() bool {
	return p.Driver == constants.DriverSQLite
}

// Close closes the database connection pool
func (p *Pool) Close() {
	if p != nil && p.DB != nil {
		log.Info().Msg("Closing database connection pool")
		p.DB.Close()
	}
}

// Transaction executes a function within a transaction
func (p *Pool) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	// Start a transaction
	tx, err := p.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Handle panics to ensure proper rollback
	defer func() {
		if r := recover(); r != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction after panic")
			}
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction: %w", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// HealthCheck performs a health check on the database connection
func (p *Pool) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBHealthCheckTimeout)
	defer cancel()

	if err := p.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	// Run a simple query to verify database functionality
	var result int
	if err := p.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query test failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("database returned unexpected result: %d", result)
	}

	return nil
}
