// Package scripts provides utility scripts for database and system management.
//
// Seeding works like migrations: executed seeds are recorded in the seeds
// table. Seeds flagged as always-run are re-applied on every start and must
// be idempotent themselves.
package scripts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/auth"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/config"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/database"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
)

// Seed is a named seeding step.
type Seed struct {
	Name      string
	AlwaysRun bool
	SeedFunc  func(ctx context.Context, tx *sql.Tx) error
}

// Seeder handles database seeding.
type Seeder struct {
	db     *database.Pool
	hasher auth.PasswordHasher
	admin  config.AdminSettings
}

// NewSeeder creates a new seeder. admin holds the bootstrap admin
// credentials and hasher digests its password.
func NewSeeder(db *database.Pool, hasher auth.PasswordHasher, admin config.AdminSettings) *Seeder {
	return &Seeder{
		db:     db,
		hasher: hasher,
		admin:  admin,
	}
}

// Seeds returns the seeding steps in execution order.
func (s *Seeder) Seeds() []Seed {
	return []Seed{
		{Name: "admin_user", AlwaysRun: true, SeedFunc: s.seedAdminUser},
	}
}

// SeedDatabase creates the seeds tracking table if needed and runs every
// seed that has not been executed yet, plus the always-run seeds.
func (s *Seeder) SeedDatabase(ctx context.Context) error {
	log.Info().Msg("Seeding database")
	startTime := time.Now()

	if err := s.createSeedsTable(ctx); err != nil {
		return fmt.Errorf("failed to create seeds table: %w", err)
	}

	executedSeeds, err := s.getExecutedSeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed seeds: %w", err)
	}

	for _, seed := range s.Seeds() {
		executed := executedSeeds[seed.Name]
		if executed && !seed.AlwaysRun {
			log.Debug().Str("seed", seed.Name).Msg("Seed already executed")
			continue
		}

		log.Info().Str("seed", seed.Name).Msg("Running seed")
		if err := s.runSeed(ctx, seed, !executed); err != nil {
			return err
		}
	}

	log.Info().
		Dur("duration", time.Since(startTime)).
		Msg("Database seeding completed")

	return nil
}

func (s *Seeder) createSeedsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS seeds (
			name VARCHAR(255) PRIMARY KEY,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *Seeder) getExecutedSeeds(ctx context.Context) (map[string]bool, error) {
	query := `SELECT name FROM seeds`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	seeds := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		seeds[name] = true
	}

	return seeds, rows.Err()
}

// runSeed runs a seed within a transaction and records it when record is
// set. A failing seed rolls back.
func (s *Seeder) runSeed(ctx context.Context, seed Seed, record bool) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := seed.SeedFunc(ctx, tx); err != nil {
			return fmt.Errorf("seed %s failed: %w", seed.Name, err)
		}

		if !record {
			return nil
		}

		query := `INSERT INTO seeds (name) VALUES ($1)`
		if _, err := tx.ExecContext(ctx, query, seed.Name); err != nil {
			return fmt.Errorf("failed to record seed: %w", err)
		}

		return nil
	})
}

// seedAdminUser creates the bootstrap admin when no admin account exists.
// An existing account holding the admin username is left untouched.
func (s *Seeder) seedAdminUser(ctx context.Context, tx *sql.Tx) error {
	var adminExists bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE role = $1)`,
		models.RoleAdmin,
	).Scan(&adminExists)
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}
	if adminExists {
		log.Debug().Msg("Admin user present, skipping bootstrap")
		return nil
	}

	var usernameTaken bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		s.admin.Username,
	).Scan(&usernameTaken)
	if err != nil {
		return fmt.Errorf("failed to check admin username: %w", err)
	}
	if usernameTaken {
		log.Warn().
			Str(constants.LogFieldUsername, s.admin.Username).
			Msg("No admin user exists and the bootstrap username is taken; create an admin manually")
		return nil
	}

	passwordHash, err := s.hasher.Hash(s.admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		s.admin.Username, passwordHash, models.RoleAdmin, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert admin user: %w", err)
	}

	if s.admin.Password == constants.DefaultAdminPassword {
		log.Warn().
			Str(constants.LogFieldUsername, s.admin.Username).
			Msg("Admin user created with the default password; change it immediately")
	} else {
		log.Info().
			Str(constants.LogFieldUsername, s.admin.Username).
			Msg("Admin user created")
	}

	return nil
}
