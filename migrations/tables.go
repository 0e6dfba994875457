package migrations

import (
	"context"
	"database/sql"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
)

// execAll runs statements in order, stopping at the first error.
func execAll(ctx context.Context, tx *sql.Tx, statements ...string) error {
	for _, statement := range statements {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}

// createUsersTable creates the users table
func createUsersTable(driver string) Migration {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(50) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT users_username_key UNIQUE (username)
		)
	`
	if driver == constants.DriverSQLite {
		query = `
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`
	}

	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   constants.TableUsers,
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, query)
		},
	}
}

// createTasksTable creates the tasks table. Deleting a user deletes their tasks.
func createTasksTable(driver string) Migration {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			due_date TIMESTAMPTZ,
			priority VARCHAR(50) NOT NULL DEFAULT '',
			status VARCHAR(50) NOT NULL DEFAULT '',
			project VARCHAR(100) NOT NULL DEFAULT '',
			user_id BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_tasks_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)
	`
	if driver == constants.DriverSQLite {
		query = `
			CREATE TABLE IF NOT EXISTS tasks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				due_date DATETIME,
				priority TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT '',
				project TEXT NOT NULL DEFAULT '',
				user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`
	}

	return Migration{
		Name:        "create_tasks_table",
		Description: "Creates the tasks table",
		TableName:   constants.TableTasks,
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx,
				query,
				`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id)`,
			)
		},
	}
}
