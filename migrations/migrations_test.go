package migrations_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/config"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/database"
	"github.com/yasinhessnawi1/TaskTracker_Backend/migrations"
)

// createMockDB creates a mock database for testing
func createMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

// TestNewMigrator tests the NewMigrator function
func TestNewMigrator(t *testing.T) {
	db, _, cleanup := createMockDB(t)
	defer cleanup()

	migrator := migrations.NewMigrator(database.NewPool(db, constants.DriverPostgres))

	assert.NotNil(t, migrator)
}

// TestGetMigrations tests the GetMigrations function
func TestGetMigrations(t *testing.T) {
	for _, driver := range []string{constants.DriverPostgres, constants.DriverSQLite} {
		list := migrations.GetMigrations(driver)

		require.Len(t, list, 2)
		assert.Equal(t, "create_users_table", list[0].Name)
		assert.Equal(t, "users", list[0].TableName)
		assert.Equal(t, "create_tasks_table", list[1].Name, "tasks reference users and must come after")
		assert.Equal(t, "tasks", list[1].TableName)
	}
}

// TestRunMigrations tests the main RunMigrations function
func TestRunMigrations(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "Error - Create migrations table fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnError(errors.New("failed to create migrations table"))
			},
			wantErr: true,
		},
		{
			name: "Error - Get executed migrations fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnError(errors.New("failed to get executed migrations"))
			},
			wantErr: true,
		},
		{
			name: "Error - Table exists check fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnRows(sqlmock.NewRows([]string{"name"}))
				mock.ExpectQuery("FROM information_schema.tables").
					WillReturnError(errors.New("failed to check table existence"))
			},
			wantErr: true,
		},
		{
			name: "Success - Tables already exist",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnRows(sqlmock.NewRows([]string{"name"}))

				// For each migration, table already exists so it is only recorded
				for i := 0; i < len(migrations.GetMigrations(constants.DriverPostgres)); i++ {
					mock.ExpectQuery("FROM information_schema.tables").
						WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
					mock.ExpectExec("INSERT INTO migrations").
						WillReturnResult(sqlmock.NewResult(1, 1))
				}
			},
		},
		{
			name: "Success - Fresh database",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnRows(sqlmock.NewRows([]string{"name"}))

				mock.ExpectQuery("FROM information_schema.tables").
					WithArgs("users").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("INSERT INTO migrations").
					WithArgs("create_users_table", "Creates the users table").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()

				mock.ExpectQuery("FROM information_schema.tables").
					WithArgs("tasks").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS tasks").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_tasks_user_id").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("INSERT INTO migrations").
					WithArgs("create_tasks_table", "Creates the tasks table").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "Success - Everything already executed",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnRows(sqlmock.NewRows([]string{"name"}).
						AddRow("create_users_table").
						AddRow("create_tasks_table"))
			},
		},
		{
			name: "Error - Migration SQL fails and is rolled back",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnRows(sqlmock.NewRows([]string{"name"}))
				mock.ExpectQuery("FROM information_schema.tables").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
					WillReturnError(errors.New("permission denied"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := createMockDB(t)
			defer cleanup()

			tt.setup(mock)

			migrator := migrations.NewMigrator(database.NewPool(db, constants.DriverPostgres))

			err := migrator.RunMigrations(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func openSQLite(t *testing.T) *database.Pool {
	t.Helper()
	pool, err := database.Connect(&config.AppConfig{Database: config.DatabaseSettings{
		Driver: constants.DriverSQLite,
		Path:   constants.SQLiteMemoryPath,
	}})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// TestRunMigrations_SQLite runs the real DDL against an in-memory database.
func TestRunMigrations_SQLite(t *testing.T) {
	pool := openSQLite(t)
	migrator := migrations.NewMigrator(pool)
	ctx := context.Background()

	require.NoError(t, migrator.RunMigrations(ctx))
	require.NoError(t, migrator.RunMigrations(ctx), "second run must be a no-op")

	var count int
	require.NoError(t, pool.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 2, count)

	t.Run("role is constrained", func(t *testing.T) {
		_, err := pool.Exec(`INSERT INTO users (username, password_hash, role) VALUES ('x', 'h', 'root')`)
		assert.Error(t, err)
	})

	t.Run("username is unique", func(t *testing.T) {
		_, err := pool.Exec(`INSERT INTO users (username, password_hash) VALUES ('dup', 'h')`)
		require.NoError(t, err)
		_, err = pool.Exec(`INSERT INTO users (username, password_hash) VALUES ('dup', 'h')`)
		assert.Error(t, err)
	})

	t.Run("deleting a user deletes their tasks", func(t *testing.T) {
		var userID int64
		require.NoError(t, pool.QueryRow(
			`INSERT INTO users (username, password_hash) VALUES ('owner', 'h') RETURNING id`).Scan(&userID))
		_, err := pool.Exec(`INSERT INTO tasks (title, user_id) VALUES ('t1', $1)`, userID)
		require.NoError(t, err)

		_, err = pool.Exec(`DELETE FROM users WHERE id = $1`, userID)
		require.NoError(t, err)

		var tasks int
		require.NoError(t, pool.QueryRow(`SELECT COUNT(*) FROM tasks WHERE user_id = $1`, userID).Scan(&tasks))
		assert.Equal(t, 0, tasks)
	})

	t.Run("tasks require an existing owner", func(t *testing.T) {
		_, err := pool.Exec(`INSERT INTO tasks (title, user_id) VALUES ('orphan', 9999)`)
		assert.Error(t, err)
	})
}
