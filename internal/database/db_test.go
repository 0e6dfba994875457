package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/config"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
)

func sqliteConfig(path string) *config.AppConfig {
	return &config.AppConfig{Database: config.DatabaseSettings{
		Driver:   constants.DriverSQLite,
		Path:     path,
		MaxConns: 4,
		MinConns: 2,
	}}
}

func TestConnect(t *testing.T) {
	t.Run("SQLite in memory is pinned to one connection", func(t *testing.T) {
		pool, err := Connect(sqliteConfig(constants.SQLiteMemoryPath))
		require.NoError(t, err)
		defer pool.Close()

		assert.True(t, pool.IsSQLite())
		assert.Equal(t, 1, pool.Stats().MaxOpenConnections)
		assert.NoError(t, pool.HealthCheck(context.Background()))

		var fk int
		require.NoError(t, pool.QueryRow("PRAGMA foreign_keys").Scan(&fk))
		assert.Equal(t, 1, fk, "foreign keys should be enabled")
	})

	t.Run("SQLite file uses the configured pool size", func(t *testing.T) {
		pool, err := Connect(sqliteConfig(filepath.Join(t.TempDir(), "tasks.db")))
		require.NoError(t, err)
		defer pool.Close()

		assert.Equal(t, 4, pool.Stats().MaxOpenConnections)

		var fk int
		require.NoError(t, pool.QueryRow("PRAGMA foreign_keys").Scan(&fk))
		assert.Equal(t, 1, fk)
	})

	t.Run("Unsupported driver", func(t *testing.T) {
		pool, err := Connect(&config.AppConfig{Database: config.DatabaseSettings{Driver: "mysql"}})

		assert.Nil(t, pool)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_foreign_keys=on&_busy_timeout=5000", sqliteDSN(":memory:"))
	assert.Equal(t, "file:test.db?cache=shared&_foreign_keys=on&_busy_timeout=5000", sqliteDSN("file:test.db?cache=shared"))
}

func TestNewPool(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	assert.False(t, NewPool(mockDB, constants.DriverPostgres).IsSQLite())
	assert.True(t, NewPool(mockDB, constants.DriverSQLite).IsSQLite())
}

func TestPool_CloseToleratesNil(t *testing.T) {
	var pool *Pool
	pool.Close()
	(&Pool{}).Close()
}

// TestTransaction runs against SQLite so rollback is observable in the data.
func TestTransaction(t *testing.T) {
	ctx := context.Background()
	pool, err := Connect(sqliteConfig(constants.SQLiteMemoryPath))
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec("CREATE TABLE items (name TEXT NOT NULL UNIQUE)")
	require.NoError(t, err)

	countItems := func() int {
		var n int
		require.NoError(t, pool.QueryRow("SELECT COUNT(*) FROM items").Scan(&n))
		return n
	}

	t.Run("Commit", func(t *testing.T) {
		err := pool.Transaction(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO items (name) VALUES ($1)", "first")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, countItems())
	})

	t.Run("Error rolls back", func(t *testing.T) {
		fnErr := errors.New("stop")
		err := pool.Transaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "INSERT INTO items (name) VALUES ($1)", "second"); err != nil {
				return err
			}
			return fnErr
		})
		assert.ErrorIs(t, err, fnErr)
		assert.Equal(t, 1, countItems())
	})

	t.Run("Panic rolls back and propagates", func(t *testing.T) {
		assert.PanicsWithValue(t, "boom", func() {
			_ = pool.Transaction(ctx, func(tx *sql.Tx) error {
				_, _ = tx.ExecContext(ctx, "INSERT INTO items (name) VALUES ($1)", "third")
				panic("boom")
			})
		})
		assert.Equal(t, 1, countItems())
	})
}

func TestTransaction_DriverFailures(t *testing.T) {
	tests := []struct {
		name    string
		expect  func(sqlmock.Sqlmock)
		fnErr   error
		wantErr string
	}{
		{
			name:    "Begin fails",
			expect:  func(m sqlmock.Sqlmock) { m.ExpectBegin().WillReturnError(errors.New("begin error")) },
			wantErr: "failed to begin transaction",
		},
		{
			name: "Commit fails",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectCommit().WillReturnError(errors.New("commit error"))
			},
			wantErr: "failed to commit transaction",
		},
		{
			name: "Rollback fails",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectRollback().WillReturnError(errors.New("rollback error"))
			},
			fnErr:   errors.New("function error"),
			wantErr: "failed to rollback transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()
			tt.expect(mock)

			err = NewPool(mockDB, constants.DriverPostgres).Transaction(context.Background(), func(tx *sql.Tx) error {
				return tt.fnErr
			})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		expect  func(sqlmock.Sqlmock)
		wantErr string
	}{
		{
			name: "Healthy",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectPing()
				m.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
			},
		},
		{
			name: "Ping fails",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectPing().WillReturnError(errors.New("connection refused"))
			},
			wantErr: "database health check failed",
		},
		{
			name: "Query fails",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectPing()
				m.ExpectQuery("SELECT 1").WillReturnError(errors.New("query error"))
			},
			wantErr: "database query test failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer mockDB.Close()
			tt.expect(mock)

			err = NewPool(mockDB, constants.DriverPostgres).HealthCheck(context.Background())

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
