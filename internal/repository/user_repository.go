package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/database"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// UserRepository defines methods for interacting with user data
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByRole(ctx context.Context, role models.Role) (bool, error)
}

// SQLUserRepository implements UserRepository for Postgres and SQLite.
type SQLUserRepository struct {
	db *database.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Pool) UserRepository {
	return &SQLUserRepository{
		db: db,
	}
}

const userColumns = `id, username, password_hash, role, created_at, updated_at`

// scanUser reads a row selected with userColumns.
func scanUser(row interface{ Scan(dest ...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create adds a new user to the database and sets its ID.
// A taken username yields a duplicate error.
func (r *SQLUserRepository) Create(ctx context.Context, user *models.User) error {
	// Start query timer
	startTime := time.Now()

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
        INSERT INTO users (username, password_hash, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{user.Username, constants.LogRedactedValue, user.Role, user.CreatedAt, user.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if utils.IsUniqueViolation(err) {
			return utils.NewDuplicateError(constants.ColumnUsername, constants.MsgUsernameExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Int64(constants.LogFieldUserID, user.ID).
		Str(constants.LogFieldUsername, user.Username).
		Str(constants.LogFieldRole, user.Role.String()).
		Msg("User created")

	return nil
}

// GetByID retrieves a user by ID
func (r *SQLUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	startTime := time.Now()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", id)
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username. Matching is case sensitive,
// like the unique constraint.
func (r *SQLUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	startTime := time.Now()

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))

	utils.LogDBQuery(query, []interface{}{username}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", fmt.Sprintf("username=%s", username))
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// Update writes the username and role of a user.
func (r *SQLUserRepository) Update(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	user.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE users
        SET username = $1, role = $2, updated_at = $3
        WHERE id = $4
    `

	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Username,
		user.Role,
		user.UpdatedAt,
		user.ID,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{user.Username, user.Role, user.UpdatedAt, user.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if utils.IsUniqueViolation(err) {
			return utils.NewDuplicateError(constants.ColumnUsername, constants.MsgUsernameExists)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", user.ID)
	}

	log.Info().
		Int64(constants.LogFieldUserID, user.ID).
		Str(constants.LogFieldUsername, user.Username).
		Str(constants.LogFieldRole, user.Role.String()).
		Msg("User updated")

	return nil
}

// Delete removes a user. Their tasks go with them through the foreign key.
func (r *SQLUserRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := "DELETE FROM users WHERE id = $1"
	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", id)
	}

	log.Info().
		Int64(constants.LogFieldUserID, id).
		Msg("User deleted")

	return nil
}

// List returns every user ordered by ID.
func (r *SQLUserRepository) List(ctx context.Context) ([]*models.User, error) {
	startTime := time.Now()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(query, nil, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// ExistsByUsername checks if a user with the given username exists
func (r *SQLUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	exists, err := database.Exists(ctx, r.db, &models.User{}, map[string]interface{}{
		constants.ColumnUsername: username,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check if username exists: %w", err)
	}
	return exists, nil
}

// ExistsByRole checks if any user holds the given role
func (r *SQLUserRepository) ExistsByRole(ctx context.Context, role models.Role) (bool, error) {
	exists, err := database.Exists(ctx, r.db, &models.User{}, map[string]interface{}{
		constants.ColumnRole: role.String(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check if role exists: %w", err)
	}
	return exists, nil
}
