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

// TaskRepository defines methods for interacting with task data
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]*models.Task, error)
	ListAll(ctx context.Context) ([]*models.Task, error)
}

// SQLTaskRepository implements TaskRepository for Postgres and SQLite.
type SQLTaskRepository struct {
	db *database.Pool
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *database.Pool) TaskRepository {
	return &SQLTaskRepository{
		db: db,
	}
}

const taskColumns = `id, title, description, due_date, priority, status, project, user_id, created_at, updated_at`

func scanTask(row interface{ Scan(dest ...interface{}) error }) (*models.Task, error) {
	task := &models.Task{}
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Priority,
		&task.Status,
		&task.Project,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Create inserts a task and sets its ID.
func (r *SQLTaskRepository) Create(ctx context.Context, task *models.Task) error {
	startTime := time.Now()

	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	query := `
        INSERT INTO tasks (title, description, due_date, priority, status, project, user_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	args := []interface{}{
		task.Title,
		task.Description,
		task.DueDate,
		task.Priority,
		task.Status,
		task.Project,
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	}

	err := r.db.QueryRowContext(ctx, query, args...).Scan(&task.ID)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	log.Info().
		Int64("task_id", task.ID).
		Int64(constants.LogFieldUserID, task.UserID).
		Msg("Task created")

	return nil
}

// GetByID retrieves a task by ID
func (r *SQLTaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	startTime := time.Now()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Task", id)
		}
		return nil, fmt.Errorf("failed to get task by ID: %w", err)
	}

	return task, nil
}

// Update writes the mutable fields of a task. The owner never changes.
func (r *SQLTaskRepository) Update(ctx context.Context, task *models.Task) error {
	startTime := time.Now()

	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = time.Now().UTC()
	}

	query := `
        UPDATE tasks
        SET title = $1, description = $2, due_date = $3, priority = $4, status = $5, project = $6, updated_at = $7
        WHERE id = $8
    `
	args := []interface{}{
		task.Title,
		task.Description,
		task.DueDate,
		task.Priority,
		task.Status,
		task.Project,
		task.UpdatedAt,
		task.ID,
	}

	result, err := r.db.ExecContext(ctx, query, args...)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Task", task.ID)
	}

	log.Info().
		Int64("task_id", task.ID).
		Msg("Task updated")

	return nil
}

// Delete removes a task
func (r *SQLTaskRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := "DELETE FROM tasks WHERE id = $1"
	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Task", id)
	}

	log.Info().
		Int64("task_id", id).
		Msg("Task deleted")

	return nil
}

// ListByUser returns the tasks owned by userID ordered by ID.
func (r *SQLTaskRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY id`
	return r.list(ctx, query, userID)
}

// ListAll returns every task ordered by ID.
func (r *SQLTaskRepository) ListAll(ctx context.Context) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY id`
	return r.list(ctx, query)
}

func (r *SQLTaskRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Task, error) {
	startTime := time.Now()

	rows, err := r.db.QueryContext(ctx, query, args...)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}
