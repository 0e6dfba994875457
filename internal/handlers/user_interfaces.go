package handlers

import (
	"context"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/auth"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
)

// UserServiceInterface defines the account management operations available
// to administrators. Every method receives the caller's claims and refuses
// non-admins.
type UserServiceInterface interface {
	ListUsers(ctx context.Context, claims *auth.Claims) ([]*models.User, error)
	CreateUser(ctx context.Context, claims *auth.Claims, req *models.AdminUserCreate) (*models.User, error)
	UpdateUser(ctx context.Context, claims *auth.Claims, id int64, req *models.AdminUserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, claims *auth.Claims, id int64) error
}

// TaskServiceInterface defines the task operations. Store failures come back
// as errors carrying the operation specific message.
type TaskServiceInterface interface {
	CreateTask(ctx context.Context, claims *auth.Claims, input *models.TaskInput) (*models.Task, error)
	GetTask(ctx context.Context, claims *auth.Claims, id int64) (*models.Task, error)
	UpdateTask(ctx context.Context, claims *auth.Claims, id int64, input *models.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, claims *auth.Claims, id int64) error
	ListTasks(ctx context.Context, claims *auth.Claims) ([]*models.Task, error)
}
