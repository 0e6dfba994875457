package service

import (
	"context"
	"time"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/auth"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/repository"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// TaskService handles task operations. Every method checks that the task
// exists before it checks ownership.
type TaskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateTask stores a task owned by the caller
func (s *TaskService) CreateTask(ctx context.Context, claims *auth.Claims, input *models.TaskInput) (*models.Task, error) {
	if claims == nil {
		return nil, utils.NewUnauthorizedError()
	}

	task := input.NewTask(claims.ID)
	task.CreatedAt = s.now()
	task.UpdatedAt = task.CreatedAt

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, storeError(err, constants.MsgErrorCreatingTask)
	}
	return task, nil
}

// GetTask returns a single task visible to the caller
func (s *TaskService) GetTask(ctx context.Context, claims *auth.Claims, id int64) (*models.Task, error) {
	task, err := s.load(ctx, id, constants.MsgErrorFetchingTask)
	if err != nil {
		return nil, err
	}

	if task == nil {
		return nil, utils.NewNotFoundError("Task", id)
	}
	if !auth.CanViewTask(claims, task) {
		return nil, utils.NewForbiddenError(constants.MsgForbidViewTask)
	}
	return task, nil
}

// UpdateTask writes the fields present in input onto a task
func (s *TaskService) UpdateTask(ctx context.Context, claims *auth.Claims, id int64, input *models.TaskUpdate) (*models.Task, error) {
	task, err := s.load(ctx, id, constants.MsgErrorUpdatingTask)
	if err != nil {
		return nil, err
	}

	if err := auth.AuthorizeTaskChange(claims, task, constants.MsgForbidUpdateTask); err != nil {
		return nil, err
	}

	input.ApplyTo(task, s.now())

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, storeError(err, constants.MsgErrorUpdatingTask)
	}
	return task, nil
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, claims *auth.Claims, id int64) error {
	task, err := s.load(ctx, id, constants.MsgErrorDeletingTask)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeTaskChange(claims, task, constants.MsgForbidDeleteTask); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return storeError(err, constants.MsgErrorDeletingTask)
	}
	return nil
}

// ListTasks returns every task for admins and the caller's own tasks otherwise.
func (s *TaskService) ListTasks(ctx context.Context, claims *auth.Claims) ([]*models.Task, error) {
	if claims == nil {
		return nil, utils.NewUnauthorizedError()
	}

	var (
		tasks []*models.Task
		err   error
	)
	if ownerID, all := auth.TaskScope(claims); all {
		tasks, err = s.taskRepo.ListAll(ctx)
	} else {
		tasks, err = s.taskRepo.ListByUser(ctx, ownerID)
	}
	if err != nil {
		return nil, storeError(err, constants.MsgErrorFetchingTasks)
	}
	return tasks, nil
}

// load fetches a task for the policy. A missing task comes back as nil so
// the policy reports it as not found.
func (s *TaskService) load(ctx context.Context, id int64, message string) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, storeError(err, message)
	}
	return task, nil
}
