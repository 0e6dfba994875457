package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// Task is a unit of work owned by a single user.
type Task struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	DueDate     *time.Time `json:"dueDate" db:"due_date"`
	Priority    string     `json:"priority" db:"priority"`
	Status      string     `json:"status" db:"status"`
	Project     string     `json:"project" db:"project"`
	UserID      int64      `json:"userId" db:"user_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// TableName returns the database table name for the Task model.
func (t *Task) TableName() string {
	return constants.TableTasks
}

// dateOnlyLayout is the format sent by HTML date inputs.
const dateOnlyLayout = "2006-01-02"

// Date is a due date in a request body. It accepts an RFC3339 timestamp or a
// plain YYYY-MM-DD date, which is read as midnight UTC.
type Date struct {
	time.Time
}

// ParseDate parses s as RFC3339 or YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date{t.UTC()}, nil
	}
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// UnmarshalJSON implements json.Unmarshaler. Failures surface as a
// validation error on dueDate.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return utils.NewValidationError(constants.FieldDueDate, constants.MsgInvalidDueDate)
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return utils.NewValidationError(constants.FieldDueDate, constants.MsgInvalidDueDate)
	}
	*d = parsed
	return nil
}

// timePtr returns the stored time, or nil when d is nil.
func (d *Date) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// TaskInput is the body accepted when creating a task.
type TaskInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	DueDate     *Date  `json:"dueDate"`
	Priority    string `json:"priority" validate:"max=50"`
	Status      string `json:"status" validate:"max=50"`
	Project     string `json:"project" validate:"max=100"`
}

// NewTask builds a task owned by userID from the input.
func (in *TaskInput) NewTask(userID int64) *Task {
	now := time.Now().UTC()
	return &Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate.timePtr(),
		Priority:    in.Priority,
		Status:      in.Status,
		Project:     in.Project,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TaskUpdate is the body of PUT /api/task/{taskId}.
// Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	DueDate     *Date   `json:"dueDate"`
	Priority    *string `json:"priority" validate:"omitempty,max=50"`
	Status      *string `json:"status" validate:"omitempty,max=50"`
	Project     *string `json:"project" validate:"omitempty,max=100"`
}

// ApplyTo writes the fields present in the update onto task.
// The owner and creation time are never touched.
func (in *TaskUpdate) ApplyTo(task *Task, now time.Time) {
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate.timePtr()
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Project != nil {
		task.Project = *in.Project
	}
	task.UpdatedAt = now
}
