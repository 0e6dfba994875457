package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/auth"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// TaskHandler handles the task routes. All of them run behind the auth
// middleware.
type TaskHandler struct {
	taskService TaskServiceInterface
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService TaskServiceInterface) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask handles POST /api/task
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.GetClaims(r)

	var input models.TaskInput
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), claims, &input)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, task)
}

// GetTask handles GET /api/task/{taskId}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.GetClaims(r)

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), claims, id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, task)
}

// UpdateTask handles PUT /api/task/{taskId}. Fields missing from the body
// keep their stored values.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.GetClaims(r)

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var input models.TaskUpdate
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), claims, id, &input)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/task/{taskId}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.GetClaims(r)

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), claims, id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, http.StatusOK, constants.MsgTaskDeleted)
}

// ListTasks handles GET /api/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.GetClaims(r)

	tasks, err := h.taskService.ListTasks(r.Context(), claims)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, tasks)
}

// taskID reads the task id path parameter, answering 400 when it is not a
// positive integer.
func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := utils.ParseID(chi.URLParam(r, constants.ParamTaskID))
	if !ok {
		utils.BadRequest(w, constants.MsgInvalidTaskID, nil)
	}
	return id, ok
}
