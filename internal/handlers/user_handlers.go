package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/auth"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// UserHandler handles the admin user management routes
type UserHandler struct {
	userService UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns every account as {id, username, role}.
// It serves both GET /api/users and GET /api/admin/users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.GetClaims(r)

	users, err := h.userService.ListUsers(r.Context(), claims)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, users)
}

// CreateUser handles POST /api/admin/user
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.GetClaims(r)

	var req models.AdminUserCreate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.userService.CreateUser(r.Context(), claims, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, user)
}

// UpdateUser handles PUT /api/admin/user/{userId}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.GetClaims(r)

	id, ok := utils.ParseID(chi.URLParam(r, constants.ParamUserID))
	if !ok {
		utils.BadRequest(w, constants.MsgInvalidUserID, nil)
		return
	}

	var req models.AdminUserUpdate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), claims, id, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/user/{userId}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.GetClaims(r)

	id, ok := utils.ParseID(chi.URLParam(r, constants.ParamUserID))
	if !ok {
		utils.BadRequest(w, constants.MsgInvalidUserID, nil)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), claims, id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, http.StatusOK, constants.MsgUserDeleted)
}
