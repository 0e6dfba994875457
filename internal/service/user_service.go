package service

import (
	"context"
	"fmt"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/auth"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/repository"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// UserService handles account management by administrators
type UserService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, hasher auth.PasswordHasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// ListUsers returns every account. Only admins may call it.
func (s *UserService) ListUsers(ctx context.Context, claims *auth.Claims) ([]*models.User, error) {
	if !auth.CanAccessAllUsers(claims) {
		return nil, forbiddenUnlessAuthenticated(claims, constants.MsgForbidViewUsers)
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, storeError(err, constants.MsgErrorFetchingUsers)
	}

	for i, user := range users {
		users[i] = user.Sanitize()
	}
	return users, nil
}

// CreateUser adds an account with any role. The role defaults to user.
func (s *UserService) CreateUser(ctx context.Context, claims *auth.Claims, req *models.AdminUserCreate) (*models.User, error) {
	if !auth.CanAccessAllUsers(claims) {
		return nil, forbiddenUnlessAuthenticated(claims, constants.MsgForbidCreateUser)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.IsValid() {
		return nil, utils.NewValidationError(constants.ColumnRole, constants.MsgInvalidRole)
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, storeError(fmt.Errorf("failed to check username existence: %w", err), constants.MsgErrorCreatingUser)
	}
	if exists {
		return nil, utils.NewDuplicateError(constants.ColumnUsername, constants.MsgUsernameExists)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, storeError(fmt.Errorf("failed to hash password: %w", err), constants.MsgErrorCreatingUser)
	}

	user := models.NewUser(req.Username, role)
	user.PasswordHash = passwordHash

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, storeError(err, constants.MsgErrorCreatingUser)
	}

	utils.LogAuth(constants.LogEventUserCreate, user.ID, user.Username, true, "created by "+claims.Username)

	return user.Sanitize(), nil
}

// UpdateUser changes the username and/or role of an account
func (s *UserService) UpdateUser(ctx context.Context, claims *auth.Claims, id int64, req *models.AdminUserUpdate) (*models.User, error) {
	if !auth.CanModifyUser(claims, id) {
		return nil, forbiddenUnlessAuthenticated(claims, constants.MsgForbidUpdateUsers)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, constants.MsgErrorUpdatingUser)
	}

	if req.Username != nil && *req.Username != user.Username {
		exists, err := s.userRepo.ExistsByUsername(ctx, *req.Username)
		if err != nil {
			return nil, storeError(fmt.Errorf("failed to check username existence: %w", err), constants.MsgErrorUpdatingUser)
		}
		if exists {
			return nil, utils.NewDuplicateError(constants.ColumnUsername, constants.MsgUsernameExists)
		}
		user.Username = *req.Username
	}

	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, utils.NewValidationError(constants.ColumnRole, constants.MsgInvalidRole)
		}
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, storeError(err, constants.MsgErrorUpdatingUser)
	}

	utils.LogAuth(constants.LogEventUserUpdate, user.ID, user.Username, true, "updated by "+claims.Username)

	return user.Sanitize(), nil
}

// DeleteUser removes an account together with its tasks
func (s *UserService) DeleteUser(ctx context.Context, claims *auth.Claims, id int64) error {
	if !auth.CanModifyUser(claims, id) {
		return forbiddenUnlessAuthenticated(claims, constants.MsgForbidDeleteUsers)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return storeError(err, constants.MsgErrorDeletingUser)
	}

	utils.LogAuth(constants.LogEventUserDelete, id, "", true, "deleted by "+claims.Username)

	return nil
}

// forbiddenUnlessAuthenticated answers 401 for missing claims and 403 otherwise.
func forbiddenUnlessAuthenticated(claims *auth.Claims, message string) error {
	if claims == nil {
		return utils.NewUnauthorizedError()
	}
	return utils.NewForbiddenError(message)
}
