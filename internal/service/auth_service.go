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

// AuthService handles registration and login
type AuthService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
	tokens   auth.TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	tokens auth.TokenIssuer,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a user account with the user role and returns a token for it.
func (s *AuthService) Register(ctx context.Context, reg *models.UserRegistration) (*models.AuthResponse, error) {
	// Check if username already exists
	exists, err := s.userRepo.ExistsByUsername(ctx, reg.Username)
	if err != nil {
		return nil, storeError(fmt.Errorf("failed to check username existence: %w", err), constants.MsgErrorRegistering)
	}
	if exists {
		utils.LogAuth(constants.LogEventRegister, 0, reg.Username, false, "username taken")
		return nil, utils.NewDuplicateError(constants.ColumnUsername, constants.MsgUsernameExists)
	}

	passwordHash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, storeError(fmt.Errorf("failed to hash password: %w", err), constants.MsgErrorRegistering)
	}

	user := models.NewUser(reg.Username, models.RoleUser)
	user.PasswordHash = passwordHash

	// The unique constraint still catches a concurrent registration
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, storeError(err, constants.MsgErrorRegistering)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, storeError(err, constants.MsgErrorRegistering)
	}

	utils.LogAuth(constants.LogEventRegister, user.ID, user.Username, true, "")

	return &models.AuthResponse{Token: token, Role: user.Role}, nil
}

// Login verifies credentials and returns a token. Unknown users and wrong
// passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, creds *models.UserCredentials) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth(constants.LogEventLogin, 0, creds.Username, false, "user not found")
			return nil, utils.NewInvalidCredentialsError()
		}
		return nil, storeError(fmt.Errorf("failed to get user: %w", err), constants.MsgErrorLoggingIn)
	}

	if !s.hasher.Verify(creds.Password, user.PasswordHash) {
		utils.LogAuth(constants.LogEventLogin, user.ID, user.Username, false, "invalid password")
		return nil, utils.NewInvalidCredentialsError()
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, storeError(err, constants.MsgErrorLoggingIn)
	}

	utils.LogAuth(constants.LogEventLogin, user.ID, user.Username, true, "")

	return &models.AuthResponse{Token: token, Role: user.Role}, nil
}

func (s *AuthService) issue(user *models.User) (string, error) {
	token, err := s.tokens.Issue(auth.Identity{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
