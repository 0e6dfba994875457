package models

import (
	"time"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
)

// User represents an account that can authenticate and own tasks.
// Only id, username and role are ever serialized.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
	UpdatedAt    time.Time `json:"-" db:"updated_at"`
}

// NewUser creates a new User with the given username and role.
// The password hash is set by the caller before the user is stored.
func NewUser(username string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		Username:  username,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return constants.TableUsers
}

// Sanitize returns a copy of the user without the password hash.
func (u *User) Sanitize() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	return &sanitized
}

// UserCredentials represents the login credentials provided by a user.
type UserCredentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserRegistration represents the data required for self registration.
type UserRegistration struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" validate:"required,max=128"`
}

// AdminUserCreate is the body of an admin creating an account.
// Role defaults to user when omitted.
type AdminUserCreate struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" validate:"required,max=128"`
	Role     Role   `json:"role"`
}

// AdminUserUpdate is the body of an admin changing an account.
// Nil fields are left unchanged.
type AdminUserUpdate struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50,username"`
	Role     *Role   `json:"role"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}
