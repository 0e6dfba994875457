package models

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// Role is the closed set of permission levels a user can hold.
type Role string

const (
	// RoleAdmin can manage every user and task.
	RoleAdmin Role = "admin"
	// RoleUser can manage only their own tasks.
	RoleUser Role = "user"
)

// ErrInvalidRole is returned when a stored value is not a known role.
var ErrInvalidRole = errors.New("invalid role")

// ParseRole converts a string into a Role. Matching is exact.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// IsAdmin reports whether r is the admin role.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// UnmarshalText rejects unknown roles while decoding request bodies and
// token claims.
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return utils.NewValidationError(constants.ColumnRole, constants.MsgInvalidRole)
	}
	*r = role
	return nil
}

// Scan implements sql.Scanner.
func (r *Role) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("%w: NULL", ErrInvalidRole)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidRole, src)
	}

	role, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Value implements driver.Valuer.
func (r Role) Value() (driver.Value, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, string(r))
	}
	return string(r), nil
}
