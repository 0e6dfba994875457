package models_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Role
		wantErr bool
	}{
		{name: "admin", input: "admin", want: models.RoleAdmin},
		{name: "user", input: "user", want: models.RoleUser},
		{name: "empty", input: "", wantErr: true},
		{name: "case sensitive", input: "Admin", wantErr: true},
		{name: "unknown", input: "superuser", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := models.ParseRole(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestRole_Predicates(t *testing.T) {
	assert.True(t, models.RoleAdmin.IsAdmin())
	assert.False(t, models.RoleUser.IsAdmin())
	assert.True(t, models.RoleUser.IsValid())
	assert.False(t, models.Role("owner").IsValid())
	assert.Equal(t, "admin", models.RoleAdmin.String())
}

func TestRole_UnmarshalJSON(t *testing.T) {
	t.Run("known role decodes", func(t *testing.T) {
		var body models.AdminUserCreate
		err := json.Unmarshal([]byte(`{"username":"bob","password":"password1","role":"admin"}`), &body)

		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, body.Role)
	})

	t.Run("unknown role is a validation error", func(t *testing.T) {
		var body models.AdminUserCreate
		err := json.Unmarshal([]byte(`{"username":"bob","password":"password1","role":"root"}`), &body)

		require.Error(t, err)
		var appErr *utils.AppError
		require.True(t, errors.As(err, &appErr))
		assert.ErrorIs(t, appErr, utils.ErrValidation)
		assert.Equal(t, constants.MsgInvalidRole, appErr.Message)
	})

	t.Run("role serializes as a string", func(t *testing.T) {
		data, err := json.Marshal(models.AuthResponse{Token: "t", Role: models.RoleUser})

		require.NoError(t, err)
		assert.JSONEq(t, `{"token":"t","role":"user"}`, string(data))
	})
}

func TestRole_Scan(t *testing.T) {
	var role models.Role

	require.NoError(t, role.Scan("admin"))
	assert.Equal(t, models.RoleAdmin, role)

	require.NoError(t, role.Scan([]byte("user")))
	assert.Equal(t, models.RoleUser, role)

	assert.ErrorIs(t, role.Scan("moderator"), models.ErrInvalidRole)
	assert.ErrorIs(t, role.Scan(nil), models.ErrInvalidRole)
	assert.ErrorIs(t, role.Scan(42), models.ErrInvalidRole)
}

func TestRole_Value(t *testing.T) {
	value, err := models.RoleUser.Value()
	require.NoError(t, err)
	assert.Equal(t, "user", value)

	_, err = models.Role("").Value()
	assert.ErrorIs(t, err, models.ErrInvalidRole)
}
