package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/auth"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

func init() {
	utils.InitValidator()
}

// MockAuthService is a mock implementation of AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, reg *models.UserRegistration) (*models.AuthResponse, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, creds *models.UserCredentials) (*models.AuthResponse, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

// MockUserService is a mock implementation of UserServiceInterface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context, claims *auth.Claims) ([]*models.User, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, claims *auth.Claims, req *models.AdminUserCreate) (*models.User, error) {
	args := m.Called(ctx, claims, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, claims *auth.Claims, id int64, req *models.AdminUserUpdate) (*models.User, error) {
	args := m.Called(ctx, claims, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, claims *auth.Claims, id int64) error {
	args := m.Called(ctx, claims, id)
	return args.Error(0)
}

// MockTaskService is a mock implementation of TaskServiceInterface
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(ctx context.Context, claims *auth.Claims, input *models.TaskInput) (*models.Task, error) {
	args := m.Called(ctx, claims, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) GetTask(ctx context.Context, claims *auth.Claims, id int64) (*models.Task, error) {
	args := m.Called(ctx, claims, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, claims *auth.Claims, id int64, input *models.TaskUpdate) (*models.Task, error) {
	args := m.Called(ctx, claims, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, claims *auth.Claims, id int64) error {
	args := m.Called(ctx, claims, id)
	return args.Error(0)
}

func (m *MockTaskService) ListTasks(ctx context.Context, claims *auth.Claims) ([]*models.Task, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

// Helper functions for testing

var (
	testAdmin = &auth.Claims{ID: 1, Username: "admin", Role: models.RoleAdmin}
	testUser  = &auth.Claims{ID: 2, Username: "alice", Role: models.RoleUser}
)

// newRequest builds a request carrying claims and chi URL parameters.
func newRequest(t *testing.T, method, target string, body interface{}, claims *auth.Claims, params map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	ctx := req.Context()
	if claims != nil {
		ctx = auth.WithClaims(ctx, claims)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

// decodeBody decodes a JSON response into a generic map.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "body: %s", rr.Body.String())
	return body
}
