package service

import (
	"context"
	"errors"
	"sort"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/auth"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

var errStoreDown = errors.New("store unavailable")

// Mock implementations for testing
type MockUserRepository struct {
	users           map[int64]*models.User
	usersByUsername map[string]*models.User
	nextID          int64
	err             error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:           make(map[int64]*models.User),
		usersByUsername: make(map[string]*models.User),
		nextID:          1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.usersByUsername[user.Username]; ok {
		return utils.NewDuplicateError(constants.ColumnUsername, constants.MsgUsernameExists)
	}

	user.ID = m.nextID
	m.nextID++

	stored := *user
	m.users[user.ID] = &stored
	m.usersByUsername[user.Username] = &stored

	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, utils.NewNotFoundError("User", id)
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.usersByUsername[username]
	if !ok {
		return nil, utils.NewNotFoundError("User", username)
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	old, ok := m.users[user.ID]
	if !ok {
		return utils.NewNotFoundError("User", user.ID)
	}

	delete(m.usersByUsername, old.Username)
	stored := *user
	stored.PasswordHash = old.PasswordHash
	m.users[user.ID] = &stored
	m.usersByUsername[user.Username] = &stored

	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	user, ok := m.users[id]
	if !ok {
		return utils.NewNotFoundError("User", id)
	}

	delete(m.usersByUsername, user.Username)
	delete(m.users, id)

	return nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	users := make([]*models.User, 0, len(m.users))
	for _, user := range m.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.usersByUsername[username]
	return ok, nil
}

func (m *MockUserRepository) ExistsByRole(ctx context.Context, role models.Role) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, user := range m.users {
		if user.Role == role {
			return true, nil
		}
	}
	return false, nil
}

type MockTaskRepository struct {
	tasks  map[int64]*models.Task
	nextID int64
	err    error
	// updateErr and deleteErr fail only the write after a successful read
	updateErr error
	deleteErr error
}

func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		tasks:  make(map[int64]*models.Task),
		nextID: 1,
	}
}

func (m *MockTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if m.err != nil {
		return m.err
	}
	task.ID = m.nextID
	m.nextID++

	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	task, ok := m.tasks[id]
	if !ok {
		return nil, utils.NewNotFoundError("Task", id)
	}
	copied := *task
	return &copied, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *models.Task) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.tasks[task.ID]; !ok {
		return utils.NewNotFoundError("Task", task.ID)
	}
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.tasks[id]; !ok {
		return utils.NewNotFoundError("Task", id)
	}
	delete(m.tasks, id)
	return nil
}

func (m *MockTaskRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	tasks := []*models.Task{}
	for _, task := range m.sorted() {
		if task.UserID == userID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (m *MockTaskRepository) ListAll(ctx context.Context) ([]*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(), nil
}

func (m *MockTaskRepository) sorted() []*models.Task {
	tasks := make([]*models.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		copied := *task
		tasks = append(tasks, &copied)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// MockHasher avoids the cost of Argon2id in service tests
type MockHasher struct {
	err error
}

func (h *MockHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

func (h *MockHasher) Verify(password, digest string) bool {
	return digest == "hashed:"+password
}

// MockTokenIssuer records the identities it signs
type MockTokenIssuer struct {
	issued []auth.Identity
	err    error
}

func (m *MockTokenIssuer) Issue(identity auth.Identity) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.issued = append(m.issued, identity)
	return "token-for-" + identity.Username, nil
}

func adminClaims() *auth.Claims {
	return &auth.Claims{ID: 1, Username: "admin", Role: models.RoleAdmin}
}

func userClaims(id int64) *auth.Claims {
	return &auth.Claims{ID: id, Username: "user", Role: models.RoleUser}
}

// statusOf returns the HTTP status an error maps to
func statusOf(err error) int {
	return utils.StatusCode(err)
}
