// Package constants provides shared constant values used throughout the application.
//
// The routes_const.go file defines every route path and URL parameter name.
package constants

// Operational routes.
const (
	APIBasePath = "/api"
	HealthPath  = "/health"
	VersionPath = "/version"
	MetricsPath = "/metrics"
)

// Public authentication routes.
const (
	RegisterPath = "/register"
	LoginPath    = "/login"
)

// Task routes, relative to APIBasePath.
const (
	TaskPath       = "/task"
	TaskDetailPath = "/task/{taskId}"
	TasksPath      = "/tasks"
)

// User management routes, relative to APIBasePath.
const (
	UsersPath           = "/users"
	AdminUsersPath      = "/admin/users"
	AdminUserPath       = "/admin/user"
	AdminUserDetailPath = "/admin/user/{userId}"
)

// URL parameter names.
const (
	ParamTaskID = "taskId"
	ParamUserID = "userId"
)
