// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines the messages returned to clients and the
// driver error codes the error parser recognises.
package constants

// Generic error descriptions used as the Message of sentinel-backed AppErrors.
const (
	ErrorNotFound           = "resource not found"
	ErrorUnauthorized       = "unauthorized access"
	ErrorForbidden          = "forbidden access"
	ErrorBadRequest         = "invalid request"
	ErrorInternalServer     = "internal server error"
	ErrorValidation         = "validation error"
	ErrorDuplicate          = "duplicate resource"
	ErrorInvalidCredentials = "invalid credentials"
	ErrorTooManyRequests    = "too many requests"
)

// Client messages. These strings are part of the HTTP contract.
const (
	MsgUnauthorized        = "Unauthorized"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgUsernameExists      = "Username already exists"
	MsgInternalServerError = "An internal server error occurred"
	MsgRequestBodyTooLarge = "Request body too large"
	MsgEmptyRequestBody    = "Request body must not be empty"
	MsgMalformedJSON       = "Request body contains malformed JSON"
	MsgResourceNotFound    = "The requested resource could not be found"
	MsgResourceExists      = "A resource with the same unique identifier already exists"
	MsgTooManyRequests     = "Too many requests"
	MsgInvalidTaskID       = "Invalid task ID"
	MsgInvalidUserID       = "Invalid user ID"
	MsgTaskNotFound        = "Task not found"
	MsgUserNotFound        = "User not found"
	MsgTaskDeleted         = "Task deleted successfully"
	MsgUserDeleted         = "User deleted successfully"
	MsgInvalidRole         = "role must be one of: admin, user"
	MsgInvalidDueDate      = "dueDate must be a date (YYYY-MM-DD or RFC3339)"
)

// FieldDueDate names the task due date in validation errors.
const FieldDueDate = "dueDate"

// Forbidden messages, one per protected action.
const (
	MsgAdminRequired     = "Access denied, admin required"
	MsgForbidViewUsers   = "You do not have permission to view users"
	MsgForbidCreateUser  = "You do not have permission to create a user"
	MsgForbidUpdateUsers = "You do not have permission to update users"
	MsgForbidDeleteUsers = "You do not have permission to delete users"
	MsgForbidViewTask    = "You can only view your own tasks"
	MsgForbidUpdateTask  = "You can only update your own tasks"
	MsgForbidDeleteTask  = "You can only delete your own tasks"
)

// Store failure messages. The underlying cause is logged, never returned.
const (
	MsgErrorCreatingTask  = "Error creating task"
	MsgErrorUpdatingTask  = "Error updating task"
	MsgErrorDeletingTask  = "Error deleting task"
	MsgErrorFetchingTask  = "Error fetching task"
	MsgErrorFetchingTasks = "Error fetching tasks"
	MsgErrorFetchingUsers = "Error fetching users"
	MsgErrorCreatingUser  = "Error creating user"
	MsgErrorUpdatingUser  = "Error updating user"
	MsgErrorDeletingUser  = "Error deleting user"
	MsgErrorRegistering   = "Error registering user"
	MsgErrorLoggingIn     = "Error logging in"
)

// Database Error Codes.
const (
	// DBErrorDuplicateKey is the text fragment of a Postgres unique violation.
	DBErrorDuplicateKey = "duplicate key value violates unique constraint"

	// PGErrorDuplicateConstraint is the PostgreSQL unique_violation code.
	PGErrorDuplicateConstraint = "23505"

	// PGErrorForeignKeyConstraint is the PostgreSQL foreign_key_violation code.
	PGErrorForeignKeyConstraint = "23503"

	// PGErrorNotNullConstraint is the PostgreSQL not_null_violation code.
	PGErrorNotNullConstraint = "23502"
)

// Log categories and events used by utils.LogAuth.
const (
	LogCategoryAuth = "auth"

	LogEventLogin      = "login"
	LogEventRegister   = "register"
	LogEventUserCreate = "user_create"
	LogEventUserUpdate = "user_update"
	LogEventUserDelete = "user_delete"

	LogFieldRequestID = "request_id"
	LogFieldUserID    = "user_id"
	LogFieldUsername  = "username"
	LogFieldRole      = "role"

	// LogRedactedValue replaces sensitive values in log output.
	LogRedactedValue = "[REDACTED]"
)
