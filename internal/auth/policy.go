package auth

import (
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// Authorization decisions. Every function is total: nil claims or a nil
// target deny.

// CanAccessAllUsers reports whether the caller may list and manage users.
func CanAccessAllUsers(claims *Claims) bool {
	return claims.IsAdmin()
}

// CanModifyUser reports whether the caller may change the target user.
func CanModifyUser(claims *Claims, targetUserID int64) bool {
	return claims.IsAdmin()
}

// CanModifyTask reports whether the caller may update or delete task.
func CanModifyTask(claims *Claims, task *models.Task) bool {
	if claims == nil || task == nil {
		return false
	}
	return claims.IsAdmin() || task.UserID == claims.ID
}

// CanViewTask reports whether the caller may read task.
func CanViewTask(claims *Claims, task *models.Task) bool {
	return CanModifyTask(claims, task)
}

// TaskScope returns the owner filter for task listings. When all is true
// the caller sees every task and ownerID is meaningless.
func TaskScope(claims *Claims) (ownerID int64, all bool) {
	if claims == nil {
		return 0, false
	}
	if claims.IsAdmin() {
		return 0, true
	}
	return claims.ID, false
}

// AuthorizeTaskChange checks existence before ownership: a missing task is
// reported as not found, a foreign one as forbidden with message.
func AuthorizeTaskChange(claims *Claims, task *models.Task, message string) error {
	if task == nil {
		return utils.NewNotFoundError("Task", nil)
	}
	if !CanModifyTask(claims, task) {
		return utils.NewForbiddenError(message)
	}
	return nil
}
