package service

import (
	"errors"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// storeError passes application errors through and turns anything else
// into a 500 carrying message.
func storeError(err error, message string) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return utils.NewStoreError(err, message)
}
