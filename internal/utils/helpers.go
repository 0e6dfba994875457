// Package utils provides utility functions and helpers for common operations
// used throughout the application, such as error mapping, responses,
// validation and logging.
package utils

import (
	"strconv"
	"strings"
)

// ParseID parses a positive integer path parameter such as a task or user id.
//
// Returns:
//   - the parsed id and true, or 0 and false when raw is not a positive integer
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ContainsString checks if a slice of strings contains a specific string.
func ContainsString(slice []string, str string) bool {
	for _, item := range slice {
		if item == str {
			return true
		}
	}
	return false
}
