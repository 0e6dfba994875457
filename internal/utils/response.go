// Package utils provides utility functions and helpers for the application.
// This file implements the response helpers used by every handler.
//
// Successful responses carry the resource itself as the JSON body. Error
// responses always have the shape {"error": "<message>"}, with an optional
// "details" object when several input fields failed validation.
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string            `json:"error"`             // A human-readable error message
	Details map[string]string `json:"details,omitempty"` // Per-field validation messages
}

// MessageResponse is the body of operations that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON sends data as the response body with the given status code.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code
//   - data: The value to marshal
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	SendJSON(w, statusCode, data)
}

// Message sends {"message": message} with the given status code.
func Message(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, MessageResponse{Message: message})
}

// Error sends an error response with the given status code and message.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code
//   - message: A human-readable error message
//   - details: Additional details about the error (e.g., validation errors)
func Error(w http.ResponseWriter, statusCode int, message string, details map[string]string) {
	SendJSON(w, statusCode, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// ErrorFromAppError sends the response described by an AppError.
// Server errors are logged with their DevInfo, which never reaches the client.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	if err == nil {
		InternalServerError(w, nil)
		return
	}

	if err.StatusCode >= http.StatusInternalServerError {
		log.Error().
			Err(err.Err).
			Int("status", err.StatusCode).
			Str("dev_info", err.DevInfo).
			Msg(err.Message)
	}

	var details map[string]string
	if len(err.Details) > 0 {
		details = make(map[string]string, len(err.Details))
		for field, msg := range err.Details {
			if s, ok := msg.(string); ok {
				details[field] = s
			}
		}
	}

	Error(w, err.StatusCode, err.Message, details)
}

// SendJSON is a helper function to send JSON data with proper headers.
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(`{"error":"Failed to generate response"}`)); err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// BadRequest sends a 400 Bad Request response with the given message.
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	Error(w, http.StatusBadRequest, message, details)
}

// Unauthorized sends the fixed 401 response. No reason is ever included.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, constants.MsgUnauthorized, nil)
}

// Forbidden sends a 403 Forbidden response with the given message.
func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAdminRequired
	}
	Error(w, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 Not Found response with the given message.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgResourceNotFound
	}
	Error(w, http.StatusNotFound, message, nil)
}

// TooManyRequests sends a 429 response.
func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, constants.MsgTooManyRequests, nil)
}

// InternalServerError sends a 500 Internal Server Error response.
// The error is logged but not exposed to the client.
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal server error")
	Error(w, http.StatusInternalServerError, constants.MsgInternalServerError, nil)
}
