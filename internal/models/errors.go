package models

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
	}
}

// NewInvalidCredentialsError covers both unknown-email and wrong-password
// login failures so the response does not reveal which one occurred.
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:    "INVALID_CREDENTIALS",
		Message: "Invalid email or password",
	}
}

func NewNotApprovedError() *AppError {
	return &AppError{
		Code:    "NOT_APPROVED",
		Message: "Account not approved yet",
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// statusByCode maps each error code to exactly one HTTP status.
var statusByCode = map[string]int{
	"NOT_FOUND":           fiber.StatusNotFound,
	"VALIDATION_ERROR":    fiber.StatusBadRequest,
	"UNAUTHORIZED":        fiber.StatusUnauthorized,
	"FORBIDDEN":           fiber.StatusForbidden,
	"CONFLICT":            fiber.StatusConflict,
	"INVALID_CREDENTIALS": fiber.StatusBadRequest,
	"NOT_APPROVED":        fiber.StatusForbidden,
	"INTERNAL_ERROR":      fiber.StatusInternalServerError,
}

// StatusOf returns the HTTP status for an error. Non-AppError values map
// to 500.
func StatusOf(err error) int {
	if appErr, ok := err.(*AppError); ok {
		if status, found := statusByCode[appErr.Code]; found {
			return status
		}
	}
	return fiber.StatusInternalServerError
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		// Wrapped errors carry store and driver detail. Log them here;
		// the caller only ever sees the generic message.
		if appErr.Err != nil {
			slog.ErrorContext(c.UserContext(), "request failed",
				"code", appErr.Code,
				"status", status,
				"error", appErr.Err)
		}
	} else {
		msg := err.Error()
		if status >= fiber.StatusInternalServerError {
			slog.ErrorContext(c.UserContext(), "request failed",
				"status", status,
				"error", err)
			msg = "Internal server error"
		}
		response = ErrorResponse{Error: msg}
	}

	return c.Status(status).JSON(response)
}

// RespondWithAppError responds using the status derived from the error code.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	return RespondWithError(c, StatusOf(err), err)
}
