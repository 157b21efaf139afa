package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the wire shape for all error replies.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AppError carries an error code, HTTP status and user-facing message
// alongside the underlying cause.
type AppError struct {
	Code    string
	Status  int
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

// NewNotFoundError indicates the addressed resource does not exist.
func NewNotFoundError(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Status:  fiber.StatusNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

// NewInvalidValueError indicates a field carried a value outside its allowed set.
func NewInvalidValueError(message string) *AppError {
	return &AppError{
		Code:    "INVALID_VALUE",
		Status:  fiber.StatusBadRequest,
		Message: message,
	}
}

// NewInvalidRequestError indicates a malformed or incomplete request.
func NewInvalidRequestError(message string) *AppError {
	return &AppError{
		Code:    "INVALID_REQUEST",
		Status:  fiber.StatusBadRequest,
		Message: message,
	}
}

// NewForbiddenError indicates the caller may not act on this resource.
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Status:  fiber.StatusForbidden,
		Message: message,
	}
}

// NewUnauthorizedError indicates missing or invalid credentials.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Status:  fiber.StatusUnauthorized,
		Message: message,
	}
}

// NewServerError wraps an unexpected internal failure.
func NewServerError(err error) *AppError {
	return &AppError{
		Code:    "SERVER_ERROR",
		Status:  fiber.StatusInternalServerError,
		Message: "internal server error",
		Err:     err,
	}
}

// RespondWithError writes the appropriate status and body for err.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: "internal server error",
		Code:  "SERVER_ERROR",
	})
}
