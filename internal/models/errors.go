package models

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// ValidationErrors carries every rule an input violated. It is always complete:
// all checks run before it is returned, and nothing is written when it is non-empty.
type ValidationErrors struct {
	Violations []string
}

func (e *ValidationErrors) Error() string {
	return strings.Join(e.Violations, "; ")
}

// NewValidationErrors builds a ValidationErrors from the given violations.
func NewValidationErrors(violations ...string) *ValidationErrors {
	return &ValidationErrors{Violations: violations}
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

// NewNotFoundError reports a missing or malformed identifier. Malformed ids get
// the same error as non-existent ones.
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewPermissionDeniedError reports an ownership failure. The message never
// distinguishes "not found" from "not yours".
func NewPermissionDeniedError() *AppError {
	return &AppError{
		Code:    "PERMISSION_DENIED",
		Message: "You do not have permission to perform that action",
	}
}

// NewAuthError is the single generic login failure. Unknown username and wrong
// password produce the identical value.
func NewAuthError() *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: "Invalid username/password",
	}
}

// NewBadRequestError reports a caller usage error such as a blank search term.
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
	}
}

// NewInternalError wraps a store failure. It is surfaced once, without retry.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Please try again later",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	switch e := err.(type) {
	case *ValidationErrors:
		response = ErrorResponse{
			Error:  e.Error(),
			Code:   "VALIDATION_ERROR",
			Errors: e.Violations,
		}
	case *AppError:
		response = ErrorResponse{
			Error: e.Message,
			Code:  e.Code,
		}
	default:
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
