// Package errors provides application-level error types and utilities.
// It defines the error taxonomy shared by the ticket and moderation cores:
// validation, not found, limit exceeded, permission denied, invalid duration,
// and internal errors.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation_error"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeLimitExceeded    ErrorType = "limit_exceeded"
	ErrorTypePermissionDenied ErrorType = "permission_denied"
	ErrorTypeInvalidDuration  ErrorType = "invalid_duration"
	ErrorTypeInternal         ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newError(typ ErrorType, message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    typ,
		Message: message,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newError(ErrorTypeValidation, message, details...)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newError(ErrorTypeNotFound, message, details...)
}

// NewLimitExceededError creates a new limit exceeded error
func NewLimitExceededError(message string, details ...string) *AppError {
	return newError(ErrorTypeLimitExceeded, message, details...)
}

// NewPermissionDeniedError creates a new permission denied error
func NewPermissionDeniedError(message string, details ...string) *AppError {
	return newError(ErrorTypePermissionDenied, message, details...)
}

// NewInvalidDurationError creates a new invalid duration error
func NewInvalidDurationError(message string, details ...string) *AppError {
	return newError(ErrorTypeInvalidDuration, message, details...)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newError(ErrorTypeInternal, message, details...)
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, typ ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == typ
	}
	return false
}

func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

func IsLimitExceeded(err error) bool {
	return IsType(err, ErrorTypeLimitExceeded)
}

func IsPermissionDenied(err error) bool {
	return IsType(err, ErrorTypePermissionDenied)
}

func IsInvalidDuration(err error) bool {
	return IsType(err, ErrorTypeInvalidDuration)
}

func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}
