package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

const (
	ErrValidation ErrorCode = iota + 1000
	ErrConflict
	ErrNotFound
	ErrInvalidTransition
	ErrUnauthorized
	ErrForbidden
	ErrPersistence
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
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

// StatusCode maps the error code to an HTTP status. The error middleware
// uses it when rendering a failure.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrValidation, ErrInvalidTransition:
		return http.StatusBadRequest
	case ErrConflict:
		return http.StatusConflict
	case ErrNotFound:
		return http.StatusNotFound
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func NewValidation(message string) *AppError {
	return &AppError{Code: ErrValidation, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Code: ErrConflict, Message: message}
}

func NewNotFound(resource string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewInvalidTransition(from, to string) *AppError {
	return &AppError{
		Code:    ErrInvalidTransition,
		Message: fmt.Sprintf("cannot change booking status from %s to %s", from, to),
	}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Code: ErrUnauthorized, Message: message}
}

func NewForbidden(message string) *AppError {
	return &AppError{Code: ErrForbidden, Message: message}
}

func NewPersistence(err error) *AppError {
	return &AppError{
		Code:    ErrPersistence,
		Message: "storage operation failed",
		Err:     err,
	}
}

// Code checks

func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsValidation(err error) bool        { return Is(err, ErrValidation) }
func IsConflict(err error) bool          { return Is(err, ErrConflict) }
func IsNotFound(err error) bool          { return Is(err, ErrNotFound) }
func IsInvalidTransition(err error) bool { return Is(err, ErrInvalidTransition) }
func IsPersistence(err error) bool       { return Is(err, ErrPersistence) }
