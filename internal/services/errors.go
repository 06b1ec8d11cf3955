package services

import (
	"errors"
	"fmt"

	apperrors "github.com/eremean89/poetry/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Poet / work errors
	ErrPoetNotFound = errors.New("poet not found")
	ErrWorkNotFound = errors.New("work not found")

	// Quiz errors
	ErrQuizNotFound  = errors.New("quiz not found for this poet")
	ErrQuizEmpty     = errors.New("quiz has no questions")
	ErrQuizSaveEmpty = errors.New("question set is empty or malformed")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)

// Use shared validation errors from the errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// PersistenceError wraps a store failure during a read or save. The
// underlying sequence is not retried; the error surfaces to the caller.
type PersistenceError struct {
	Op  string `json:"op"`
	Err error  `json:"-"`
}

func (pe *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", pe.Op, pe.Err)
}

func (pe *PersistenceError) Unwrap() error {
	return pe.Err
}

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPoetNotFound) ||
		errors.Is(err, ErrWorkNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuizEmpty) ||
		errors.Is(err, ErrUserNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrQuizSaveEmpty) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsPersistence checks if error represents a store failure
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
