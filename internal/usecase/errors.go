package usecase

import (
	"errors"
	"sort"
	"strings"

	"cinema-ticketing/internal/data/repository"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	// ErrSeatUnavailable is the repository error re-exported so callers of
	// the services need not import the data layer.
	ErrSeatUnavailable = repository.ErrSeatUnavailable
)

// ValidationError carries per-field messages. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func fieldError(field, msg string) *ValidationError {
	return NewValidationError("Validation failed", map[string]string{field: msg})
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return e.Message + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, repository.ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, repository.ErrSeatUnavailable) ||
		errors.Is(err, repository.ErrDuplicate)
}
