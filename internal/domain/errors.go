package domain

import (
	"errors"
	"fmt"
)

// Common domain errors surfaced during configuration loading.
// Configuration problems are fatal at load time; evaluation of individual
// records never raises, it reports sentinel result values instead.
var (
	// ErrBlankReference indicates a ground-truth record with a missing or
	// blank text field. References must never be empty.
	ErrBlankReference = errors.New("blank reference text")

	// ErrDuplicateReference indicates two ground-truth records sharing an id.
	ErrDuplicateReference = errors.New("duplicate reference id")

	// ErrEmptyName indicates an attempt to create a component with an
	// empty name.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNumberOutOfRange indicates a number-to-words conversion outside
	// the converter's supported range.
	ErrNumberOutOfRange = errors.New("number out of convertible range")

	// ErrInvalidConfiguration indicates that configuration is invalid or
	// incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ValidationError represents an error that occurred during validation.
// It can contain multiple validation failures.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}
