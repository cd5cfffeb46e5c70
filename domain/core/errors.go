package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrColumnNotFound  = fmt.Errorf("%w: column", ErrNotFound)

	// Caller contract violations. Dirty uploaded data never produces these;
	// they indicate a malformed request from the calling layer.
	ErrInvalidFilterState = errors.New("invalid filter state")
	ErrInvalidGranularity = errors.New("invalid time granularity")
	ErrEmptyDatasetName   = errors.New("dataset name cannot be empty")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewFilterStateError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidFilterState, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsContractViolation(err error) bool {
	return errors.Is(err, ErrInvalidFilterState) ||
		errors.Is(err, ErrInvalidGranularity) ||
		errors.Is(err, ErrEmptyDatasetName)
}
