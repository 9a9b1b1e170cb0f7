package league

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation")
	// ErrCapacity means a configured league limit has been reached.
	ErrCapacity = errors.New("capacity")
	// ErrMatchCapacity is the match log limit; it matches ErrCapacity.
	ErrMatchCapacity = fmt.Errorf("match %w", ErrCapacity)
	// ErrPlayerCapacity is the registry limit; it matches ErrCapacity.
	ErrPlayerCapacity = fmt.Errorf("player %w", ErrCapacity)
	// ErrNotFound is returned by lookups of unknown players.
	ErrNotFound = errors.New("not_found")
)

// ValidationError names the first rule a candidate match broke.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
