package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a point series rejected by validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when an activity or its streams do not exist
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned when the activity provider cannot be reached
	ErrUnavailable = errors.New("provider unavailable")
	// ErrUnauthorized is returned when the provider rejects the access token
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError describes the first offending point of a rejected series
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: point %d: %s %s", e.Index, e.Field, e.Reason)
}

// Is reports ErrInvalidInput so callers can match with errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
