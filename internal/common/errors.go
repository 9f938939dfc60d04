// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	// Input errors.
	ErrValidation   = errors.New("validation failed")
	ErrInvalidRange = errors.New("invalid range")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports malformed user input such as a spin that is not an
// integer in [0,36].
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// InvalidGroupError reports a custom group definition that cannot be created.
type InvalidGroupError struct {
	Name   string
	Reason string
}

func (e *InvalidGroupError) Error() string {
	if e.Name == "" {
		return "invalid group: " + e.Reason
	}
	return fmt.Sprintf("invalid group %q: %s", e.Name, e.Reason)
}

func (e *InvalidGroupError) Unwrap() error {
	return ErrValidation
}

// InvalidRangeError reports a neighbour-bet request whose arc would not fit on
// the wheel.
type InvalidRangeError struct {
	Center int
	Count  int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("neighbour count %d around %d covers %d pockets, wheel has 37",
		e.Count, e.Center, 2*e.Count+1)
}

func (e *InvalidRangeError) Unwrap() error {
	return ErrInvalidRange
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsUserInputError reports whether err was caused by input the user can
// correct, as opposed to an internal failure.
func IsUserInputError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidRange)
}
