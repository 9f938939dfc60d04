// Package storage provides the data persistence layer for the spin application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrEmptySlice     = errors.New("slice cannot be empty")
	ErrInvalidLimit   = errors.New("limit cannot be negative")
	ErrInvalidSetting = errors.New("invalid setting key")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateOutcomes validates a batch of outcomes before insertion.
func validateOutcomes(outcomes []model.Outcome) error {
	if outcomes == nil {
		return fmt.Errorf("%w: outcomes", ErrNilParameter)
	}
	if len(outcomes) == 0 {
		return fmt.Errorf("%w: outcomes", ErrEmptySlice)
	}
	for i := range outcomes {
		if err := outcomes[i].Validate(); err != nil {
			return fmt.Errorf("outcome at index %d: %w", i, err)
		}
	}
	return nil
}

// validateSettingKey restricts keys to the dotted lowercase form used by the
// CLI, such as "dealer.current".
func validateSettingKey(key string) error {
	if err := validateString(key, "key"); err != nil {
		return err
	}
	for _, r := range key {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '.' && r != '_' {
			return fmt.Errorf("%w: %q", ErrInvalidSetting, key)
		}
	}
	return nil
}
