// Package model defines the core domain models used throughout the application.
package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
)

const (
	// MinNumber is the lowest pocket on a European wheel.
	MinNumber = 0
	// MaxNumber is the highest pocket on a European wheel.
	MaxNumber = 36
	// PocketCount is the number of pockets on a European wheel.
	PocketCount = 37

	// DefaultDealerID tags spins recorded before any dealer was set.
	DefaultDealerID = "Default"
)

// Outcome is one recorded spin result. Outcomes are immutable once stored and
// their insertion order is significant.
type Outcome struct {
	RecordedAt time.Time `json:"recorded_at"`
	DealerID   string    `json:"dealer_id"`
	SessionID  string    `json:"session_id,omitempty"`
	ID         int64     `json:"id"`
	Number     int       `json:"number"`
}

// ValidNumber reports whether n is a pocket on the wheel.
func ValidNumber(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}

// ParseNumber parses a single spin entry.
func ParseNumber(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, &common.ValidationError{Field: "spin", Reason: "must not be empty"}
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &common.ValidationError{Field: "spin", Value: trimmed, Reason: "not an integer"}
	}
	if !ValidNumber(n) {
		return 0, &common.ValidationError{Field: "spin", Value: trimmed, Reason: "must be between 0 and 36"}
	}
	return n, nil
}

// Validate checks that an outcome can be stored.
func (o Outcome) Validate() error {
	if !ValidNumber(o.Number) {
		return &common.ValidationError{Field: "spin", Value: strconv.Itoa(o.Number), Reason: "must be between 0 and 36"}
	}
	if strings.TrimSpace(o.DealerID) == "" {
		return &common.ValidationError{Field: "dealer", Reason: "must not be empty"}
	}
	return nil
}

// Numbers extracts the spin values from outcomes, preserving order.
func Numbers(outcomes []Outcome) []int {
	nums := make([]int, len(outcomes))
	for i, o := range outcomes {
		nums[i] = o.Number
	}
	return nums
}
