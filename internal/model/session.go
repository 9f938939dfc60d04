package model

import (
	"fmt"
	"time"
)

// Session groups the spins recorded at one sitting.
type Session struct {
	StartedAt time.Time `json:"started_at"`
	ID        string    `json:"id"`
}

// Duration returns how long the session has been running at now.
func (s Session) Duration(now time.Time) time.Duration {
	if s.StartedAt.IsZero() || now.Before(s.StartedAt) {
		return 0
	}
	return now.Sub(s.StartedAt)
}

// FormatDuration renders d as HH:MM:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
