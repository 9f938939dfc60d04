// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// OutcomeFilter narrows an outcome query. Zero values match everything.
type OutcomeFilter struct {
	DealerID  string
	SessionID string
	// Limit keeps only the most recent N matching outcomes.
	Limit int
}

// DealerStat is a dealer seen in the history with its spin count.
type DealerStat struct {
	DealerID string `json:"dealer_id"`
	Spins    int    `json:"spins"`
}

// OutcomeStore is the ordered, append-only spin history.
type OutcomeStore interface {
	AppendOutcome(ctx context.Context, outcome *model.Outcome) error
	AppendOutcomes(ctx context.Context, outcomes []model.Outcome) error
	GetOutcomes(ctx context.Context, filter OutcomeFilter) ([]model.Outcome, error)
	CountOutcomes(ctx context.Context, filter OutcomeFilter) (int, error)
	UndoLastOutcome(ctx context.Context) (*model.Outcome, error)
	ClearOutcomes(ctx context.Context) (int64, error)
	GetDealers(ctx context.Context) ([]DealerStat, error)
}

// GroupStore persists user-defined number groups.
type GroupStore interface {
	SaveCustomGroup(ctx context.Context, group model.Group) error
	GetCustomGroups(ctx context.Context) ([]model.Group, error)
	DeleteCustomGroup(ctx context.Context, name string) error
}

// SessionStore tracks sessions and small persistent settings.
type SessionStore interface {
	StartSession(ctx context.Context, startedAt time.Time) (*model.Session, error)
	CurrentSession(ctx context.Context) (*model.Session, error)
	EnsureSession(ctx context.Context) (*model.Session, error)
	CurrentDealer(ctx context.Context, fallback string) (string, error)
	SetCurrentDealer(ctx context.Context, dealer string) error
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	OutcomeStore
	GroupStore
	SessionStore

	Migrate(ctx context.Context) error
	Close() error
}
