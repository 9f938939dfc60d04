// Package engine orchestrates spin recording and analysis on top of the
// persistent store. Every presentation layer (CLI, live entry, HTTP) goes
// through a Tracker so dealer tagging, sessions and custom groups behave the
// same everywhere.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
	"github.com/Veraticus/the-wheel-must-spin/internal/service"
	"github.com/Veraticus/the-wheel-must-spin/internal/taxonomy"
)

// Config holds configuration options for the tracker.
type Config struct {
	DefaultDealer string
	// Window is the number of latest spins analyzed when a request does not
	// say otherwise. Zero analyzes everything.
	Window   int
	Analysis analysis.Config
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DefaultDealer: model.DefaultDealerID,
		Analysis:      analysis.DefaultConfig(),
	}
}

// Status summarizes the current session.
type Status struct {
	Session      *model.Session `json:"session"`
	Dealer       string         `json:"dealer"`
	SessionSpins int            `json:"session_spins"`
	TotalSpins   int            `json:"total_spins"`
	Duration     time.Duration  `json:"duration"`
}

// Tracker records spins and produces analysis reports.
type Tracker struct {
	storage      service.Storage
	checkpointer Checkpointer
	registry     *taxonomy.Registry
	now          func() time.Time
	cfg          Config
}

// New creates a tracker with the default configuration.
func New(storage service.Storage) (*Tracker, error) {
	return NewWithConfig(storage, DefaultConfig())
}

// NewWithConfig creates a tracker with custom configuration.
func NewWithConfig(storage service.Storage, cfg Config) (*Tracker, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if strings.TrimSpace(cfg.DefaultDealer) == "" {
		cfg.DefaultDealer = model.DefaultDealerID
	}
	if cfg.Window < 0 {
		return nil, fmt.Errorf("%w: analysis window must not be negative", common.ErrInvalidConfig)
	}
	if err := cfg.Analysis.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis configuration: %w", err)
	}
	return &Tracker{
		storage:  storage,
		cfg:      cfg,
		registry: taxonomy.NewRegistry(),
		now:      time.Now,
	}, nil
}

// SetCheckpointer enables automatic snapshots before Reset.
func (t *Tracker) SetCheckpointer(c Checkpointer) {
	t.checkpointer = c
}

// Config returns the tracker configuration.
func (t *Tracker) Config() Config {
	return t.cfg
}

// Dealer returns the dealer new spins are tagged with.
func (t *Tracker) Dealer(ctx context.Context) (string, error) {
	return t.storage.CurrentDealer(ctx, t.cfg.DefaultDealer)
}

// SetDealer changes the dealer for subsequent spins.
func (t *Tracker) SetDealer(ctx context.Context, dealer string) error {
	return t.storage.SetCurrentDealer(ctx, dealer)
}

// Dealers lists every dealer seen in the history with their spin counts.
func (t *Tracker) Dealers(ctx context.Context) ([]service.DealerStat, error) {
	return t.storage.GetDealers(ctx)
}

// ParseEntry splits a line such as "17 32, 0" into validated spins. Nothing is
// returned unless every token is valid.
func ParseEntry(line string) ([]int, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil, &common.ValidationError{Field: "spin", Reason: "must not be empty"}
	}

	numbers := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := model.ParseNumber(f)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// RecordEntry parses line and records every spin in it.
func (t *Tracker) RecordEntry(ctx context.Context, line string) ([]model.Outcome, error) {
	numbers, err := ParseEntry(line)
	if err != nil {
		return nil, err
	}
	return t.Record(ctx, numbers...)
}

// Record appends spins for the current dealer and session, in order.
func (t *Tracker) Record(ctx context.Context, numbers ...int) ([]model.Outcome, error) {
	if len(numbers) == 0 {
		return nil, &common.ValidationError{Field: "spin", Reason: "at least one number is required"}
	}

	dealer, err := t.Dealer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dealer: %w", err)
	}
	session, err := t.storage.EnsureSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	now := t.now().UTC()
	outcomes := make([]model.Outcome, len(numbers))
	for i, n := range numbers {
		outcomes[i] = model.Outcome{
			Number:     n,
			DealerID:   dealer,
			SessionID:  session.ID,
			RecordedAt: now,
		}
		if err := outcomes[i].Validate(); err != nil {
			return nil, err
		}
	}

	if len(outcomes) == 1 {
		if err := t.storage.AppendOutcome(ctx, &outcomes[0]); err != nil {
			return nil, fmt.Errorf("failed to record spin: %w", err)
		}
	} else if err := t.storage.AppendOutcomes(ctx, outcomes); err != nil {
		return nil, fmt.Errorf("failed to record spins: %w", err)
	}

	slog.Debug("recorded spins", "count", len(outcomes), "dealer", dealer)
	return outcomes, nil
}

// Import appends previously recorded outcomes unchanged.
func (t *Tracker) Import(ctx context.Context, outcomes []model.Outcome) error {
	if len(outcomes) == 0 {
		return nil
	}
	if err := t.storage.AppendOutcomes(ctx, outcomes); err != nil {
		return fmt.Errorf("failed to import spins: %w", err)
	}
	return nil
}

// Undo removes the most recent spin.
func (t *Tracker) Undo(ctx context.Context) (*model.Outcome, error) {
	return t.storage.UndoLastOutcome(ctx)
}

// Reset clears the history and starts a fresh session. When a checkpointer
// is set a snapshot is taken first; a failed snapshot aborts the reset.
func (t *Tracker) Reset(ctx context.Context) (int64, *model.Session, error) {
	if t.checkpointer != nil {
		if _, err := t.checkpointer.AutoCheckpoint(ctx, "reset"); err != nil {
			return 0, nil, fmt.Errorf("failed to checkpoint before reset: %w", err)
		}
	}

	cleared, err := t.storage.ClearOutcomes(ctx)
	if err != nil {
		return 0, nil, err
	}
	session, err := t.storage.StartSession(ctx, t.now())
	if err != nil {
		return cleared, nil, err
	}

	slog.Info("reset spin history", "cleared", cleared, "session_id", session.ID)
	return cleared, session, nil
}

// StartSession begins a new session without touching the history.
func (t *Tracker) StartSession(ctx context.Context) (*model.Session, error) {
	return t.storage.StartSession(ctx, t.now())
}

// Status reports the current dealer and session.
func (t *Tracker) Status(ctx context.Context) (*Status, error) {
	dealer, err := t.Dealer(ctx)
	if err != nil {
		return nil, err
	}
	session, err := t.storage.EnsureSession(ctx)
	if err != nil {
		return nil, err
	}
	sessionSpins, err := t.storage.CountOutcomes(ctx, service.OutcomeFilter{SessionID: session.ID})
	if err != nil {
		return nil, err
	}
	total, err := t.storage.CountOutcomes(ctx, service.OutcomeFilter{})
	if err != nil {
		return nil, err
	}

	return &Status{
		Session:      session,
		Dealer:       dealer,
		SessionSpins: sessionSpins,
		TotalSpins:   total,
		Duration:     session.Duration(t.now()),
	}, nil
}

// History returns the outcomes matching filter, oldest first.
func (t *Tracker) History(ctx context.Context, filter analysis.Filter) ([]model.Outcome, error) {
	return t.storage.GetOutcomes(ctx, service.OutcomeFilter{
		DealerID:  filter.DealerID,
		SessionID: filter.SessionID,
		Limit:     filter.Last,
	})
}

// Taxonomy builds a fresh taxonomy holding the stored custom groups.
func (t *Tracker) Taxonomy(ctx context.Context) (*taxonomy.Taxonomy, error) {
	custom, err := t.storage.GetCustomGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load custom groups: %w", err)
	}
	tax, err := taxonomy.New(t.registry, custom...)
	if err != nil {
		return nil, fmt.Errorf("stored custom groups are invalid: %w", err)
	}
	return tax, nil
}

// Engine builds an analysis engine over the current taxonomy.
func (t *Tracker) Engine(ctx context.Context) (*analysis.Engine, error) {
	tax, err := t.Taxonomy(ctx)
	if err != nil {
		return nil, err
	}
	return analysis.NewEngine(tax, t.cfg.Analysis)
}

// Analyze produces a report for the outcomes selected by filter. A zero
// Last uses the configured default window.
func (t *Tracker) Analyze(ctx context.Context, filter analysis.Filter) (*analysis.Report, error) {
	if filter.Last == 0 {
		filter.Last = t.cfg.Window
	}

	engine, err := t.Engine(ctx)
	if err != nil {
		return nil, err
	}
	outcomes, err := t.History(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load spins: %w", err)
	}
	return engine.Analyze(outcomes, filter), nil
}

// Neighbours analyzes a neighbour bet over the outcomes selected by filter.
func (t *Tracker) Neighbours(ctx context.Context, center, k int, filter analysis.Filter) (analysis.GroupRow, error) {
	if filter.Last == 0 {
		filter.Last = t.cfg.Window
	}
	outcomes, err := t.History(ctx, filter)
	if err != nil {
		return analysis.GroupRow{}, fmt.Errorf("failed to load spins: %w", err)
	}
	return analysis.NeighbourBet(center, k, analysis.Select(outcomes, filter), t.cfg.Analysis.Thresholds)
}

// Groups lists every group, built-ins first.
func (t *Tracker) Groups(ctx context.Context) ([]model.Group, error) {
	tax, err := t.Taxonomy(ctx)
	if err != nil {
		return nil, err
	}
	var groups []model.Group
	for g := range tax.AllGroups() {
		groups = append(groups, g)
	}
	return groups, nil
}

// CustomGroups lists the user-defined groups in creation order.
func (t *Tracker) CustomGroups(ctx context.Context) ([]model.Group, error) {
	tax, err := t.Taxonomy(ctx)
	if err != nil {
		return nil, err
	}
	return tax.Custom(), nil
}

// AddGroup validates and stores a custom group.
func (t *Tracker) AddGroup(ctx context.Context, name, numbersText string) (model.Group, error) {
	tax, err := t.Taxonomy(ctx)
	if err != nil {
		return model.Group{}, err
	}
	g, err := tax.NewCustomGroup(name, numbersText)
	if err != nil {
		return model.Group{}, err
	}
	if err := t.storage.SaveCustomGroup(ctx, g); err != nil {
		return model.Group{}, err
	}
	slog.Info("added custom group", "name", g.Name, "size", g.Size())
	return g, nil
}

// ImportGroups stores groups that do not exist yet and reports how many were
// added. Groups whose name is already taken are skipped.
func (t *Tracker) ImportGroups(ctx context.Context, groups []model.Group) (int, error) {
	tax, err := t.Taxonomy(ctx)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, g := range groups {
		if _, exists := tax.Lookup(g.Name); exists {
			slog.Info("skipping existing group", "name", g.Name)
			continue
		}
		if err := tax.AddCustom(g); err != nil {
			return added, err
		}
		if err := t.storage.SaveCustomGroup(ctx, g); err != nil {
			if errors.Is(err, common.ErrDuplicateEntry) {
				continue
			}
			return added, err
		}
		added++
	}
	return added, nil
}

// DeleteGroup removes a custom group. Built-in groups cannot be deleted.
func (t *Tracker) DeleteGroup(ctx context.Context, name string) error {
	if _, builtin := t.registry.Lookup(name); builtin {
		return &common.InvalidGroupError{Name: name, Reason: "built-in groups cannot be deleted"}
	}
	return t.storage.DeleteCustomGroup(ctx, strings.TrimSpace(name))
}
