package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// Setting keys understood by the storage layer.
const (
	SettingCurrentDealer = "dealer.current"
)

// StartSession opens a new session beginning at startedAt. The newest
// session is the current one.
func (s *SQLiteStorage) StartSession(ctx context.Context, startedAt time.Time) (*model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	session := &model.Session{
		ID:        uuid.NewString(),
		StartedAt: startedAt.UTC(),
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		session.ID, session.StartedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	slog.Info("started session", "session_id", session.ID)
	return session, nil
}

// CurrentSession returns the most recently started session.
func (s *SQLiteStorage) CurrentSession(ctx context.Context) (*model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var session model.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at FROM sessions
		ORDER BY rowid DESC LIMIT 1
	`).Scan(&session.ID, &session.StartedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no session started: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}
	return &session, nil
}

// EnsureSession returns the current session, starting one when none exists.
func (s *SQLiteStorage) EnsureSession(ctx context.Context) (*model.Session, error) {
	session, err := s.CurrentSession(ctx)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	return s.StartSession(ctx, time.Now())
}

// GetSetting returns a stored setting value.
func (s *SQLiteStorage) GetSetting(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateSettingKey(key); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %q: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return value, nil
}

// SetSetting stores or replaces a setting value.
func (s *SQLiteStorage) SetSetting(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSettingKey(key); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value); err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// CurrentDealer returns the dealer new spins are tagged with, or fallback
// when none has been set.
func (s *SQLiteStorage) CurrentDealer(ctx context.Context, fallback string) (string, error) {
	dealer, err := s.GetSetting(ctx, SettingCurrentDealer)
	if errors.Is(err, common.ErrNotFound) {
		if fallback == "" {
			fallback = model.DefaultDealerID
		}
		return fallback, nil
	}
	return dealer, err
}

// SetCurrentDealer changes the dealer new spins are tagged with.
func (s *SQLiteStorage) SetCurrentDealer(ctx context.Context, dealer string) error {
	if err := validateString(dealer, "dealer"); err != nil {
		return &common.ValidationError{Field: "dealer", Reason: "must not be empty"}
	}
	return s.SetSetting(ctx, SettingCurrentDealer, strings.TrimSpace(dealer))
}
