package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
	"github.com/Veraticus/the-wheel-must-spin/internal/service"
)

// AppendOutcome records a single spin. A zero RecordedAt is set to now and
// the stored ID is written back.
func (s *SQLiteStorage) AppendOutcome(ctx context.Context, outcome *model.Outcome) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if outcome == nil {
		return fmt.Errorf("%w: outcome", ErrNilParameter)
	}
	if err := outcome.Validate(); err != nil {
		return err
	}
	return s.insertOutcome(ctx, s.db, outcome)
}

// AppendOutcomes records a batch of spins atomically, preserving order.
func (s *SQLiteStorage) AppendOutcomes(ctx context.Context, outcomes []model.Outcome) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOutcomes(outcomes); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i := range outcomes {
			if err := s.insertOutcome(ctx, tx, &outcomes[i]); err != nil {
				return fmt.Errorf("outcome at index %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Debug("appended outcomes", "count", len(outcomes))
	return nil
}

func (s *SQLiteStorage) insertOutcome(ctx context.Context, q queryable, outcome *model.Outcome) error {
	if outcome.RecordedAt.IsZero() {
		outcome.RecordedAt = time.Now()
	}
	outcome.RecordedAt = outcome.RecordedAt.UTC()

	result, err := q.ExecContext(ctx, `
		INSERT INTO outcomes (number, dealer_id, session_id, recorded_at)
		VALUES (?, ?, ?, ?)
	`, outcome.Number, outcome.DealerID, outcome.SessionID, outcome.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to insert outcome: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read outcome id: %w", err)
	}
	outcome.ID = id
	return nil
}

// GetOutcomes returns stored spins in recording order. A positive Limit keeps
// only the most recent matching spins.
func (s *SQLiteStorage) GetOutcomes(ctx context.Context, filter service.OutcomeFilter) ([]model.Outcome, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.Limit < 0 {
		return nil, ErrInvalidLimit
	}

	var (
		where []string
		args  []any
	)
	if filter.DealerID != "" {
		where = append(where, "dealer_id = ?")
		args = append(args, filter.DealerID)
	}
	if filter.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, filter.SessionID)
	}

	query := "SELECT id, number, dealer_id, session_id, recorded_at FROM outcomes"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var outcomes []model.Outcome
	for rows.Next() {
		var o model.Outcome
		if err := rows.Scan(&o.ID, &o.Number, &o.DealerID, &o.SessionID, &o.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outcomes: %w", err)
	}

	// Rows were read newest first so LIMIT keeps the tail.
	for i, j := 0, len(outcomes)-1; i < j; i, j = i+1, j-1 {
		outcomes[i], outcomes[j] = outcomes[j], outcomes[i]
	}
	return outcomes, nil
}

// CountOutcomes returns how many spins match filter, ignoring its Limit.
func (s *SQLiteStorage) CountOutcomes(ctx context.Context, filter service.OutcomeFilter) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM outcomes
		WHERE (? = '' OR dealer_id = ?) AND (? = '' OR session_id = ?)
	`, filter.DealerID, filter.DealerID, filter.SessionID, filter.SessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count outcomes: %w", err)
	}
	return count, nil
}

// UndoLastOutcome deletes and returns the most recently recorded spin.
func (s *SQLiteStorage) UndoLastOutcome(ctx context.Context) (*model.Outcome, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var removed model.Outcome
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			SELECT id, number, dealer_id, session_id, recorded_at
			FROM outcomes ORDER BY id DESC LIMIT 1
		`).Scan(&removed.ID, &removed.Number, &removed.DealerID, &removed.SessionID, &removed.RecordedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no spins to undo: %w", common.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to read last outcome: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM outcomes WHERE id = ?", removed.ID); err != nil {
			return fmt.Errorf("failed to delete outcome: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// ClearOutcomes deletes every recorded spin and returns how many were removed.
func (s *SQLiteStorage) ClearOutcomes(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM outcomes")
	if err != nil {
		return 0, fmt.Errorf("failed to clear outcomes: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared outcomes: %w", err)
	}

	slog.Info("cleared outcomes", "count", n)
	return n, nil
}

// GetDealers lists every dealer with recorded spins and their spin counts,
// ordered by dealer name.
func (s *SQLiteStorage) GetDealers(ctx context.Context) ([]service.DealerStat, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT dealer_id, COUNT(*) FROM outcomes
		GROUP BY dealer_id ORDER BY dealer_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dealers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dealers []service.DealerStat
	for rows.Next() {
		var d service.DealerStat
		if err := rows.Scan(&d.DealerID, &d.Spins); err != nil {
			return nil, fmt.Errorf("failed to scan dealer: %w", err)
		}
		dealers = append(dealers, d)
	}
	return dealers, rows.Err()
}
