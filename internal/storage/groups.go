package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// SaveCustomGroup stores a user-defined group. Names are unique without
// regard to case.
func (s *SQLiteStorage) SaveCustomGroup(ctx context.Context, group model.Group) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if group.Category != model.CategoryCustom {
		return &common.InvalidGroupError{Name: group.Name, Reason: "only custom groups can be stored"}
	}
	if err := group.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO custom_groups (name, numbers) VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING
	`, group.Name, encodeNumbers(group.Numbers))
	if err != nil {
		return fmt.Errorf("failed to save custom group: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("custom group %q: %w", group.Name, common.ErrDuplicateEntry)
	}
	return nil
}

// GetCustomGroups returns stored groups in creation order.
func (s *SQLiteStorage) GetCustomGroups(ctx context.Context) ([]model.Group, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name, numbers FROM custom_groups ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom groups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var groups []model.Group
	for rows.Next() {
		var name, encoded string
		if err := rows.Scan(&name, &encoded); err != nil {
			return nil, fmt.Errorf("failed to scan custom group: %w", err)
		}
		numbers, err := decodeNumbers(encoded)
		if err != nil {
			return nil, fmt.Errorf("custom group %q: %w: %w", name, common.ErrDatabaseCorrupted, err)
		}
		g, err := model.NewGroup(name, model.CategoryCustom, numbers)
		if err != nil {
			return nil, fmt.Errorf("custom group %q: %w: %w", name, common.ErrDatabaseCorrupted, err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate custom groups: %w", err)
	}
	return groups, nil
}

// DeleteCustomGroup removes a stored group by name, ignoring case.
func (s *SQLiteStorage) DeleteCustomGroup(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM custom_groups WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to delete custom group: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("custom group %q: %w", name, common.ErrNotFound)
	}
	return nil
}

func encodeNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func decodeNumbers(encoded string) ([]int, error) {
	if encoded == "" {
		return nil, nil
	}
	parts := strings.Split(encoded, ",")
	numbers := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", p, err)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}
