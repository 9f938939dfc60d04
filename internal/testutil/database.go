// Package testutil provides shared test helpers for the spin packages.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/the-wheel-must-spin/internal/model"
	"github.com/Veraticus/the-wheel-must-spin/internal/storage"
)

// TestDB is a migrated in-memory database.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database. It automatically handles
// migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.SeedSpins("Alice", 7, 7, 0, 32)
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedSpins appends numbers for dealer, one minute apart.
func (db *TestDB) SeedSpins(dealer string, numbers ...int) []model.Outcome {
	db.t.Helper()
	return db.SeedSession(dealer, "", numbers...)
}

// SeedSession appends numbers for dealer within session, one minute apart.
func (db *TestDB) SeedSession(dealer, session string, numbers ...int) []model.Outcome {
	db.t.Helper()
	if len(numbers) == 0 {
		return nil
	}

	base := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)
	batch := make([]model.Outcome, len(numbers))
	for i, n := range numbers {
		batch[i] = model.Outcome{
			Number:     n,
			DealerID:   dealer,
			SessionID:  session,
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	if err := db.Storage.AppendOutcomes(context.Background(), batch); err != nil {
		db.t.Fatalf("failed to seed spins: %v", err)
	}
	return batch
}

// SeedGroup stores a custom group.
func (db *TestDB) SeedGroup(name string, numbers ...int) model.Group {
	db.t.Helper()
	g, err := model.NewGroup(name, model.CategoryCustom, numbers)
	if err != nil {
		db.t.Fatalf("invalid group %q: %v", name, err)
	}
	if err := db.Storage.SaveCustomGroup(context.Background(), g); err != nil {
		db.t.Fatalf("failed to seed group %q: %v", name, err)
	}
	return g
}
