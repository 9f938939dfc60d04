package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
	"github.com/Veraticus/the-wheel-must-spin/internal/storage"
	"github.com/Veraticus/the-wheel-must-spin/internal/testutil"
)

type fakeCheckpointer struct {
	err        error
	operations []string
}

func (f *fakeCheckpointer) AutoCheckpoint(_ context.Context, operation string) (*storage.CheckpointInfo, error) {
	f.operations = append(f.operations, operation)
	if f.err != nil {
		return nil, f.err
	}
	return &storage.CheckpointInfo{ID: "auto-" + operation}, nil
}

func newTestTracker(t *testing.T) (*Tracker, *testutil.TestDB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tracker, err := New(db.Storage)
	require.NoError(t, err)
	tracker.now = func() time.Time { return time.Date(2026, 2, 1, 21, 0, 0, 0, time.UTC) }
	return tracker, db
}

func TestNewWithConfig_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := NewWithConfig(nil, DefaultConfig())
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Window = -1
	_, err = NewWithConfig(db.Storage, cfg)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Analysis.ClusterArc = 4
	_, err = NewWithConfig(db.Storage, cfg)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.DefaultDealer = "  "
	tracker, err := NewWithConfig(db.Storage, cfg)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultDealerID, tracker.Config().DefaultDealer)
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []int
		wantErr bool
	}{
		{name: "single", line: "17", want: []int{17}},
		{name: "several separators", line: "1, 2;3  36", want: []int{1, 2, 3, 36}},
		{name: "duplicates kept in order", line: "7 7 0", want: []int{7, 7, 0}},
		{name: "empty", line: "   ", wantErr: true},
		{name: "out of range", line: "5 37", wantErr: true},
		{name: "not a number", line: "5 x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntry(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrValidation)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTracker_RecordTagsDealerAndSession(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTestTracker(t)

	first, err := tracker.Record(ctx, 17)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, model.DefaultDealerID, first[0].DealerID)
	assert.NotEmpty(t, first[0].SessionID)
	assert.NotZero(t, first[0].ID)

	require.NoError(t, tracker.SetDealer(ctx, "Anna"))
	batch, err := tracker.RecordEntry(ctx, "32 15")
	require.NoError(t, err)
	require.Len(t, batch, 2)
	for _, o := range batch {
		assert.Equal(t, "Anna", o.DealerID)
		assert.Equal(t, first[0].SessionID, o.SessionID)
	}

	history, err := tracker.History(ctx, analysis.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []int{17, 32, 15}, model.Numbers(history))
}

func TestTracker_RecordEntryIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTestTracker(t)

	_, err := tracker.RecordEntry(ctx, "1 2 99")
	require.Error(t, err)

	history, err := tracker.History(ctx, analysis.Filter{})
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = tracker.Record(ctx)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestTracker_Undo(t *testing.T) {
	ctx := context.Background()
	tracker, db := newTestTracker(t)

	_, err := tracker.Undo(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)

	db.SeedSpins("Default", 4, 21)
	removed, err := tracker.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 21, removed.Number)
}

func TestTracker_Reset(t *testing.T) {
	ctx := context.Background()

	t.Run("checkpoint failure aborts", func(t *testing.T) {
		tracker, db := newTestTracker(t)
		db.SeedSpins("Default", 1, 2, 3)
		cp := &fakeCheckpointer{err: errors.New("disk full")}
		tracker.SetCheckpointer(cp)

		_, _, err := tracker.Reset(ctx)
		require.Error(t, err)
		assert.Equal(t, []string{"reset"}, cp.operations)

		history, err := tracker.History(ctx, analysis.Filter{})
		require.NoError(t, err)
		assert.Len(t, history, 3)
	})

	t.Run("clears and starts a session", func(t *testing.T) {
		tracker, db := newTestTracker(t)
		before, err := db.Storage.EnsureSession(ctx)
		require.NoError(t, err)
		db.SeedSpins("Default", 1, 2, 3)
		tracker.SetCheckpointer(&fakeCheckpointer{})

		cleared, session, err := tracker.Reset(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), cleared)
		assert.NotEqual(t, before.ID, session.ID)

		current, err := db.Storage.CurrentSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, session.ID, current.ID)
	})
}

func TestTracker_Status(t *testing.T) {
	ctx := context.Background()
	tracker, db := newTestTracker(t)

	db.SeedSpins("Old", 5, 5)
	_, err := tracker.Record(ctx, 0, 32)
	require.NoError(t, err)

	status, err := tracker.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultDealerID, status.Dealer)
	assert.Equal(t, 2, status.SessionSpins)
	assert.Equal(t, 4, status.TotalSpins)
}

func TestTracker_AnalyzeUsesWindowAndFilters(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	cfg := DefaultConfig()
	cfg.Window = 3
	tracker, err := NewWithConfig(db.Storage, cfg)
	require.NoError(t, err)

	db.SeedSpins("Anna", 1, 2, 3, 4, 5)
	db.SeedSpins("Ben", 36)

	report, err := tracker.Analyze(ctx, analysis.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, []int{4, 5, 36}, report.Recent)
	assert.Equal(t, 3, report.Filter.Last)

	report, err = tracker.Analyze(ctx, analysis.Filter{DealerID: "Anna", Last: 10})
	require.NoError(t, err)
	assert.Equal(t, 5, report.Total)

	report, err = tracker.Analyze(ctx, analysis.Filter{DealerID: "Nobody"})
	require.NoError(t, err)
	assert.True(t, report.NoData)
}

func TestTracker_AnalyzeIncludesCustomGroups(t *testing.T) {
	ctx := context.Background()
	tracker, db := newTestTracker(t)

	db.SeedGroup("Lucky", 7, 17)
	db.SeedSpins("Default", 7, 17, 7, 1)

	report, err := tracker.Analyze(ctx, analysis.Filter{})
	require.NoError(t, err)

	row, ok := analysis.FindRow(report.Groups, "Lucky")
	require.True(t, ok)
	assert.Equal(t, 3, row.Hits)
	assert.Equal(t, model.CategoryCustom, row.Category)
}

func TestTracker_Neighbours(t *testing.T) {
	ctx := context.Background()
	tracker, db := newTestTracker(t)
	db.SeedSpins("Default", 0, 32, 26, 5)

	row, err := tracker.Neighbours(ctx, 0, 1, analysis.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 26, 32}, row.Numbers)
	assert.Equal(t, 3, row.Hits)

	_, err = tracker.Neighbours(ctx, 0, 19, analysis.Filter{})
	assert.ErrorIs(t, err, common.ErrInvalidRange)
}

func TestTracker_Groups(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTestTracker(t)

	g, err := tracker.AddGroup(ctx, "  My Picks ", "17, 5 5 40 x")
	require.NoError(t, err)
	assert.Equal(t, "My Picks", g.Name)
	assert.Equal(t, []int{5, 17}, g.Numbers)

	_, err = tracker.AddGroup(ctx, "my picks", "1")
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = tracker.AddGroup(ctx, "zero spiel", "1")
	assert.ErrorIs(t, err, common.ErrValidation)

	all, err := tracker.Groups(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My Picks", all[len(all)-1].Name)

	custom, err := tracker.CustomGroups(ctx)
	require.NoError(t, err)
	assert.Len(t, custom, 1)

	assert.ErrorIs(t, tracker.DeleteGroup(ctx, "Red"), common.ErrValidation)
	assert.ErrorIs(t, tracker.DeleteGroup(ctx, "missing"), common.ErrNotFound)
	require.NoError(t, tracker.DeleteGroup(ctx, "MY PICKS"))

	custom, err = tracker.CustomGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, custom)
}

func TestTracker_ImportGroups(t *testing.T) {
	ctx := context.Background()
	tracker, db := newTestTracker(t)
	db.SeedGroup("Existing", 1, 2)

	added, err := tracker.ImportGroups(ctx, []model.Group{
		model.MustGroup("existing", model.CategoryCustom, []int{3}),
		model.MustGroup("Fresh", model.CategoryCustom, []int{4, 5}),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	custom, err := tracker.CustomGroups(ctx)
	require.NoError(t, err)
	require.Len(t, custom, 2)
	assert.Equal(t, "Fresh", custom[1].Name)
}

func TestTracker_Dealers(t *testing.T) {
	ctx := context.Background()
	tracker, db := newTestTracker(t)
	db.SeedSpins("Anna", 1, 2)
	db.SeedSpins("Ben", 3)

	dealers, err := tracker.Dealers(ctx)
	require.NoError(t, err)
	require.Len(t, dealers, 2)

	dealer, err := tracker.Dealer(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultDealerID, dealer)
}
