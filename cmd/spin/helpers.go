package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/cli"
	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/config"
	"github.com/Veraticus/the-wheel-must-spin/internal/engine"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
	"github.com/Veraticus/the-wheel-must-spin/internal/storage"
)

// initStorage opens the configured database and migrates it.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetViper())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initTracker opens storage and builds a tracker from the configuration.
// The caller closes the returned storage.
func initTracker(ctx context.Context) (*engine.Tracker, *storage.SQLiteStorage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	tracker, err := newTracker(store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return tracker, store, nil
}

func newTracker(store *storage.SQLiteStorage) (*engine.Tracker, error) {
	v := viper.GetViper()
	analysisCfg, err := config.LoadAnalysisConfig(v)
	if err != nil {
		return nil, common.NewUserError("invalid analysis settings in config", err)
	}

	tracker, err := engine.NewWithConfig(store, engine.Config{
		DefaultDealer: config.DefaultDealer(v),
		Window:        config.Window(v),
		Analysis:      analysisCfg,
	})
	if err != nil {
		return nil, err
	}

	manager, err := store.NewCheckpointManager()
	switch {
	case err == nil:
		tracker.SetCheckpointer(manager)
	case errors.Is(err, storage.ErrCheckpointUnsupported):
		slog.Debug("checkpoints disabled", "database", store.Path())
	default:
		return nil, fmt.Errorf("failed to create checkpoint manager: %w", err)
	}
	return tracker, nil
}

// filterFlags are the flags shared by every command that selects spins.
type filterFlags struct {
	dealer  string
	session string
	last    int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dealer, "dealer", "", "only spins from this dealer")
	cmd.Flags().StringVar(&f.session, "session", "", "only spins from this session ID (\"current\" for the current one)")
	cmd.Flags().IntVarP(&f.last, "last", "n", 0, "only the latest N spins (0 uses analysis.window)")
}

func (f *filterFlags) filter(ctx context.Context, store *storage.SQLiteStorage) (analysis.Filter, error) {
	if f.last < 0 {
		return analysis.Filter{}, fmt.Errorf("--last must not be negative")
	}

	session := strings.TrimSpace(f.session)
	if session == "current" {
		current, err := store.EnsureSession(ctx)
		if err != nil {
			return analysis.Filter{}, err
		}
		session = current.ID
	}

	return analysis.Filter{
		DealerID:  strings.TrimSpace(f.dealer),
		SessionID: session,
		Last:      f.last,
	}, nil
}

func writeLine(w io.Writer, s string) {
	if _, err := fmt.Fprintln(w, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

func formatOutcomes(outcomes []model.Outcome) string {
	parts := make([]string, len(outcomes))
	for i, o := range outcomes {
		parts[i] = cli.FormatNumber(o.Number)
	}
	return strings.Join(parts, " ")
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
