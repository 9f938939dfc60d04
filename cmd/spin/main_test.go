package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/storage"
)

// testEnv runs the CLI against a database in a temporary directory.
type testEnv struct {
	t      *testing.T
	dir    string
	config string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("database:\n  path: %s\nlogging:\n  level: error\n", filepath.Join(dir, "spin.db"))
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0600))

	t.Cleanup(viper.Reset)
	return &testEnv{t: t, dir: dir, config: cfg}
}

func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	viper.Reset()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", e.config}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	require.NoError(e.t, err, out)
	return out
}

func (e *testEnv) report(args ...string) analysis.Report {
	e.t.Helper()
	out := e.mustRun(append([]string{"analyze", "--json"}, args...)...)
	var report analysis.Report
	require.NoError(e.t, json.Unmarshal([]byte(out), &report), out)
	return report
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, "spin dev\n", env.mustRun("version"))
}

func TestAddAndHistory(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("add", "17", "32,0")
	assert.Contains(t, out, "Recorded 3 spin(s)")

	out = env.mustRun("history")
	assert.Contains(t, out, "Last 3 spin(s)")
	assert.Contains(t, out, "NUMBER")
	assert.Contains(t, out, "green")

	report := env.report()
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, []int{17, 32, 0}, report.Recent)
}

func TestAddRejectsInvalidEntry(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "add", "5", "37")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))

	assert.Equal(t, 0, env.report().Total, "nothing is recorded from a rejected entry")
}

func TestAddInteractive(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("5\nu\n\n7 8\nbanana\nq\n", "add", "-i")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 5")
	assert.Contains(t, out, "not an integer")
	assert.Contains(t, out, "2 spin(s) recorded")

	assert.Equal(t, []int{7, 8}, env.report().Recent)
}

func TestUndo(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "undo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	env.mustRun("add", "1", "2")
	assert.Contains(t, env.mustRun("undo"), "Removed spin 2")
	assert.Equal(t, []int{1}, env.report().Recent)
}

func TestAnalyze(t *testing.T) {
	env := newTestEnv(t)

	t.Run("no data", func(t *testing.T) {
		report := env.report()
		assert.True(t, report.NoData)
		assert.Equal(t, analysis.NoDataMessage, report.Notice)

		out := env.mustRun("analyze")
		assert.Contains(t, out, "Spin analysis: 0 spin(s)")
	})

	env.mustRun("add", "1", "2", "3", "4", "5", "6")

	t.Run("text report", func(t *testing.T) {
		out := env.mustRun("analyze", "--category", "dozen")
		assert.Contains(t, out, "Spin analysis: 6 spin(s)")
		assert.Contains(t, out, "1st Dozen")
		assert.NotContains(t, out, "Columns")
	})

	t.Run("last n", func(t *testing.T) {
		report := env.report("-n", "2")
		assert.Equal(t, 2, report.Total)
		assert.Equal(t, []int{5, 6}, report.Recent)
	})

	t.Run("negative last", func(t *testing.T) {
		_, err := env.run("", "analyze", "-n", "-1")
		require.Error(t, err)
	})
}

func TestNeighbours(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "0", "32", "15", "19")

	out := env.mustRun("neighbours", "0", "--k", "1")
	assert.Contains(t, out, "0 +/- 1 neighbours")
	assert.Contains(t, out, "2 hit(s)")

	_, err := env.run("", "neighbours", "40")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestDealerAndFilters(t *testing.T) {
	env := newTestEnv(t)

	assert.Contains(t, env.mustRun("dealer"), "Current dealer: Default")
	env.mustRun("add", "1")

	assert.Contains(t, env.mustRun("dealer", "set", "Anna"), "Dealer set to Anna")
	env.mustRun("add", "2", "3")
	assert.Contains(t, env.mustRun("dealer"), "Current dealer: Anna")

	out := env.mustRun("dealer", "list")
	assert.Contains(t, out, "Anna")
	assert.Contains(t, out, "Default")

	assert.Equal(t, []int{2, 3}, env.report("--dealer", "Anna").Recent)
	assert.Equal(t, []int{1}, env.report("--dealer", "Default").Recent)
}

func TestSession(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "1", "2")

	out := env.mustRun("session")
	assert.Contains(t, out, "2 this session, 2 total")

	assert.Contains(t, env.mustRun("session", "start"), "Started session")
	env.mustRun("add", "3")

	assert.Contains(t, env.mustRun("session"), "1 this session, 3 total")
	assert.Equal(t, []int{3}, env.report("--session", "current").Recent)
}

func TestReset(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "1", "2")

	out, err := env.run("n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset cancelled.")
	assert.Equal(t, 2, env.report().Total)

	out, err = env.run("y\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 2 spin(s)")
	assert.Equal(t, 0, env.report().Total)

	out = env.mustRun("checkpoint", "list")
	assert.Contains(t, out, "auto-reset")
}

func TestGroups(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("groups", "--category", "dozen")
	assert.Contains(t, out, "1st Dozen")
	assert.NotContains(t, out, "Red")

	assert.Contains(t, env.mustRun("groups", "add", "Lucky", "7", "17,27"), `Added group "Lucky": 7,17,27`)

	_, err := env.run("", "groups", "add", "lucky", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))

	_, err = env.run("", "groups", "delete", "Red")
	require.Error(t, err)

	file := filepath.Join(env.dir, "groups.yaml")
	assert.Contains(t, env.mustRun("groups", "export", file), "Exported 1 group(s)")
	assert.Contains(t, env.mustRun("groups", "delete", "Lucky"), `Deleted group "Lucky"`)
	assert.Contains(t, env.mustRun("groups", "--custom"), "No groups found.")

	assert.Contains(t, env.mustRun("groups", "import", file), "Imported 1 of 1 group(s)")
	assert.Contains(t, env.mustRun("groups", "import", file), "Imported 0 of 1 group(s)")
	assert.Contains(t, env.mustRun("groups", "--custom"), "Lucky")

	env.mustRun("add", "7", "17", "1")
	assert.Contains(t, env.mustRun("analyze", "--category", "custom"), "Lucky")
}

func TestExportImport(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("dealer", "set", "Anna")
	env.mustRun("add", "10", "20", "30")

	file := filepath.Join(env.dir, "spins.csv")
	assert.Contains(t, env.mustRun("export", "-o", file), "Exported 3 spin(s)")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Timestamp,DealerID,Number", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",Anna,10"))

	env.mustRun("reset", "--yes")
	assert.Contains(t, env.mustRun("import", "-q", file), "Imported 3 spin(s)")

	report := env.report("--dealer", "Anna")
	assert.Equal(t, []int{10, 20, 30}, report.Recent)

	bad := filepath.Join(env.dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("2026-01-01T00:00:00Z,Anna,99\n"), 0600))
	_, err = env.run("", "import", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestCheckpoint(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "4", "5")

	assert.Contains(t, env.mustRun("checkpoint", "list"), "No checkpoints found.")
	assert.Contains(t, env.mustRun("checkpoint", "create", "--tag", "friday"), "Created checkpoint friday")
	assert.Contains(t, env.mustRun("checkpoint", "list"), "friday")

	out, err := env.run("no\n", "checkpoint", "delete", "friday")
	require.NoError(t, err)
	assert.Contains(t, out, "Deletion cancelled.")

	assert.Contains(t, env.mustRun("checkpoint", "delete", "friday", "--force"), "Deleted checkpoint")

	_, err = env.run("", "checkpoint", "delete", "friday", "--force")
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrCheckpointNotFound))
}

func TestMigrateStatus(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("migrate")

	out := env.mustRun("migrate", "--status")
	assert.Contains(t, out, fmt.Sprintf("version %d of %d", storage.ExpectedSchemaVersion, storage.ExpectedSchemaVersion))
}

func TestInvalidAnalysisConfig(t *testing.T) {
	env := newTestEnv(t)
	content := fmt.Sprintf("database:\n  path: %s\nanalysis:\n  hot_limit: -3\n", filepath.Join(env.dir, "spin.db"))
	require.NoError(t, os.WriteFile(env.config, []byte(content), 0600))

	_, err := env.run("", "analyze")
	require.Error(t, err)
	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "invalid analysis settings in config", userErr.UserMessage)
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{3 * time.Hour, "3 hours ago"},
		{30 * time.Hour, "yesterday"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRelativeTime(now.Add(-tt.ago), now))
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", formatFileSize(512))
	assert.Equal(t, "1.5 KB", formatFileSize(1536))
	assert.Equal(t, "2.0 MB", formatFileSize(2*1024*1024))
}
