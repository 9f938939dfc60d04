package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/common"
)

func TestLoadAnalysisConfig_Defaults(t *testing.T) {
	v := viper.New()
	cfg, err := LoadAnalysisConfig(v)
	require.NoError(t, err)
	assert.Equal(t, analysis.DefaultConfig(), cfg)

	SetDefaults(v)
	cfg, err = LoadAnalysisConfig(v)
	require.NoError(t, err)
	assert.Equal(t, analysis.DefaultConfig(), cfg)
}

func TestLoadAnalysisConfig_Overrides(t *testing.T) {
	v := viper.New()
	v.Set(KeyHotLimit, 8)
	v.Set(KeyClusterArc, 7)
	v.Set(KeyClusterDeviation, 0.5)
	v.Set(KeyHotColdWindow, 50)

	cfg, err := LoadAnalysisConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.HotLimit)
	assert.Equal(t, 7, cfg.ClusterArc)
	assert.InDelta(t, 0.5, cfg.ClusterDeviation, 1e-9)
	assert.Equal(t, 50, cfg.HotColdWindow)
	assert.Equal(t, analysis.DefaultConfig().RepeatWindow, cfg.RepeatWindow)
}

func TestLoadAnalysisConfig_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  cluster_arc: 4\n"), 0600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	_, err := LoadAnalysisConfig(v)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestDatabasePath(t *testing.T) {
	t.Setenv("SPIN_TEST_DIR", "/tmp/spin-test")

	v := viper.New()
	v.Set(KeyDatabasePath, "$SPIN_TEST_DIR/spin.db")
	assert.Equal(t, "/tmp/spin-test/spin.db", DatabasePath(v))

	v = viper.New()
	assert.Equal(t, DefaultDatabasePath(), DatabasePath(v))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Empty(t, ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "x.db"), ExpandPath("~/x.db"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
}

func TestWindowAndDealer(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	assert.Equal(t, 0, Window(v))
	assert.Equal(t, "Default", DefaultDealer(v))

	v.Set(KeyWindow, -4)
	assert.Equal(t, 0, Window(v))

	v.Set(KeyWindow, 50)
	v.Set(KeyDealerDefault, "Anna")
	assert.Equal(t, 50, Window(v))
	assert.Equal(t, "Anna", DefaultDealer(v))
}
