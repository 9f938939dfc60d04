package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// Viper keys.
const (
	KeyDatabasePath     = "database.path"
	KeyDealerDefault    = "dealer.default"
	KeyLogLevel         = "logging.level"
	KeyLogFormat        = "logging.format"
	KeyServerAddr       = "server.addr"
	KeyWindow           = "analysis.window"
	KeyHotColdWindow    = "analysis.hot_cold_window"
	KeyHotLimit         = "analysis.hot_limit"
	KeyRepeatWindow     = "analysis.repeat_window"
	KeyGapSmall         = "analysis.gap_small"
	KeyGapLarge         = "analysis.gap_large"
	KeyClusterArc       = "analysis.cluster_arc"
	KeyClusterDeviation = "analysis.cluster_deviation"
	KeyClusterMinSpins  = "analysis.cluster_min_spins"
	KeyDirectionMinRun  = "analysis.direction_min_run"
	KeySpiralMinLength  = "analysis.spiral_min_length"
	KeyAlertMinHot      = "analysis.alert_min_hot"
)

// DefaultServerAddr is where `spin serve` listens unless configured.
const DefaultServerAddr = "127.0.0.1:8077"

// DefaultDatabasePath returns $HOME/.local/share/spin/spin.db.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "spin.db")
	}
	return filepath.Join(home, ".local", "share", "spin", "spin.db")
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	d := analysis.DefaultConfig()

	v.SetDefault(KeyDatabasePath, DefaultDatabasePath())
	v.SetDefault(KeyDealerDefault, model.DefaultDealerID)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyServerAddr, DefaultServerAddr)
	v.SetDefault(KeyWindow, 0)
	v.SetDefault(KeyHotColdWindow, d.HotColdWindow)
	v.SetDefault(KeyHotLimit, d.HotLimit)
	v.SetDefault(KeyRepeatWindow, d.RepeatWindow)
	v.SetDefault(KeyGapSmall, d.GapSmall)
	v.SetDefault(KeyGapLarge, d.GapLarge)
	v.SetDefault(KeyClusterArc, d.ClusterArc)
	v.SetDefault(KeyClusterDeviation, d.ClusterDeviation)
	v.SetDefault(KeyClusterMinSpins, d.ClusterMinSpins)
	v.SetDefault(KeyDirectionMinRun, d.DirectionMinRun)
	v.SetDefault(KeySpiralMinLength, d.SpiralMinLength)
	v.SetDefault(KeyAlertMinHot, d.AlertMinHot)
}

// LoadAnalysisConfig reads the analysis settings from v. Keys that are not
// set keep their defaults. The result is validated.
func LoadAnalysisConfig(v *viper.Viper) (analysis.Config, error) {
	cfg := analysis.DefaultConfig()

	if v.IsSet(KeyHotColdWindow) {
		cfg.HotColdWindow = v.GetInt(KeyHotColdWindow)
	}
	if v.IsSet(KeyHotLimit) {
		cfg.HotLimit = v.GetInt(KeyHotLimit)
	}
	if v.IsSet(KeyRepeatWindow) {
		cfg.RepeatWindow = v.GetInt(KeyRepeatWindow)
	}
	if v.IsSet(KeyGapSmall) {
		cfg.GapSmall = v.GetInt(KeyGapSmall)
	}
	if v.IsSet(KeyGapLarge) {
		cfg.GapLarge = v.GetInt(KeyGapLarge)
	}
	if v.IsSet(KeyClusterArc) {
		cfg.ClusterArc = v.GetInt(KeyClusterArc)
	}
	if v.IsSet(KeyClusterDeviation) {
		cfg.ClusterDeviation = v.GetFloat64(KeyClusterDeviation)
	}
	if v.IsSet(KeyClusterMinSpins) {
		cfg.ClusterMinSpins = v.GetInt(KeyClusterMinSpins)
	}
	if v.IsSet(KeyDirectionMinRun) {
		cfg.DirectionMinRun = v.GetInt(KeyDirectionMinRun)
	}
	if v.IsSet(KeySpiralMinLength) {
		cfg.SpiralMinLength = v.GetInt(KeySpiralMinLength)
	}
	if v.IsSet(KeyAlertMinHot) {
		cfg.AlertMinHot = v.GetInt(KeyAlertMinHot)
	}

	if err := cfg.Validate(); err != nil {
		return analysis.Config{}, fmt.Errorf("analysis settings: %w", err)
	}
	return cfg, nil
}

// DatabasePath returns the configured database path with ~ and environment
// variables expanded.
func DatabasePath(v *viper.Viper) string {
	path := v.GetString(KeyDatabasePath)
	if path == "" {
		path = DefaultDatabasePath()
	}
	return ExpandPath(path)
}

// Window returns the default number of latest spins to analyze. Zero or a
// negative value means every spin.
func Window(v *viper.Viper) int {
	return max(v.GetInt(KeyWindow), 0)
}

// DefaultDealer returns the dealer used before one is chosen explicitly.
func DefaultDealer(v *viper.Viper) string {
	if d := v.GetString(KeyDealerDefault); d != "" {
		return d
	}
	return model.DefaultDealerID
}
