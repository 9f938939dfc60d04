package analysis

import (
	"fmt"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
)

// Bias thresholds. These are fixed heuristics, not significance tests.
const (
	// HotThresholdMultiplier marks a group hot at 1.5x its expected share.
	HotThresholdMultiplier = 1.5
	// ColdThresholdMultiplier marks a group cold at half its expected share.
	ColdThresholdMultiplier = 0.5
	// MinHitsForHot is the minimum number of hits before a group can be hot.
	MinHitsForHot = 5
	// MinTotalSpinsForCold is the minimum sample before a group can be cold.
	MinTotalSpinsForCold = 20
)

// Thresholds controls bias classification.
type Thresholds struct {
	HotMultiplier   float64
	ColdMultiplier  float64
	MinHitsForHot   int
	MinTotalForCold int
}

// DefaultThresholds returns the standard bias heuristics.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HotMultiplier:   HotThresholdMultiplier,
		ColdMultiplier:  ColdThresholdMultiplier,
		MinHitsForHot:   MinHitsForHot,
		MinTotalForCold: MinTotalSpinsForCold,
	}
}

// Config tunes the analyzers run by the Engine.
type Config struct {
	Thresholds Thresholds

	// HotLimit is the length of the hot and cold number lists.
	HotLimit int
	// HotColdWindow restricts hot/cold ranking to the last N spins of the
	// already filtered sequence. Zero uses the whole sequence.
	HotColdWindow int

	RepeatWindow     int
	GapSmall         int
	GapLarge         int
	ClusterArc       int
	ClusterDeviation float64
	ClusterMinSpins  int
	DirectionMinRun  int
	SpiralMinLength  int

	// AlertMinHot is how many current hot numbers a group must contain before
	// it is flagged in the alerts list.
	AlertMinHot int
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Thresholds:       DefaultThresholds(),
		HotLimit:         5,
		RepeatWindow:     5,
		GapSmall:         2,
		GapLarge:         16,
		ClusterArc:       5,
		ClusterDeviation: 0.30,
		ClusterMinSpins:  5,
		DirectionMinRun:  3,
		SpiralMinLength:  3,
		AlertMinHot:      3,
	}
}

// Validate rejects settings the detectors cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Thresholds.HotMultiplier <= 0 || c.Thresholds.ColdMultiplier <= 0:
		return fmt.Errorf("%w: bias multipliers must be positive", common.ErrInvalidConfig)
	case c.HotLimit < 1:
		return fmt.Errorf("%w: hot limit must be at least 1", common.ErrInvalidConfig)
	case c.HotColdWindow < 0:
		return fmt.Errorf("%w: hot/cold window must not be negative", common.ErrInvalidConfig)
	case c.RepeatWindow < 1:
		return fmt.Errorf("%w: repeat window must be at least 1", common.ErrInvalidConfig)
	case c.GapSmall < 0 || c.GapLarge > 18 || c.GapSmall >= c.GapLarge:
		return fmt.Errorf("%w: gap thresholds must satisfy 0 <= small < large <= 18", common.ErrInvalidConfig)
	case c.ClusterArc < 3 || c.ClusterArc%2 == 0 || c.ClusterArc > 37:
		return fmt.Errorf("%w: cluster arc must be an odd number between 3 and 37, got %d", common.ErrInvalidConfig, c.ClusterArc)
	case c.ClusterDeviation <= 0:
		return fmt.Errorf("%w: cluster deviation must be positive", common.ErrInvalidConfig)
	case c.DirectionMinRun < 2:
		return fmt.Errorf("%w: direction run must be at least 2", common.ErrInvalidConfig)
	case c.SpiralMinLength < 3:
		return fmt.Errorf("%w: spiral length must be at least 3", common.ErrInvalidConfig)
	case c.AlertMinHot < 1:
		return fmt.Errorf("%w: alert threshold must be at least 1", common.ErrInvalidConfig)
	}
	return nil
}
