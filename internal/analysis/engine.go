// Package analysis computes statistics and pattern findings over an ordered
// sequence of roulette spins.
//
// Every analyzer is a pure function of the filtered sequence. The Engine runs
// them side by side and collects the results into a Report; no analyzer
// depends on the output of another.
package analysis

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Veraticus/the-wheel-must-spin/internal/model"
	"github.com/Veraticus/the-wheel-must-spin/internal/taxonomy"
)

// NoDataMessage is reported when the filtered sequence is empty.
const NoDataMessage = "no spins recorded for the selected filter"

// Alert flags a group that contains several of the current hot numbers.
type Alert struct {
	Group      string              `json:"group"`
	Category   model.GroupCategory `json:"category"`
	HotNumbers []int               `json:"hot_numbers"`
}

// Report is the complete analysis of one filtered sequence.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Filter      Filter           `json:"filter"`
	Notice      string           `json:"notice,omitempty"`
	Frequency   []NumberCount    `json:"frequency"`
	Groups      []GroupRow       `json:"groups"`
	Trends      []GroupRow       `json:"trends"`
	Detectors   []DetectorResult `json:"detectors"`
	Alerts      []Alert          `json:"alerts"`
	Recent      []int            `json:"recent"`
	HotCold     HotColdResult    `json:"hot_cold"`
	DigitSums   [10]int          `json:"digit_sums"`
	Total       int              `json:"total"`
	NoData      bool             `json:"no_data"`
}

// RecentLimit is how many of the latest spins a Report echoes back.
const RecentLimit = 10

// Engine runs every analyzer over a filtered spin sequence.
type Engine struct {
	taxonomy  *taxonomy.Taxonomy
	detectors []Detector
	cfg       Config
}

// NewEngine creates an engine over the given taxonomy.
func NewEngine(tax *taxonomy.Taxonomy, cfg Config) (*Engine, error) {
	if tax == nil {
		return nil, fmt.Errorf("taxonomy is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis configuration: %w", err)
	}
	return &Engine{
		taxonomy:  tax,
		cfg:       cfg,
		detectors: DefaultDetectors(cfg),
	}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Taxonomy returns the groups the engine analyzes.
func (e *Engine) Taxonomy() *taxonomy.Taxonomy {
	return e.taxonomy
}

// Analyze filters outcomes and runs every analyzer over the result. An empty
// selection is not an error: the report carries NoData and empty sections.
func (e *Engine) Analyze(outcomes []model.Outcome, filter Filter) *Report {
	return e.AnalyzeSequence(Select(outcomes, filter), filter)
}

// AnalyzeSequence analyzes an already filtered sequence. filter is recorded
// in the report only.
func (e *Engine) AnalyzeSequence(seq []int, filter Filter) *Report {
	counts := Frequency(seq)
	report := &Report{
		GeneratedAt: time.Now(),
		Filter:      filter,
		Total:       len(seq),
		Frequency:   counts.Entries(),
		Recent:      Last(seq, RecentLimit),
		Trends:      AnalyzeTrends(e.taxonomy.AllGroups(), seq, e.cfg.Thresholds),
	}
	if len(seq) == 0 {
		report.NoData = true
		report.Notice = NoDataMessage
		return report
	}

	hotColdCounts := counts
	if e.cfg.HotColdWindow > 0 {
		hotColdCounts = Frequency(Last(seq, e.cfg.HotColdWindow))
	}

	report.Groups = AnalyzeGroups(e.taxonomy.AllGroups(), seq, e.cfg.Thresholds)
	report.HotCold = HotCold(hotColdCounts, e.cfg.HotLimit)
	report.Detectors = RunDetectors(e.detectors, seq)
	report.Alerts = e.alerts(Numbers(report.HotCold.Hot))
	report.DigitSums = DigitSums(seq)

	slog.Debug("analysis complete",
		"spins", len(seq),
		"groups", len(report.Groups),
		"alerts", len(report.Alerts))
	return report
}

// NeighbourBet analyzes a neighbour bet with the engine's thresholds.
func (e *Engine) NeighbourBet(center, k int, seq []int) (GroupRow, error) {
	return NeighbourBet(center, k, seq, e.cfg.Thresholds)
}

// alerts lists the non-trend groups holding at least AlertMinHot of hot.
func (e *Engine) alerts(hot []int) []Alert {
	if len(hot) < e.cfg.AlertMinHot {
		return nil
	}

	var alerts []Alert
	for g := range e.taxonomy.AllGroups() {
		if g.Category == model.CategoryTrend {
			continue
		}
		var inGroup []int
		for _, n := range hot {
			if g.Contains(n) {
				inGroup = append(inGroup, n)
			}
		}
		if len(inGroup) >= e.cfg.AlertMinHot {
			slices.Sort(inGroup)
			alerts = append(alerts, Alert{Group: g.Name, Category: g.Category, HotNumbers: inGroup})
		}
	}
	return alerts
}

// DigitSums counts spins by the single-digit reduction of their number.
func DigitSums(seq []int) [10]int {
	var sums [10]int
	for _, n := range seq {
		if d := model.DigitSum(n); d >= 0 {
			sums[d]++
		}
	}
	return sums
}

// FindRow returns the row with the given name.
func FindRow(rows []GroupRow, name string) (GroupRow, bool) {
	for _, r := range rows {
		if r.Name == name {
			return r, true
		}
	}
	return GroupRow{}, false
}
