package analysis

import (
	"fmt"

	"github.com/Veraticus/the-wheel-must-spin/internal/wheel"
)

// Gap finding kinds.
const (
	KindSmallGap   = "small_gap"
	KindLargeGap   = "large_gap"
	KindGapSummary = "gap_summary"
)

// GapDetector measures the wheel distance between consecutive landings.
type GapDetector struct {
	// Small flags steps at or below this distance.
	Small int
	// Large flags steps at or above this distance.
	Large int
}

// Name implements Detector.
func (GapDetector) Name() string { return "gap" }

// Detect implements Detector. The summary carries the distance histogram in
// Numbers, indexed by distance 0..18.
func (d GapDetector) Detect(seq []int) []Finding {
	if len(seq) < 2 {
		return nil
	}

	var findings []Finding
	histogram := make([]int, wheel.Size/2+1)
	total := 0
	for i := 1; i < len(seq); i++ {
		dist := wheel.Distance(seq[i-1], seq[i])
		histogram[dist]++
		total += dist

		switch {
		case dist <= d.Small:
			findings = append(findings, Finding{
				Detector: d.Name(),
				Kind:     KindSmallGap,
				Index:    i,
				Numbers:  []int{seq[i-1], seq[i]},
				Value:    float64(dist),
				Message:  fmt.Sprintf("%d -> %d landed %d pocket(s) apart (spin %d)", seq[i-1], seq[i], dist, i+1),
			})
		case dist >= d.Large:
			findings = append(findings, Finding{
				Detector: d.Name(),
				Kind:     KindLargeGap,
				Index:    i,
				Numbers:  []int{seq[i-1], seq[i]},
				Value:    float64(dist),
				Message:  fmt.Sprintf("%d -> %d landed %d pockets apart, across the wheel (spin %d)", seq[i-1], seq[i], dist, i+1),
			})
		}
	}

	steps := len(seq) - 1
	avg := float64(total) / float64(steps)
	findings = append(findings, summary(d.Name(), KindGapSummary,
		fmt.Sprintf("average landing distance %.2f pockets over %d steps", avg, steps),
		avg, histogram))
	return findings
}
