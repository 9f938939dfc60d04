package analysis

import (
	"fmt"

	"github.com/Veraticus/the-wheel-must-spin/internal/wheel"
)

// Cluster finding kinds.
const (
	KindHotArc         = "hot_arc"
	KindColdArc        = "cold_arc"
	KindClusterCaution = "caution"
)

// LowSampleSpins is the sample size below which arc deviations are reported
// with a caution, whether or not any arc was flagged.
const LowSampleSpins = 20

// ClusterDetector looks for contiguous wheel arcs that are hit much more or
// much less often than their share of the wheel.
type ClusterDetector struct {
	// ArcWidth is the number of pockets per arc. Must be odd and >= 3.
	ArcWidth int
	// Deviation is the relative deviation (observed-expected)/expected that
	// makes an arc notable.
	Deviation float64
	// MinSpins is the minimum sample before arcs are evaluated.
	MinSpins int
}

// Name implements Detector.
func (ClusterDetector) Name() string { return "cluster" }

// Detect implements Detector. Every pocket is tried as the center of an arc.
// Below MinSpins arcs are not evaluated and only a caution is returned.
func (d ClusterDetector) Detect(seq []int) []Finding {
	if len(seq) < 2 || d.ArcWidth < 3 || d.ArcWidth%2 == 0 || d.ArcWidth > wheel.Size {
		return nil
	}
	if len(seq) < d.MinSpins {
		return []Finding{summary(d.Name(), KindClusterCaution,
			fmt.Sprintf("insufficient data for arc analysis: %d spins (minimum %d)", len(seq), d.MinSpins),
			float64(len(seq)), nil)}
	}

	counts := Frequency(seq)
	half := d.ArcWidth / 2
	expected := float64(d.ArcWidth) * float64(len(seq)) / float64(wheel.Size)

	var findings []Finding
	for _, center := range wheel.Order {
		arc := wheel.Arc(center, half)
		observed := counts.Sum(arc)
		dev := (float64(observed) - expected) / expected

		var kind string
		switch {
		case dev > d.Deviation:
			kind = KindHotArc
		case dev < -d.Deviation:
			kind = KindColdArc
		default:
			continue
		}
		findings = append(findings, Finding{
			Detector: d.Name(),
			Kind:     kind,
			Index:    -1,
			Numbers:  arc,
			Value:    dev,
			Message: fmt.Sprintf("arc around %d: %d hits vs %.2f expected (%+.0f%%)",
				center, observed, expected, dev*100),
		})
	}

	if len(seq) < LowSampleSpins {
		findings = append(findings, summary(d.Name(), KindClusterCaution,
			fmt.Sprintf("only %d spins; arc deviations are unreliable below %d", len(seq), LowSampleSpins),
			float64(len(seq)), nil))
	}
	return findings
}
