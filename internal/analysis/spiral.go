package analysis

import (
	"fmt"

	"github.com/Veraticus/the-wheel-must-spin/internal/wheel"
)

// KindSpiral marks a run of landings a constant wheel step apart.
const KindSpiral = "spiral"

// SpiralDetector finds maximal runs of spins whose consecutive wheel-position
// steps are equal and non-zero.
type SpiralDetector struct {
	MinLength int
}

// Name implements Detector.
func (SpiralDetector) Name() string { return "spiral" }

// Detect implements Detector. Index is the first spin of the run and Value
// the signed step.
func (d SpiralDetector) Detect(seq []int) []Finding {
	if len(seq) < 2 {
		return nil
	}
	minLen := max(d.MinLength, 3)

	var findings []Finding
	emit := func(start, end, step int) {
		if end-start+1 < minLen || step == 0 {
			return
		}
		run := append([]int(nil), seq[start:end+1]...)
		findings = append(findings, Finding{
			Detector: d.Name(),
			Kind:     KindSpiral,
			Index:    start,
			Numbers:  run,
			Value:    float64(step),
			Message:  fmt.Sprintf("%d spins stepping %+d pockets (spins %d-%d): %v", len(run), step, start+1, end+1, run),
		})
	}

	start := 0
	step := wheel.SignedStep(seq[0], seq[1])
	for i := 2; i < len(seq); i++ {
		s := wheel.SignedStep(seq[i-1], seq[i])
		if s == step {
			continue
		}
		emit(start, i-1, step)
		start, step = i-1, s
	}
	emit(start, len(seq)-1, step)
	return findings
}
