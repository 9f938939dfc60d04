package analysis

import (
	"fmt"

	"github.com/Veraticus/the-wheel-must-spin/internal/wheel"
)

// Direction finding kinds.
const (
	KindDirectionSummary = "direction_summary"
	KindDirectionRun     = "direction_run"
)

// Direction is the shorter way round the wheel from one landing to the next.
type Direction int

const (
	// DirectionNone is a repeat of the same pocket.
	DirectionNone Direction = iota
	// DirectionClockwise moves forward in wheel order.
	DirectionClockwise
	// DirectionCounterClockwise moves backward in wheel order.
	DirectionCounterClockwise
)

func (d Direction) String() string {
	switch d {
	case DirectionClockwise:
		return "clockwise"
	case DirectionCounterClockwise:
		return "counter-clockwise"
	default:
		return "none"
	}
}

// StepDirection classifies the move from a to b by the shorter arc. Equal
// pockets have no direction.
func StepDirection(a, b int) Direction {
	switch s := wheel.SignedStep(a, b); {
	case s > 0:
		return DirectionClockwise
	case s < 0:
		return DirectionCounterClockwise
	default:
		return DirectionNone
	}
}

// DirectionDetector reports the running bias between clockwise and
// counter-clockwise steps.
type DirectionDetector struct {
	MinRun int
}

// Name implements Detector.
func (DirectionDetector) Name() string { return "direction" }

// Detect implements Detector. The summary Value is clockwise minus
// counter-clockwise steps; Numbers holds [clockwise, counter, none].
func (d DirectionDetector) Detect(seq []int) []Finding {
	if len(seq) < 2 {
		return nil
	}

	var cw, ccw, none int
	trail, trailLen := DirectionNone, 0
	for i := 1; i < len(seq); i++ {
		dir := StepDirection(seq[i-1], seq[i])
		switch dir {
		case DirectionClockwise:
			cw++
		case DirectionCounterClockwise:
			ccw++
		default:
			none++
		}
		if dir == trail {
			trailLen++
		} else {
			trail, trailLen = dir, 1
		}
	}

	bias := "balanced"
	switch {
	case cw > ccw:
		bias = "clockwise bias"
	case ccw > cw:
		bias = "counter-clockwise bias"
	}

	findings := []Finding{summary(d.Name(), KindDirectionSummary,
		fmt.Sprintf("%d clockwise, %d counter-clockwise, %d none: %s", cw, ccw, none, bias),
		float64(cw-ccw), []int{cw, ccw, none})}

	if trail != DirectionNone && trailLen >= d.MinRun {
		findings = append(findings, Finding{
			Detector: d.Name(),
			Kind:     KindDirectionRun,
			Index:    len(seq) - 1,
			Value:    float64(trailLen),
			Message:  fmt.Sprintf("last %d steps all %s", trailLen, trail),
		})
	}
	return findings
}
