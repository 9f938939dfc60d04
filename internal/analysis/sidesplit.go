package analysis

import (
	"fmt"

	"github.com/Veraticus/the-wheel-must-spin/internal/wheel"
)

// KindSideSplit is the summary kind of SideSplitDetector.
const KindSideSplit = "side_split"

// Side is the half of the wheel a pocket sits on, seen from zero.
type Side int

const (
	// SideZero is the zero pocket itself.
	SideZero Side = iota
	// SideRight holds the 18 pockets clockwise of zero.
	SideRight
	// SideLeft holds the 18 pockets counter-clockwise of zero.
	SideLeft
)

// SideOf places n by wheel position: 1..18 are right of zero, 19..36 left.
func SideOf(n int) Side {
	switch pos := wheel.Position(n); {
	case pos == 0:
		return SideZero
	case pos <= wheel.Size/2:
		return SideRight
	default:
		return SideLeft
	}
}

// SideSplitDetector counts landings on each half of the wheel.
type SideSplitDetector struct{}

// Name implements Detector.
func (SideSplitDetector) Name() string { return "side_split" }

// Detect implements Detector. Numbers holds [right, left, zero] and Value is
// right minus left.
func (d SideSplitDetector) Detect(seq []int) []Finding {
	if len(seq) < 2 {
		return nil
	}

	var right, left, zero int
	for _, n := range seq {
		switch SideOf(n) {
		case SideRight:
			right++
		case SideLeft:
			left++
		default:
			zero++
		}
	}

	total := float64(len(seq))
	return []Finding{summary(d.Name(), KindSideSplit,
		fmt.Sprintf("right %d (%.1f%%), left %d (%.1f%%), zero %d",
			right, float64(right)/total*100, left, float64(left)/total*100, zero),
		float64(right-left), []int{right, left, zero})}
}
