package analysis

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// Attribute is a property of a pocket that streaks are tracked over.
type Attribute string

const (
	// AttributeColor tracks red against black.
	AttributeColor Attribute = "color"
	// AttributeParity tracks odd against even.
	AttributeParity Attribute = "parity"
	// AttributeDozen tracks which dozen a pocket is in.
	AttributeDozen Attribute = "dozen"
	// AttributeColumn tracks which table column a pocket is in.
	AttributeColumn Attribute = "column"
)

// Streak finding kinds.
const (
	KindFlip               = "flip"
	KindCurrentRun         = "current_run"
	KindLongestAlternation = "longest_alternation"
)

// valueOf returns the attribute value of n. Zero has no value for any
// attribute and breaks every streak.
func (a Attribute) valueOf(n int) (string, bool) {
	if n == 0 {
		return "", false
	}
	switch a {
	case AttributeColor:
		return string(model.ColorOf(n)), true
	case AttributeParity:
		if n%2 == 0 {
			return "even", true
		}
		return "odd", true
	case AttributeDozen:
		return "dozen " + strconv.Itoa((n-1)/12+1), true
	case AttributeColumn:
		return "column " + strconv.Itoa((n-1)%3+1), true
	default:
		return "", false
	}
}

// StreakDetector tracks runs of the same attribute value and reports each
// run as it ends.
type StreakDetector struct {
	Attribute Attribute
}

// Name implements Detector.
func (d StreakDetector) Name() string { return "streak_" + string(d.Attribute) }

// Detect implements Detector.
func (d StreakDetector) Detect(seq []int) []Finding {
	if len(seq) < 2 {
		return nil
	}

	var findings []Finding
	cur, ok := d.Attribute.valueOf(seq[0])
	run := 0
	if ok {
		run = 1
	}

	for i := 1; i < len(seq); i++ {
		next, nextOK := d.Attribute.valueOf(seq[i])
		switch {
		case nextOK && run > 0 && next == cur:
			run++
			continue
		case run > 0 && !nextOK:
			findings = append(findings, Finding{
				Detector: d.Name(),
				Kind:     KindFlip,
				Index:    i,
				Numbers:  []int{seq[i]},
				Value:    float64(run),
				Message:  fmt.Sprintf("%s run of %d broken by 0 (spin %d)", cur, run, i+1),
			})
		case run > 0:
			findings = append(findings, Finding{
				Detector: d.Name(),
				Kind:     KindFlip,
				Index:    i,
				Numbers:  []int{seq[i]},
				Value:    float64(run),
				Message:  fmt.Sprintf("%s run of %d flipped to %s (spin %d)", cur, run, next, i+1),
			})
		}

		cur = next
		run = 0
		if nextOK {
			run = 1
		}
	}

	if run > 0 {
		findings = append(findings, summary(d.Name(), KindCurrentRun,
			fmt.Sprintf("current %s run: %d", cur, run), float64(run), nil))
	} else {
		findings = append(findings, summary(d.Name(), KindCurrentRun,
			"no current run (last spin was 0)", 0, nil))
	}

	if d.Attribute == AttributeColor {
		if best := longestAlternation(seq); best >= 2 {
			findings = append(findings, summary(d.Name(), KindLongestAlternation,
				fmt.Sprintf("longest alternating color streak: %d spins", best), float64(best), nil))
		}
	}
	return findings
}

// longestAlternation is the longest stretch of spins whose colors strictly
// alternate between red and black. Zero resets the stretch.
func longestAlternation(seq []int) int {
	best, run := 0, 0
	prev := model.ColorGreen
	for _, n := range seq {
		c := model.ColorOf(n)
		switch {
		case c == model.ColorGreen:
			run = 0
		case run > 0 && c != prev:
			run++
		default:
			run = 1
		}
		prev = c
		best = max(best, run)
	}
	return best
}
