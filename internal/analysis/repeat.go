package analysis

import "fmt"

// Repeat finding kinds.
const (
	KindImmediateRepeat = "immediate_repeat"
	KindRecentRepeat    = "recent_repeat"
	KindLongestRun      = "longest_run"
)

// RepeatDetector flags numbers that land again straight away or within a
// short trailing window.
type RepeatDetector struct {
	Window int
}

// Name implements Detector.
func (RepeatDetector) Name() string { return "repeat" }

// Detect implements Detector.
func (d RepeatDetector) Detect(seq []int) []Finding {
	if len(seq) < 2 {
		return nil
	}

	var findings []Finding
	run, best, bestNum := 1, 1, seq[0]
	for i := 1; i < len(seq); i++ {
		n := seq[i]
		if n == seq[i-1] {
			run++
			findings = append(findings, Finding{
				Detector: d.Name(),
				Kind:     KindImmediateRepeat,
				Index:    i,
				Numbers:  []int{n},
				Value:    1,
				Message:  fmt.Sprintf("%d repeated immediately (spin %d)", n, i+1),
			})
		} else {
			run = 1
			if back := d.lookBack(seq, i); back > 0 {
				findings = append(findings, Finding{
					Detector: d.Name(),
					Kind:     KindRecentRepeat,
					Index:    i,
					Numbers:  []int{n},
					Value:    float64(back),
					Message:  fmt.Sprintf("%d repeated after %d spins (spin %d)", n, back, i+1),
				})
			}
		}
		if run > best {
			best, bestNum = run, n
		}
	}

	if best >= 2 {
		findings = append(findings, summary(d.Name(), KindLongestRun,
			fmt.Sprintf("longest same-number run: %d x%d", bestNum, best),
			float64(best), []int{bestNum}))
	}
	return findings
}

// lookBack returns how many spins ago seq[i] last appeared within the window,
// ignoring the immediately preceding spin, or 0.
func (d RepeatDetector) lookBack(seq []int, i int) int {
	for back := 2; back <= d.Window && i-back >= 0; back++ {
		if seq[i-back] == seq[i] {
			return back
		}
	}
	return 0
}
