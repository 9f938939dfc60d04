package analysis

import "github.com/Veraticus/the-wheel-must-spin/internal/model"

// Filter selects the slice of history an analysis runs over. Zero values
// disable each stage.
type Filter struct {
	DealerID  string `json:"dealer_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	// Last keeps only the most recent N spins after the other filters.
	Last int `json:"last,omitempty"`
}

// Select applies f to outcomes, which must be in recording order, and
// returns a fresh slice of spin values.
func Select(outcomes []model.Outcome, f Filter) []int {
	seq := make([]int, 0, len(outcomes))
	for _, o := range outcomes {
		if f.DealerID != "" && o.DealerID != f.DealerID {
			continue
		}
		if f.SessionID != "" && o.SessionID != f.SessionID {
			continue
		}
		seq = append(seq, o.Number)
	}
	return Last(seq, f.Last)
}

// Last returns the final n values of seq, or all of them when n <= 0 or n
// exceeds the length. The result never aliases seq.
func Last(seq []int, n int) []int {
	if n > 0 && n < len(seq) {
		seq = seq[len(seq)-n:]
	}
	out := make([]int, len(seq))
	copy(out, seq)
	return out
}
