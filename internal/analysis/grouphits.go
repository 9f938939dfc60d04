package analysis

import (
	"fmt"
	"iter"

	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// Bias classifies a group's observed share against its expected share.
type Bias string

const (
	// BiasHot means the group is hit well above expectation.
	BiasHot Bias = "Hot"
	// BiasCold means the group is hit well below expectation.
	BiasCold Bias = "Cold"
	// BiasAverage means neither threshold was met.
	BiasAverage Bias = "Average"
)

// RowStatus distinguishes a computed row from the two kinds of empty input.
type RowStatus string

const (
	// StatusOK means Hits and Percentage are meaningful.
	StatusOK RowStatus = "ok"
	// StatusNoData means no spins were available at all.
	StatusNoData RowStatus = "no_data"
	// StatusAllZeros means every spin was 0, which trend groups exclude.
	StatusAllZeros RowStatus = "all_zeros"
)

// Labels rendered for trend rows that have no usable spins.
const (
	LabelNoData   = "N/A (no spins recorded)"
	LabelAllZeros = "N/A (all spins were 0)"
)

// GroupRow is the hit statistic of one group over a sequence.
type GroupRow struct {
	Name       string              `json:"name"`
	Category   model.GroupCategory `json:"category"`
	Bias       Bias                `json:"bias,omitempty"`
	Status     RowStatus           `json:"status"`
	Numbers    []int               `json:"numbers"`
	Hits       int                 `json:"hits"`
	Total      int                 `json:"total"`
	Percentage float64             `json:"percentage"`
	Expected   float64             `json:"expected"`
}

// Label renders the row the way every presentation layer shows it.
func (r GroupRow) Label() string {
	switch r.Status {
	case StatusNoData:
		return LabelNoData
	case StatusAllZeros:
		return LabelAllZeros
	default:
		return fmt.Sprintf("%d hit(s) (%.2f%%)", r.Hits, r.Percentage)
	}
}

// ClassifyBias applies the hot/cold heuristics. Hot is checked first.
func ClassifyBias(hits, total int, percentage, expected float64, th Thresholds) Bias {
	switch {
	case percentage >= expected*th.HotMultiplier && hits >= th.MinHitsForHot:
		return BiasHot
	case percentage <= expected*th.ColdMultiplier && total >= th.MinTotalForCold:
		return BiasCold
	default:
		return BiasAverage
	}
}

// CountHits counts the spins of seq that land in g.
func CountHits(g model.Group, seq []int) int {
	hits := 0
	for _, n := range seq {
		if g.Contains(n) {
			hits++
		}
	}
	return hits
}

// GroupHits computes the statistic for g over seq. An empty sequence yields a
// StatusNoData row.
func GroupHits(g model.Group, seq []int, th Thresholds) GroupRow {
	row := GroupRow{
		Name:     g.Name,
		Category: g.Category,
		Numbers:  g.Numbers,
		Total:    len(seq),
		Expected: g.ExpectedPercentage(),
		Status:   StatusOK,
	}
	if len(seq) == 0 {
		row.Status = StatusNoData
		return row
	}

	row.Hits = CountHits(g, seq)
	row.Percentage = float64(row.Hits) / float64(row.Total) * 100
	row.Bias = ClassifyBias(row.Hits, row.Total, row.Percentage, row.Expected, th)
	return row
}

// AnalyzeGroups computes a row for every non-trend group. No rows are emitted
// for an empty sequence.
func AnalyzeGroups(groups iter.Seq[model.Group], seq []int, th Thresholds) []GroupRow {
	if len(seq) == 0 {
		return nil
	}

	var rows []GroupRow
	for g := range groups {
		if g.Category == model.CategoryTrend {
			continue
		}
		rows = append(rows, GroupHits(g, seq, th))
	}
	return rows
}

// AnalyzeTrends computes the red/black/even/odd/low/high rows. Zero belongs to
// none of them, so it is removed from both the hits and the base, and the
// expected share is taken over 36 pockets.
func AnalyzeTrends(groups iter.Seq[model.Group], seq []int, th Thresholds) []GroupRow {
	nonZero := make([]int, 0, len(seq))
	for _, n := range seq {
		if n != 0 {
			nonZero = append(nonZero, n)
		}
	}

	status := StatusOK
	switch {
	case len(seq) == 0:
		status = StatusNoData
	case len(nonZero) == 0:
		status = StatusAllZeros
	}

	var rows []GroupRow
	for g := range groups {
		if g.Category != model.CategoryTrend {
			continue
		}

		row := GroupRow{
			Name:     g.Name,
			Category: g.Category,
			Numbers:  g.Numbers,
			Total:    len(nonZero),
			Expected: float64(g.Size()) / float64(model.PocketCount-1) * 100,
			Status:   status,
		}
		if status == StatusOK {
			row.Hits = CountHits(g, nonZero)
			row.Percentage = float64(row.Hits) / float64(row.Total) * 100
			row.Bias = ClassifyBias(row.Hits, row.Total, row.Percentage, row.Expected, th)
		}
		rows = append(rows, row)
	}
	return rows
}
