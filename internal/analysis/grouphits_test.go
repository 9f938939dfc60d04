package analysis

import (
	"testing"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
	"github.com/Veraticus/the-wheel-must-spin/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleSeq = []int{17, 0, 32, 5, 5, 23, 14, 36, 0, 8, 11, 19, 26, 3, 17, 22, 9, 31, 28, 2, 4, 17}

func newTestTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tax, err := taxonomy.New(taxonomy.NewRegistry())
	require.NoError(t, err)
	return tax
}

func TestFrequency_SumsToLength(t *testing.T) {
	counts := Frequency(sampleSeq)
	assert.Equal(t, len(sampleSeq), counts.Total())
	assert.Equal(t, 3, counts[17])
	assert.Equal(t, 2, counts[0])
	assert.Equal(t, 0, counts[1])
	assert.Len(t, counts.Entries(), 37)
}

func TestTrends_RedBlackZeroPartition(t *testing.T) {
	tax := newTestTaxonomy(t)
	rows := AnalyzeTrends(tax.AllGroups(), sampleSeq, DefaultThresholds())
	require.Len(t, rows, 6)

	red, ok := FindRow(rows, taxonomy.TrendRed)
	require.True(t, ok)
	black, ok := FindRow(rows, taxonomy.TrendBlack)
	require.True(t, ok)

	zeros := Frequency(sampleSeq)[0]
	assert.Equal(t, len(sampleSeq), red.Hits+black.Hits+zeros)
	assert.Equal(t, len(sampleSeq)-zeros, red.Total)
	assert.InDelta(t, 50.0, red.Expected, 1e-9)
}

func TestTrends_SevenIsRed(t *testing.T) {
	tax := newTestTaxonomy(t)
	rows := AnalyzeTrends(tax.AllGroups(), []int{7, 7, 7}, DefaultThresholds())

	red, ok := FindRow(rows, taxonomy.TrendRed)
	require.True(t, ok)
	assert.Equal(t, StatusOK, red.Status)
	assert.Equal(t, 3, red.Hits)
	assert.Equal(t, 3, red.Total)
	assert.InDelta(t, 100.0, red.Percentage, 1e-9)
	assert.Equal(t, "3 hit(s) (100.00%)", red.Label())
}

func TestTrends_EmptyAndAllZeros(t *testing.T) {
	tax := newTestTaxonomy(t)

	tests := []struct {
		name   string
		seq    []int
		status RowStatus
		label  string
	}{
		{name: "no spins", seq: nil, status: StatusNoData, label: LabelNoData},
		{name: "all zeros", seq: []int{0, 0, 0}, status: StatusAllZeros, label: LabelAllZeros},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := AnalyzeTrends(tax.AllGroups(), tt.seq, DefaultThresholds())
			require.Len(t, rows, 6)
			for _, r := range rows {
				assert.Equal(t, tt.status, r.Status, r.Name)
				assert.Equal(t, tt.label, r.Label())
				assert.Zero(t, r.Hits)
				assert.Empty(t, r.Bias)
			}
		})
	}
}

func TestAnalyzeGroups_SkipsTrendsAndEmptyInput(t *testing.T) {
	tax := newTestTaxonomy(t)

	assert.Nil(t, AnalyzeGroups(tax.AllGroups(), nil, DefaultThresholds()))

	rows := AnalyzeGroups(tax.AllGroups(), sampleSeq, DefaultThresholds())
	assert.Len(t, rows, 48)
	for _, r := range rows {
		assert.NotEqual(t, model.CategoryTrend, r.Category)
		assert.Equal(t, len(sampleSeq), r.Total)
		assert.InDelta(t, float64(r.Hits)/float64(r.Total)*100, r.Percentage, 1e-9)
	}
}

func TestDozenColdNeedsMinimumSample(t *testing.T) {
	tax := newTestTaxonomy(t)
	dozen, ok := tax.Lookup("1st Dozen")
	require.True(t, ok)

	twenty := make([]int, 20)
	for i := range twenty {
		twenty[i] = 25
	}

	row := GroupHits(dozen, twenty, DefaultThresholds())
	assert.Equal(t, 0, row.Hits)
	assert.Equal(t, BiasCold, row.Bias)

	row = GroupHits(dozen, twenty[:10], DefaultThresholds())
	assert.Equal(t, BiasAverage, row.Bias)
}

func TestClassifyBias(t *testing.T) {
	th := DefaultThresholds()
	expected := 100.0 / 37 * 12

	tests := []struct {
		name  string
		hits  int
		total int
		want  Bias
	}{
		{name: "hot", hits: 10, total: 20, want: BiasHot},
		{name: "hot share but too few hits", hits: 4, total: 4, want: BiasAverage},
		{name: "cold", hits: 3, total: 30, want: BiasCold},
		{name: "cold share but small sample", hits: 0, total: 19, want: BiasAverage},
		{name: "average", hits: 7, total: 20, want: BiasAverage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct := float64(tt.hits) / float64(tt.total) * 100
			assert.Equal(t, tt.want, ClassifyBias(tt.hits, tt.total, pct, expected, th))
		})
	}
}

func TestHotCold(t *testing.T) {
	result := HotCold(Frequency([]int{1, 1, 1, 2, 2, 3}), 5)

	assert.Equal(t, []NumberCount{{1, 3}, {2, 2}, {3, 1}}, result.Hot)
	assert.Equal(t, []int{0, 4, 5, 6, 7}, Numbers(result.Cold))
	for _, c := range result.Cold {
		assert.Zero(t, c.Count)
	}
}

func TestHotCold_TiesBreakByNumber(t *testing.T) {
	seq := []int{5, 3, 3, 5, 9, 8, 7, 6, 4, 2}
	result := HotCold(Frequency(seq), 5)

	assert.Equal(t, []int{3, 5, 2, 4, 6}, Numbers(result.Hot))
	assert.LessOrEqual(t, len(result.Hot), 5)
	for _, h := range result.Hot {
		assert.Positive(t, h.Count)
	}
	assert.Len(t, result.Cold, 5)
	assert.IsNonDecreasing(t, Numbers(result.Cold))
}

func TestHotCold_Empty(t *testing.T) {
	result := HotCold(Frequency(nil), 5)
	assert.Empty(t, result.Hot)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, Numbers(result.Cold))
}

func TestNeighbourBet(t *testing.T) {
	th := DefaultThresholds()

	row, err := NeighbourBet(0, 2, []int{0, 32, 26, 10}, th)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryNeighbours, row.Category)
	assert.Equal(t, []int{0, 3, 15, 26, 32}, row.Numbers)
	assert.Equal(t, 3, row.Hits)

	row, err = NeighbourBet(17, 18, sampleSeq, th)
	require.NoError(t, err)
	assert.Len(t, row.Numbers, 37)
	assert.Equal(t, len(sampleSeq), row.Hits)
	assert.InDelta(t, 100.0, row.Expected, 1e-9)

	_, err = NeighbourBet(17, 19, sampleSeq, th)
	require.Error(t, err)
	var rangeErr *common.InvalidRangeError
	assert.ErrorAs(t, err, &rangeErr)
	assert.ErrorIs(t, err, common.ErrInvalidRange)
}
