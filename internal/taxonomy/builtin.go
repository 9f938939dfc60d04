package taxonomy

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-wheel-must-spin/internal/model"
	"github.com/Veraticus/the-wheel-must-spin/internal/wheel"
)

// buildBuiltins assembles the fixed catalogue in display order.
func buildBuiltins() []model.Group {
	groups := make([]model.Group, 0, 54)

	groups = append(groups,
		model.MustGroup("Voisins (Neighbours of Zero)", model.CategoryWheel,
			[]int{22, 18, 29, 7, 28, 19, 4, 21, 2, 25}),
		model.MustGroup("Tiers du Cylindre", model.CategoryWheel,
			[]int{27, 13, 36, 11, 30, 8, 23, 10, 5, 24, 16, 33}),
		model.MustGroup("Orphelins", model.CategoryWheel,
			[]int{17, 34, 6, 1, 20, 14, 31, 9}),
		model.MustGroup("Zero Spiel", model.CategoryWheel,
			[]int{12, 35, 3, 26, 0, 32, 15}),
	)

	dozenNames := []string{"1st Dozen", "2nd Dozen", "3rd Dozen"}
	for i, name := range dozenNames {
		groups = append(groups, model.MustGroup(name, model.CategoryDozen, span(i*12+1, 12)))
	}

	for col := 1; col <= 3; col++ {
		nums := make([]int, 0, 12)
		for n := col; n <= model.MaxNumber; n += 3 {
			nums = append(nums, n)
		}
		groups = append(groups, model.MustGroup(fmt.Sprintf("Column %d", col), model.CategoryColumn, nums))
	}

	for i := 0; i < 12; i++ {
		start := i*3 + 1
		groups = append(groups, model.MustGroup(
			fmt.Sprintf("Row %d-%d-%d", start, start+1, start+2),
			model.CategoryRow,
			[]int{start, start + 1, start + 2},
		))
	}

	for _, diag := range [][]int{{1, 5, 9}, {3, 5, 7}, {2, 6, 10}} {
		groups = append(groups, model.MustGroup(
			fmt.Sprintf("Diagonal %d-%d-%d", diag[0], diag[1], diag[2]),
			model.CategoryDiagonal,
			diag,
		))
	}

	for q := 0; q < 4; q++ {
		start := q*9 + 1
		groups = append(groups, model.MustGroup(
			fmt.Sprintf("Quadrant %d (%d-%d)", q+1, start, start+8),
			model.CategoryQuadrant,
			span(start, 9),
		))
	}

	for d := 0; d <= 9; d++ {
		groups = append(groups, model.MustGroup(
			fmt.Sprintf("Finale %d", d),
			model.CategoryFinalePlein,
			finale(d),
		))
	}

	for d := 0; d <= 5; d++ {
		groups = append(groups, model.MustGroup(
			fmt.Sprintf("Finale %d/%d", d, d+1),
			model.CategoryFinaleCheval,
			append(finale(d), finale(d+1)...),
		))
	}

	evens := make([]int, 0, 18)
	odds := make([]int, 0, 18)
	for n := 1; n <= model.MaxNumber; n++ {
		if n%2 == 0 {
			evens = append(evens, n)
		} else {
			odds = append(odds, n)
		}
	}
	blacks := make([]int, 0, 18)
	for n := 1; n <= model.MaxNumber; n++ {
		if model.ColorOf(n) == model.ColorBlack {
			blacks = append(blacks, n)
		}
	}
	groups = append(groups,
		model.MustGroup(TrendRed, model.CategoryTrend, model.RedNumbers),
		model.MustGroup(TrendBlack, model.CategoryTrend, blacks),
		model.MustGroup(TrendEven, model.CategoryTrend, evens),
		model.MustGroup(TrendOdd, model.CategoryTrend, odds),
		model.MustGroup(TrendLow, model.CategoryTrend, span(1, 18)),
		model.MustGroup(TrendHigh, model.CategoryTrend, span(19, 18)),
	)

	for i, third := range wheel.Thirds() {
		groups = append(groups, model.MustGroup(
			fmt.Sprintf("Wheel Third %d (%s...%s)", i+1, joinInts(third[:3]), joinInts(third[len(third)-3:])),
			model.CategoryWheelThird,
			third,
		))
	}

	return groups
}

// Trend group names.
const (
	TrendRed   = "Red"
	TrendBlack = "Black"
	TrendEven  = "Even"
	TrendOdd   = "Odd"
	TrendLow   = "Low (1-18)"
	TrendHigh  = "High (19-36)"
)

func span(start, count int) []int {
	nums := make([]int, count)
	for i := range nums {
		nums[i] = start + i
	}
	return nums
}

func finale(digit int) []int {
	var nums []int
	for n := digit; n <= model.MaxNumber; n += 10 {
		nums = append(nums, n)
	}
	return nums
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ",")
}
