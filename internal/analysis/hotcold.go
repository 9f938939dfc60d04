package analysis

import (
	"cmp"
	"slices"
)

// HotColdResult holds the most and least frequent pockets.
type HotColdResult struct {
	Hot  []NumberCount `json:"hot"`
	Cold []NumberCount `json:"cold"`
}

// HotCold ranks pockets by frequency. Hot numbers are the top limit entries by
// count descending then number ascending, restricted to pockets that were hit.
// Cold numbers are an independent ranking by count ascending then number
// ascending and always include unhit pockets, so the list is always full.
func HotCold(counts Counts, limit int) HotColdResult {
	entries := counts.Entries()

	hot := slices.Clone(entries)
	slices.SortStableFunc(hot, func(a, b NumberCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})
	hotList := make([]NumberCount, 0, limit)
	for _, e := range hot {
		if len(hotList) == limit || e.Count == 0 {
			break
		}
		hotList = append(hotList, e)
	}

	cold := slices.Clone(entries)
	slices.SortStableFunc(cold, func(a, b NumberCount) int {
		if c := cmp.Compare(a.Count, b.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})

	return HotColdResult{
		Hot:  hotList,
		Cold: cold[:min(limit, len(cold))],
	}
}

// Numbers returns just the pocket numbers of a ranking.
func Numbers(entries []NumberCount) []int {
	nums := make([]int, len(entries))
	for i, e := range entries {
		nums[i] = e.Number
	}
	return nums
}
