package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
)

// GroupCategory identifies the family a group belongs to.
type GroupCategory string

const (
	// CategoryWheel covers the classic wheel sectors (voisins, tiers, ...).
	CategoryWheel GroupCategory = "wheel"
	// CategoryDozen covers 1-12, 13-24 and 25-36.
	CategoryDozen GroupCategory = "dozen"
	// CategoryColumn covers the three table columns.
	CategoryColumn GroupCategory = "column"
	// CategoryRow covers the twelve horizontal street rows.
	CategoryRow GroupCategory = "row"
	// CategoryDiagonal covers the diagonal table lines.
	CategoryDiagonal GroupCategory = "diagonal"
	// CategoryQuadrant covers the four nine-number table zones.
	CategoryQuadrant GroupCategory = "quadrant"
	// CategoryFinalePlein covers numbers sharing a terminal digit.
	CategoryFinalePlein GroupCategory = "finale_plein"
	// CategoryFinaleCheval covers numbers ending in one of two adjacent digits.
	CategoryFinaleCheval GroupCategory = "finale_cheval"
	// CategoryTrend covers red/black/even/odd/low/high.
	CategoryTrend GroupCategory = "trend"
	// CategoryWheelThird covers contiguous thirds of the physical wheel.
	CategoryWheelThird GroupCategory = "wheel_third"
	// CategoryCustom covers user-defined groups.
	CategoryCustom GroupCategory = "custom"
	// CategoryNeighbours covers arcs derived for a neighbour bet.
	CategoryNeighbours GroupCategory = "neighbours"
)

// Title returns a human readable label for the category.
func (c GroupCategory) Title() string {
	switch c {
	case CategoryWheel:
		return "Wheel Sectors"
	case CategoryDozen:
		return "Dozens"
	case CategoryColumn:
		return "Columns"
	case CategoryRow:
		return "Rows (Horizontal)"
	case CategoryDiagonal:
		return "Diagonals"
	case CategoryQuadrant:
		return "Quadrants (Table Zones)"
	case CategoryFinalePlein:
		return "Finales en Plein"
	case CategoryFinaleCheval:
		return "Finales à Cheval"
	case CategoryTrend:
		return "Basic Trends"
	case CategoryWheelThird:
		return "Wheel Thirds"
	case CategoryCustom:
		return "Custom Groups"
	case CategoryNeighbours:
		return "Neighbour Bets"
	default:
		return string(c)
	}
}

// Group is a named set of pockets used for aggregate hit statistics.
type Group struct {
	Name     string
	Category GroupCategory
	Numbers  []int
}

// NewGroup builds a group, normalizing its numbers to a sorted unique set.
func NewGroup(name string, category GroupCategory, numbers []int) (Group, error) {
	g := Group{
		Name:     name,
		Category: category,
		Numbers:  NormalizeNumbers(numbers),
	}
	if err := g.Validate(); err != nil {
		return Group{}, err
	}
	return g, nil
}

// MustGroup is NewGroup for literal tables that are known to be valid.
func MustGroup(name string, category GroupCategory, numbers []int) Group {
	g, err := NewGroup(name, category, numbers)
	if err != nil {
		panic(err)
	}
	return g
}

// NormalizeNumbers returns a sorted copy of numbers without duplicates.
func NormalizeNumbers(numbers []int) []int {
	out := slices.Clone(numbers)
	slices.Sort(out)
	return slices.Compact(out)
}

// Validate checks the group invariants.
func (g Group) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return &common.InvalidGroupError{Reason: "name must not be empty"}
	}
	if len(g.Numbers) == 0 {
		return &common.InvalidGroupError{Name: g.Name, Reason: "must contain at least one number"}
	}
	for i, n := range g.Numbers {
		if !ValidNumber(n) {
			return &common.InvalidGroupError{Name: g.Name, Reason: fmt.Sprintf("number %d is outside 0-36", n)}
		}
		if i > 0 && g.Numbers[i-1] >= n {
			return &common.InvalidGroupError{Name: g.Name, Reason: "numbers must be sorted and unique"}
		}
	}
	return nil
}

// Contains reports whether n is a member of the group.
func (g Group) Contains(n int) bool {
	_, found := slices.BinarySearch(g.Numbers, n)
	return found
}

// Size is the number of pockets in the group.
func (g Group) Size() int {
	return len(g.Numbers)
}

// ExpectedPercentage is the share of spins the group should receive on a fair
// wheel.
func (g Group) ExpectedPercentage() float64 {
	return float64(len(g.Numbers)) / PocketCount * 100
}

// NumbersString renders the members as a comma separated list.
func (g Group) NumbersString() string {
	parts := make([]string, len(g.Numbers))
	for i, n := range g.Numbers {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ",")
}
