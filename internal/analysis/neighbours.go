package analysis

import (
	"fmt"

	"github.com/Veraticus/the-wheel-must-spin/internal/model"
	"github.com/Veraticus/the-wheel-must-spin/internal/wheel"
)

// NeighbourGroup builds the ad-hoc group covering center and k pockets on
// each side of it on the wheel.
func NeighbourGroup(center, k int) (model.Group, error) {
	arc, err := wheel.Neighbours(center, k)
	if err != nil {
		return model.Group{}, err
	}
	return model.NewGroup(fmt.Sprintf("%d +/- %d neighbours", center, k), model.CategoryNeighbours, arc)
}

// NeighbourBet computes hit statistics for a neighbour bet over seq.
func NeighbourBet(center, k int, seq []int, th Thresholds) (GroupRow, error) {
	g, err := NeighbourGroup(center, k)
	if err != nil {
		return GroupRow{}, err
	}
	return GroupHits(g, seq, th), nil
}
