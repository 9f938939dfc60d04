// Package wheel describes the physical layout of a single-zero roulette wheel.
package wheel

import (
	"strconv"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// Size is the number of pockets on the wheel.
const Size = model.PocketCount

// Order is the clockwise pocket sequence of a European wheel starting at zero.
var Order = [Size]int{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10,
	5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26,
}

var positions = func() [Size]int {
	var pos [Size]int
	for i, n := range Order {
		pos[n] = i
	}
	return pos
}()

// Position returns the index of pocket n in Order. n must be a valid number.
func Position(n int) int {
	return positions[n]
}

// At returns the pocket at wheel index pos, wrapping in both directions.
func At(pos int) int {
	return Order[mod(pos)]
}

// Steps counts clockwise pockets travelled from a to b, in [0,36].
func Steps(a, b int) int {
	return mod(Position(b) - Position(a))
}

// SignedStep is the shorter way round from a to b: positive is clockwise,
// negative counter-clockwise, in [-18,18].
func SignedStep(a, b int) int {
	s := Steps(a, b)
	if s > Size/2 {
		return s - Size
	}
	return s
}

// Distance is the shortest circular distance between two pockets, in [0,18].
func Distance(a, b int) int {
	s := SignedStep(a, b)
	if s < 0 {
		return -s
	}
	return s
}

// Arc returns the pockets from k positions counter-clockwise of center to k
// positions clockwise, in wheel order. k is not bounds checked.
func Arc(center, k int) []int {
	base := Position(center)
	arc := make([]int, 0, 2*k+1)
	for i := -k; i <= k; i++ {
		arc = append(arc, At(base+i))
	}
	return arc
}

// Neighbours returns the neighbour-bet arc for center with k pockets on each
// side. The arc may cover the whole wheel but never wrap onto itself.
func Neighbours(center, k int) ([]int, error) {
	if !model.ValidNumber(center) {
		return nil, &common.ValidationError{
			Field:  "center",
			Value:  strconv.Itoa(center),
			Reason: "must be between 0 and 36",
		}
	}
	if k < 0 || 2*k+1 > Size {
		return nil, &common.InvalidRangeError{Center: center, Count: k}
	}
	return Arc(center, k), nil
}

// Thirds splits the wheel into contiguous runs of 12, 12 and 13 pockets.
func Thirds() [3][]int {
	return [3][]int{
		append([]int(nil), Order[0:12]...),
		append([]int(nil), Order[12:24]...),
		append([]int(nil), Order[24:Size]...),
	}
}

func mod(i int) int {
	i %= Size
	if i < 0 {
		i += Size
	}
	return i
}
