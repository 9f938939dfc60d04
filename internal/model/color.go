package model

// Color is the pocket color of a number.
type Color string

const (
	// ColorGreen is the zero pocket.
	ColorGreen Color = "green"
	// ColorRed covers the red pockets.
	ColorRed Color = "red"
	// ColorBlack covers the black pockets.
	ColorBlack Color = "black"
)

// RedNumbers lists the red pockets of a European wheel.
var RedNumbers = []int{1, 3, 5, 7, 9, 12, 14, 16, 18, 19, 21, 23, 25, 27, 30, 32, 34, 36}

var redSet = func() [PocketCount]bool {
	var set [PocketCount]bool
	for _, n := range RedNumbers {
		set[n] = true
	}
	return set
}()

// ColorOf returns the color of pocket n. n must be a valid number.
func ColorOf(n int) Color {
	switch {
	case n == 0:
		return ColorGreen
	case redSet[n]:
		return ColorRed
	default:
		return ColorBlack
	}
}

// DigitSum reduces n to a single digit by repeatedly summing its digits.
func DigitSum(n int) int {
	if n < 0 {
		return -1
	}
	for n >= 10 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return n
}
