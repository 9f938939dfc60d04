package analysis

import "github.com/Veraticus/the-wheel-must-spin/internal/model"

// Counts is a dense frequency table indexed by pocket number. Every pocket is
// present, including those never hit.
type Counts [model.PocketCount]int

// NumberCount pairs a pocket with how often it was hit.
type NumberCount struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// Frequency counts occurrences of each pocket in seq. Values outside [0,36]
// are ignored; the pipeline never produces them.
func Frequency(seq []int) Counts {
	var c Counts
	for _, n := range seq {
		if model.ValidNumber(n) {
			c[n]++
		}
	}
	return c
}

// Total is the number of spins counted.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Entries lists every pocket in numeric order.
func (c Counts) Entries() []NumberCount {
	out := make([]NumberCount, len(c))
	for n, count := range c {
		out[n] = NumberCount{Number: n, Count: count}
	}
	return out
}

// Sum adds up the counts of the given pockets.
func (c Counts) Sum(numbers []int) int {
	total := 0
	for _, n := range numbers {
		if model.ValidNumber(n) {
			total += c[n]
		}
	}
	return total
}
