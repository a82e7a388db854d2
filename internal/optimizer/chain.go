package optimizer

import (
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// Direction is the side of a gap a chain extends towards
type Direction int

const (
	// Backward walks from the gap's start towards earlier days
	Backward Direction = iota
	// Forward walks from the gap's end towards later days
	Forward
)

func (d Direction) step() int {
	if d == Backward {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Chain is the payoff estimate of filling a gap completely
type Chain struct {
	// Length is the gap length plus the adjacent off days in the walked direction
	Length int
	// UsedDaysOff counts gap days that would consume budget
	UsedDaysOff int
}

// EvaluateChain estimates the chain obtained by filling the gap anchored at
// anchor (its start for Backward, its end for Forward). The chain walk stops
// at the first day that is neither weekend nor in off; the used-days count
// walks the gapLength gap days inward from the anchor.
//
// A gap only exists if some weekday is outside weekend, so the outward walk
// always reaches a work day.
func EvaluateChain(anchor dateutil.Date, gapLength int, dir Direction, weekend WeekendSet, off DaySet) Chain {
	step := dir.step()
	chain := Chain{Length: gapLength}

	for next := anchor.AddDays(step); isOff(next, weekend, off); next = next.AddDays(step) {
		chain.Length++
	}

	for i := 0; i < gapLength; i++ {
		day := anchor.AddDays(-i * step)
		if !isOff(day, weekend, off) {
			chain.UsedDaysOff++
		}
	}

	return chain
}
