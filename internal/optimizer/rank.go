package optimizer

import (
	"sort"
)

// RankGaps picks the better fill direction for every gap and orders the
// result: shorter gaps first, then longer chains, then fewer used days.
// Ordering is stable, so equal gaps keep chronological order.
func RankGaps(gaps []Gap, weekend WeekendSet, off DaySet) []RankedGap {
	ranked := make([]RankedGap, 0, len(gaps))

	for _, gap := range gaps {
		backward := EvaluateChain(gap.Start, gap.Length, Backward, weekend, off)
		forward := EvaluateChain(gap.End, gap.Length, Forward, weekend, off)

		rg := RankedGap{
			Gap:         gap,
			ChainLength: backward.Length,
			UsedDaysOff: backward.UsedDaysOff,
			FillFrom:    FillFromStart,
		}
		if forward.Length > backward.Length ||
			(forward.Length == backward.Length && forward.UsedDaysOff <= backward.UsedDaysOff) {
			rg.ChainLength = forward.Length
			rg.UsedDaysOff = forward.UsedDaysOff
			rg.FillFrom = FillFromEnd
		}

		ranked = append(ranked, rg)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Length != b.Length {
			return a.Length < b.Length
		}
		if a.ChainLength != b.ChainLength {
			return a.ChainLength > b.ChainLength
		}
		return a.UsedDaysOff < b.UsedDaysOff
	})

	return ranked
}
