package optimizer

import (
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// Selector greedily spends a budget of days off over ranked gaps.
// It owns off and adds every selected day to it.
type Selector struct {
	Start    dateutil.Date
	End      dateutil.Date
	Weekend  WeekendSet
	Off      DaySet
	Excluded DaySet
}

// Select consumes ranked gaps in order. After each gap it re-finds and
// re-ranks the gaps against the updated off set, and stops when the budget
// is spent or no fillable gap is left. It returns only the newly selected
// days, in selection order.
func (s *Selector) Select(ranked []RankedGap, budget int) []dateutil.Date {
	selected := make([]dateutil.Date, 0)
	worklist := s.fillable(ranked)

	for budget > 0 && len(worklist) > 0 {
		gap := worklist[0]

		days := gap.Days()
		if gap.FillFrom == FillFromEnd {
			reverse(days)
		}

		for _, day := range days {
			if budget == 0 {
				break
			}
			if !s.selectable(day) {
				continue
			}
			selected = append(selected, day)
			s.Off.Add(day)
			budget--
		}

		worklist = s.fillable(RankGaps(FindGaps(s.Start, s.End, s.Weekend, s.Off), s.Weekend, s.Off))
	}

	return selected
}

func (s *Selector) selectable(day dateutil.Date) bool {
	return !isOff(day, s.Weekend, s.Off) && !s.Excluded.Has(day)
}

// fillable drops gaps with no selectable day. Such a gap is made only of
// excluded days and would otherwise be picked again on every pass.
func (s *Selector) fillable(ranked []RankedGap) []RankedGap {
	if len(s.Excluded) == 0 {
		return ranked
	}
	kept := ranked[:0:0]
	for _, rg := range ranked {
		for _, day := range rg.Days() {
			if s.selectable(day) {
				kept = append(kept, rg)
				break
			}
		}
	}
	return kept
}

func reverse(days []dateutil.Date) {
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
}
