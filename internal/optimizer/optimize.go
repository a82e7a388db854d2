// Package optimizer places a limited number of discretionary days off so that
// they join weekends, holidays and fixed days off into the longest possible
// breaks, and summarizes the resulting calendar into consecutive periods.
//
// Everything here is pure: inputs are copied into fresh sets on every call
// and nothing is shared between calls, so independent requests may run
// concurrently.
package optimizer

import (
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// OptimizeDaysOff picks up to budget work days in [start, end] to take off.
//
// Holidays, chosen (fixed) days and weekends count as already off; only the
// ones inside the range are considered. Excluded days are never selected.
// The result never contains weekends, holidays, chosen or excluded days, or
// duplicates. A budget of zero or less, or a range with nothing to fill,
// yields an empty slice. The only error is a range that starts after it ends.
func OptimizeDaysOff(
	holidays []Holiday,
	budget int,
	weekend WeekendSet,
	start, end dateutil.Date,
	excluded []dateutil.Date,
	chosen []dateutil.Date,
) ([]dateutil.Date, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	if budget <= 0 {
		return []dateutil.Date{}, nil
	}

	off := holidaySet(holidays, start, end)
	addWithin(off, chosen, start, end)

	sel := &Selector{
		Start:    start,
		End:      end,
		Weekend:  weekend,
		Off:      off,
		Excluded: NewDaySet(excluded...),
	}

	ranked := RankGaps(FindGaps(start, end, weekend, off), weekend, off)
	return sel.Select(ranked, budget), nil
}
