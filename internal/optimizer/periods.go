package optimizer

import (
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// minPeriodDays is the shortest run reported as a period
const minPeriodDays = 2

// CalculateConsecutiveDaysOff groups the off days in [start, end] (weekends,
// holidays, optimized and fixed days) into consecutive runs. A run is
// reported when it spans at least two days and is not made only of weekend
// days. Periods keep their full bounds, boundary weekends included, and
// UsedDaysOff counts optimized days only.
func CalculateConsecutiveDaysOff(
	holidays []Holiday,
	optimized []dateutil.Date,
	weekend WeekendSet,
	start, end dateutil.Date,
	fixed []dateutil.Date,
) ([]ConsecutivePeriod, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	holidayDays := holidaySet(holidays, start, end)
	discretionary := NewDaySet()
	addWithin(discretionary, optimized, start, end)

	off := NewDaySet()
	for d := range holidayDays {
		off.Add(d)
	}
	for d := range discretionary {
		off.Add(d)
	}
	addWithin(off, fixed, start, end)

	agg := aggregator{
		weekend:       weekend,
		holidays:      holidayDays,
		discretionary: discretionary,
		periods:       make([]ConsecutivePeriod, 0),
	}
	for d := start; !d.After(end); d = d.AddDays(1) {
		if isOff(d, weekend, off) {
			agg.group = append(agg.group, d)
			continue
		}
		agg.close()
	}
	agg.close()

	return agg.periods, nil
}

type aggregator struct {
	weekend       WeekendSet
	holidays      DaySet
	discretionary DaySet

	group   []dateutil.Date
	periods []ConsecutivePeriod
}

func (a *aggregator) close() {
	group := a.group
	a.group = a.group[:0]

	if len(group) < minPeriodDays {
		return
	}

	period := ConsecutivePeriod{
		StartDate: group[0],
		EndDate:   group[len(group)-1],
	}
	period.TotalDays = dateutil.DaysBetween(period.StartDate, period.EndDate) + 1

	weekendOnly := true
	for _, d := range group {
		if !a.weekend.IsWeekend(d) {
			weekendOnly = false
		}
		if a.discretionary.Has(d) {
			period.UsedDaysOff++
		}
		if a.holidays.Has(d) {
			period.IncludesHoliday = true
		}
	}
	if weekendOnly {
		return
	}

	a.periods = append(a.periods, period)
}
