package optimizer

import (
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// FindGaps scans [start, end] and returns, in chronological order, every
// maximal run of days that are neither weekend nor in off. Runs longer than
// MaxGapLength are dropped, not truncated. A run still open at end is closed
// at end.
func FindGaps(start, end dateutil.Date, weekend WeekendSet, off DaySet) []Gap {
	var gaps []Gap
	var runStart dateutil.Date
	inRun := false

	for d := start; !d.After(end); d = d.AddDays(1) {
		if !isOff(d, weekend, off) {
			if !inRun {
				runStart = d
				inRun = true
			}
			continue
		}
		if inRun {
			gaps = appendGap(gaps, runStart, d.AddDays(-1))
			inRun = false
		}
	}

	if inRun {
		gaps = appendGap(gaps, runStart, end)
	}

	return gaps
}

func appendGap(gaps []Gap, start, end dateutil.Date) []Gap {
	length := dateutil.DaysBetween(start, end) + 1
	if length < 1 || length > MaxGapLength {
		return gaps
	}
	return append(gaps, Gap{Start: start, End: end, Length: length})
}
