package optimizer

import (
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// MaxGapLength is the longest run of work days the optimizer tries to bridge.
// Longer runs are skipped entirely.
const MaxGapLength = 5

// Holiday is a named public holiday on a single calendar day
type Holiday struct {
	Date dateutil.Date `json:"date"`
	Name string        `json:"name"`
}

// Gap is a maximal run of consecutive work days between off days
type Gap struct {
	Start  dateutil.Date `json:"start"`
	End    dateutil.Date `json:"end"`
	Length int           `json:"length"`
}

// Days returns the gap's days from Start to End
func (g Gap) Days() []dateutil.Date {
	return dateutil.Days(g.Start, g.End)
}

// FillEdge says which edge of a gap the selector starts filling from
type FillEdge string

const (
	// FillFromStart extends the off run that precedes the gap
	FillFromStart FillEdge = "start"
	// FillFromEnd extends the off run that follows the gap
	FillFromEnd FillEdge = "end"
)

// RankedGap is a Gap tagged with its best fill direction
type RankedGap struct {
	Gap
	ChainLength int      `json:"chain_length"`
	UsedDaysOff int      `json:"used_days_off"`
	FillFrom    FillEdge `json:"fill_from"`
}

// ConsecutivePeriod is a reportable run of consecutive days off
type ConsecutivePeriod struct {
	StartDate       dateutil.Date `json:"start_date"`
	EndDate         dateutil.Date `json:"end_date"`
	TotalDays       int           `json:"total_days"`
	UsedDaysOff     int           `json:"used_days_off"`
	IncludesHoliday bool          `json:"includes_holiday"`
}
