package optimizer

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// WeekendSet is the set of weekdays treated as non-working days.
// Bit i is set when time.Weekday(i) is part of the weekend.
type WeekendSet uint8

// DefaultWeekend is Saturday and Sunday
var DefaultWeekend = NewWeekendSet(time.Saturday, time.Sunday)

// NewWeekendSet builds a set from weekdays, ignoring values outside 0-6
func NewWeekendSet(days ...time.Weekday) WeekendSet {
	var s WeekendSet
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			s |= 1 << uint(d)
		}
	}
	return s
}

// WeekendSetFromInts builds a set from weekday indices (0 = Sunday)
func WeekendSetFromInts(days []int) (WeekendSet, error) {
	var s WeekendSet
	for _, d := range days {
		if d < 0 || d > 6 {
			return 0, fmt.Errorf("weekday index %d out of range 0-6", d)
		}
		s |= 1 << uint(d)
	}
	return s, nil
}

// Contains reports whether wd is a weekend day
func (s WeekendSet) Contains(wd time.Weekday) bool {
	return s&(1<<uint(wd)) != 0
}

// IsWeekend reports whether date falls on a weekend day
func (s WeekendSet) IsWeekend(date dateutil.Date) bool {
	return s.Contains(date.Weekday())
}

// Len returns the number of weekend days
func (s WeekendSet) Len() int {
	n := 0
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if s.Contains(wd) {
			n++
		}
	}
	return n
}

// Ints returns the weekday indices in ascending order
func (s WeekendSet) Ints() []int {
	days := make([]int, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if s.Contains(wd) {
			days = append(days, int(wd))
		}
	}
	return days
}

func (s WeekendSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Ints())
}

func (s *WeekendSet) UnmarshalJSON(data []byte) error {
	var days []int
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}
	set, err := WeekendSetFromInts(days)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

// DaySet is a set of calendar dates
type DaySet map[dateutil.Date]struct{}

// NewDaySet returns a set holding dates
func NewDaySet(dates ...dateutil.Date) DaySet {
	s := make(DaySet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

func (s DaySet) Add(d dateutil.Date) { s[d] = struct{}{} }

// Has reports whether d is in the set. A nil set is empty.
func (s DaySet) Has(d dateutil.Date) bool {
	_, ok := s[d]
	return ok
}

// Sorted returns the members in chronological order
func (s DaySet) Sorted() []dateutil.Date {
	dates := make([]dateutil.Date, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// IsWeekend reports whether date's weekday is in weekend
func IsWeekend(date dateutil.Date, weekend WeekendSet) bool {
	return weekend.IsWeekend(date)
}

// IsHoliday reports whether any holiday falls on date
func IsHoliday(date dateutil.Date, holidays []Holiday) bool {
	for _, h := range holidays {
		if h.Date == date {
			return true
		}
	}
	return false
}

// IsInOffSet reports whether date is already a day off
func IsInOffSet(date dateutil.Date, off DaySet) bool {
	return off.Has(date)
}

// isOff is the combined predicate used by every scan: weekend or already off
func isOff(date dateutil.Date, weekend WeekendSet, off DaySet) bool {
	return weekend.IsWeekend(date) || off.Has(date)
}

// holidaySet collects holiday dates inside [start, end]
func holidaySet(holidays []Holiday, start, end dateutil.Date) DaySet {
	s := make(DaySet, len(holidays))
	for _, h := range holidays {
		if h.Date.Within(start, end) {
			s.Add(h.Date)
		}
	}
	return s
}

// addWithin adds the dates inside [start, end] to s
func addWithin(s DaySet, dates []dateutil.Date, start, end dateutil.Date) {
	for _, d := range dates {
		if d.Within(start, end) {
			s.Add(d)
		}
	}
}
