package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the canonical text form of a Date
const Layout = "2006-01-02"

// Date is a calendar date without time of day or location.
// Equality and ordering use (year, month, day) only, so Date is usable as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the normalized date for the given fields (Jan 32 becomes Feb 1)
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime drops the time of day and location of t, keeping its wall-clock date
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns today's date in the local time zone
func Today() Date {
	return FromTime(StartOfDay(time.Now()))
}

// StartOfDay returns the start of the day (00:00:00) for the given time
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfYear returns January 1st of year
func StartOfYear(year int) Date { return Date{Year: year, Month: time.January, Day: 1} }

// EndOfYear returns December 31st of year
func EndOfYear(year int) Date { return Date{Year: year, Month: time.December, Day: 31} }

// Time returns the date as midnight UTC
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n calendar days later (earlier when n is negative)
func (d Date) AddDays(n int) Date {
	return New(d.Year, d.Month, d.Day+n)
}

// IsZero reports whether d is the zero Date
func (d Date) IsZero() bool {
	return d == Date{}
}

// ordinal is the number of days since 1970-01-01, computed from the calendar
// fields alone (days-from-civil), so it never depends on elapsed clock time.
func (d Date) ordinal() int {
	y := d.Year
	m := int(d.Month)
	if m <= 2 {
		y--
	}
	era := y
	if era < 0 {
		era -= 399
	}
	era /= 400
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d.Day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// DaysBetween returns to minus from in whole calendar days
func DaysBetween(from, to Date) int {
	return to.ordinal() - from.ordinal()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

// Within reports whether d lies in the inclusive range [from, to]
func (d Date) Within(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Format formats the date using a time layout
func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text is the zero Date.
func (d *Date) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Parse parses a date string in various formats
func Parse(dateStr string) (Date, error) {
	formats := []string{
		Layout,
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
		time.RFC3339,
	}

	dateStr = strings.TrimSpace(dateStr)
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return FromTime(t), nil
		}
	}

	return Date{}, fmt.Errorf("unrecognized date %q", dateStr)
}

// ParseList parses a comma separated list of dates, ignoring empty items
func ParseList(s string) ([]Date, error) {
	var dates []Date
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := Parse(part)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// Days returns every date in [from, to] in order. Empty when to is before from.
func Days(from, to Date) []Date {
	n := DaysBetween(from, to) + 1
	if n <= 0 {
		return nil
	}
	days := make([]Date, 0, n)
	for d := from; !d.After(to); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
