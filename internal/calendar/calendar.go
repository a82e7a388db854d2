package calendar

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/zachd/stretch-my-time-off/internal/optimizer"
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// ErrUnknownCountry is returned when a provider has no holidays for a country code
var ErrUnknownCountry = errors.New("unknown country")

// Provider supplies the public holidays of a country (and optionally one of
// its regions) for a calendar year
type Provider interface {
	// Holidays returns one entry per holiday day, sorted by date then name
	Holidays(ctx context.Context, country, region string, year int) ([]optimizer.Holiday, error)
}

// NormalizeCountry upper-cases and trims a country or region code
func NormalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// expand returns one holiday per day of [from, to]
func expand(from, to dateutil.Date, name string) []optimizer.Holiday {
	if to.IsZero() || to.Before(from) {
		to = from
	}
	days := dateutil.Days(from, to)
	out := make([]optimizer.Holiday, 0, len(days))
	for _, day := range days {
		out = append(out, optimizer.Holiday{Date: day, Name: name})
	}
	return out
}

// sortHolidays orders by date then name and drops exact duplicates
func sortHolidays(holidays []optimizer.Holiday) []optimizer.Holiday {
	sort.SliceStable(holidays, func(i, j int) bool {
		if c := holidays[i].Date.Compare(holidays[j].Date); c != 0 {
			return c < 0
		}
		return holidays[i].Name < holidays[j].Name
	})

	out := holidays[:0]
	for _, h := range holidays {
		if len(out) > 0 && h == out[len(out)-1] {
			continue
		}
		out = append(out, h)
	}
	return out
}

// inYear keeps the holidays that fall in the given year
func inYear(holidays []optimizer.Holiday, year int) []optimizer.Holiday {
	out := make([]optimizer.Holiday, 0, len(holidays))
	for _, h := range holidays {
		if h.Date.Year == year {
			out = append(out, h)
		}
	}
	return out
}
