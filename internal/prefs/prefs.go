package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/zachd/stretch-my-time-off/internal/calendar"
	"github.com/zachd/stretch-my-time-off/internal/optimizer"
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// Preference keys
const (
	KeyWeekendDays       = "weekendDays"
	KeyYear              = "year"
	KeySelectedCountry   = "selectedCountry"
	KeySelectedState     = "selectedState"
	KeySelectedStateCode = "selectedStateCode"
	KeyDaysOff           = "daysOff"

	hiddenHolidaysPrefix = "hiddenHolidays_"
)

// HiddenHolidaysKey is the key holding the hidden holidays of a country
func HiddenHolidaysKey(countryCode string) string {
	return hiddenHolidaysPrefix + calendar.NormalizeCountry(countryCode)
}

// AppState is the last planning context a user worked with
type AppState struct {
	Year              int    `json:"year"`
	SelectedCountry   string `json:"selected_country"`
	SelectedState     string `json:"selected_state"`
	SelectedStateCode string `json:"selected_state_code"`
	DaysOff           int    `json:"days_off"`
}

// AppStateUpdate holds the fields to save; nil fields are left untouched
type AppStateUpdate struct {
	Year              *int    `json:"year,omitempty"`
	SelectedCountry   *string `json:"selected_country,omitempty"`
	SelectedState     *string `json:"selected_state,omitempty"`
	SelectedStateCode *string `json:"selected_state_code,omitempty"`
	DaysOff           *int    `json:"days_off,omitempty"`
}

// Preferences reads and writes typed values on top of a Store
type Preferences struct {
	store Store
}

// New wraps store
func New(store Store) *Preferences {
	return &Preferences{store: store}
}

// Store returns the underlying store
func (p *Preferences) Store() Store {
	return p.store
}

// getOptional returns "" and no error for a missing key
func (p *Preferences) getOptional(ctx context.Context, key string) (string, error) {
	value, err := p.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return value, err
}

// WeekendDays returns the stored weekend, Saturday and Sunday by default
func (p *Preferences) WeekendDays(ctx context.Context) (optimizer.WeekendSet, error) {
	return p.WeekendDaysOr(ctx, optimizer.DefaultWeekend)
}

// WeekendDaysOr returns the stored weekend, or fallback when nothing
// readable is stored
func (p *Preferences) WeekendDaysOr(ctx context.Context, fallback optimizer.WeekendSet) (optimizer.WeekendSet, error) {
	raw, err := p.getOptional(ctx, KeyWeekendDays)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return fallback, nil
	}

	var days []int
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return fallback, nil
	}
	set, err := optimizer.WeekendSetFromInts(days)
	if err != nil {
		return fallback, nil
	}
	return set, nil
}

// SetWeekendDays stores the weekend as a JSON list of weekday numbers
func (p *Preferences) SetWeekendDays(ctx context.Context, weekend optimizer.WeekendSet) error {
	data, err := json.Marshal(weekend.Ints())
	if err != nil {
		return fmt.Errorf("failed to marshal weekend days: %w", err)
	}
	return p.store.Set(ctx, KeyWeekendDays, string(data))
}

// HiddenHolidays returns the date to hidden flag map of a country
func (p *Preferences) HiddenHolidays(ctx context.Context, countryCode string) (map[string]bool, error) {
	hidden := make(map[string]bool)
	if countryCode == "" {
		return hidden, nil
	}

	raw, err := p.getOptional(ctx, HiddenHolidaysKey(countryCode))
	if err != nil || raw == "" {
		return hidden, err
	}
	if err := json.Unmarshal([]byte(raw), &hidden); err != nil {
		return make(map[string]bool), nil
	}
	return hidden, nil
}

// SetHiddenHoliday flags or unflags the holiday on date for a country
func (p *Preferences) SetHiddenHoliday(ctx context.Context, countryCode string, date dateutil.Date, hidden bool) error {
	if countryCode == "" {
		return nil
	}

	current, err := p.HiddenHolidays(ctx, countryCode)
	if err != nil {
		return err
	}
	current[date.String()] = hidden

	data, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("failed to marshal hidden holidays: %w", err)
	}
	return p.store.Set(ctx, HiddenHolidaysKey(countryCode), string(data))
}

// IsHolidayHidden reports whether the holiday is hidden for a country
func (p *Preferences) IsHolidayHidden(ctx context.Context, holiday optimizer.Holiday, countryCode string) (bool, error) {
	hidden, err := p.HiddenHolidays(ctx, countryCode)
	if err != nil {
		return false, err
	}
	return hidden[holiday.Date.String()], nil
}

// AppState returns the stored app state. Missing or unreadable numbers take
// the given defaults; missing strings take defaultCountry or "".
func (p *Preferences) AppState(ctx context.Context, defaultYear int, defaultCountry string, defaultDaysOff int) (AppState, error) {
	all, err := p.store.All(ctx)
	if err != nil {
		return AppState{}, err
	}

	state := AppState{
		Year:              atoiOr(all[KeyYear], defaultYear),
		SelectedCountry:   all[KeySelectedCountry],
		SelectedState:     all[KeySelectedState],
		SelectedStateCode: all[KeySelectedStateCode],
		DaysOff:           atoiOr(all[KeyDaysOff], defaultDaysOff),
	}
	if state.SelectedCountry == "" {
		state.SelectedCountry = defaultCountry
	}
	return state, nil
}

// SaveAppState writes the non-nil fields of update
func (p *Preferences) SaveAppState(ctx context.Context, update AppStateUpdate) error {
	writes := []struct {
		key   string
		value *string
	}{
		{KeyYear, itoaPtr(update.Year)},
		{KeySelectedCountry, update.SelectedCountry},
		{KeySelectedState, update.SelectedState},
		{KeySelectedStateCode, update.SelectedStateCode},
		{KeyDaysOff, itoaPtr(update.DaysOff)},
	}

	for _, w := range writes {
		if w.value == nil {
			continue
		}
		if err := p.store.Set(ctx, w.key, *w.value); err != nil {
			return err
		}
	}
	return nil
}

// ToggleWeekendDay adds day to days or removes it, returning a new sorted slice
func ToggleWeekendDay(days []int, day int) []int {
	out := make([]int, 0, len(days)+1)
	found := false
	for _, d := range days {
		if d == day {
			found = true
			continue
		}
		out = append(out, d)
	}
	if !found {
		out = append(out, day)
	}
	sort.Ints(out)
	return out
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func itoaPtr(v *int) *string {
	if v == nil {
		return nil
	}
	s := strconv.Itoa(*v)
	return &s
}
