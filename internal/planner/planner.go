// Package planner ties holiday providers, stored preferences and the
// optimizer together into a single planning call.
package planner

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/zachd/stretch-my-time-off/internal/allowance"
	"github.com/zachd/stretch-my-time-off/internal/calendar"
	"github.com/zachd/stretch-my-time-off/internal/optimizer"
	"github.com/zachd/stretch-my-time-off/internal/prefs"
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// ErrInvalidRequest marks plan requests that cannot be served as given
var ErrInvalidRequest = errors.New("invalid plan request")

// Defaults fill in what neither the request nor the stored preferences say
type Defaults struct {
	Country string
	Region  string
	Weekend optimizer.WeekendSet
	// Budget below zero means the country's default allowance
	Budget int
}

// PlanRequest describes one planning call. Zero values are filled from
// preferences and defaults.
type PlanRequest struct {
	Country      string          `json:"country"`
	Region       string          `json:"region,omitempty"`
	Year         int             `json:"year"`
	Start        dateutil.Date   `json:"start,omitempty"`
	End          dateutil.Date   `json:"end,omitempty"`
	Budget       *int            `json:"budget,omitempty"`
	WeekendDays  []int           `json:"weekend_days,omitempty"`
	FixedDays    []dateutil.Date `json:"fixed_days,omitempty"`
	ExcludedDays []dateutil.Date `json:"excluded_days,omitempty"`
}

// PlannedHoliday is a holiday with its hidden flag
type PlannedHoliday struct {
	optimizer.Holiday
	Hidden bool `json:"hidden"`
}

// Plan is the outcome of a planning call
type Plan struct {
	Country       string                        `json:"country"`
	Region        string                        `json:"region,omitempty"`
	Year          int                           `json:"year"`
	Start         dateutil.Date                 `json:"start"`
	End           dateutil.Date                 `json:"end"`
	Budget        int                           `json:"budget"`
	WeekendDays   []int                         `json:"weekend_days"`
	Holidays      []PlannedHoliday              `json:"holidays"`
	OptimizedDays []dateutil.Date               `json:"optimized_days"`
	Periods       []optimizer.ConsecutivePeriod `json:"periods"`
	DaysUsed      int                           `json:"days_used"`
	TotalDaysOff  int                           `json:"total_days_off"`
}

// Manager runs planning calls
type Manager struct {
	holidays calendar.Provider
	prefs    *prefs.Preferences
	defaults Defaults
	now      func() dateutil.Date
	logger   *zap.Logger
}

// NewManager creates a new planning manager
func NewManager(
	holidays calendar.Provider,
	preferences *prefs.Preferences,
	defaults Defaults,
	logger *zap.Logger,
) *Manager {
	if defaults.Weekend == 0 {
		defaults.Weekend = optimizer.DefaultWeekend
	}
	return &Manager{
		holidays: holidays,
		prefs:    preferences,
		defaults: defaults,
		now:      dateutil.Today,
		logger:   logger,
	}
}

// Preferences returns the preference accessor (for the prefs command)
func (m *Manager) Preferences() *prefs.Preferences {
	return m.prefs
}

// Plan resolves req against preferences and defaults, optimizes the
// discretionary days and summarizes the resulting breaks. The resolved
// context is stored as the new preferences once planning succeeded.
func (m *Manager) Plan(ctx context.Context, req PlanRequest) (*Plan, error) {
	// 1. Resolve the request
	resolved, err := m.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	m.logger.Info("Starting plan",
		zap.String("country", resolved.country),
		zap.String("region", resolved.region),
		zap.Int("year", resolved.year),
		zap.Stringer("start", resolved.start),
		zap.Stringer("end", resolved.end),
		zap.Int("budget", resolved.budget))

	// 2. Holidays minus hidden ones
	planned, err := m.Holidays(ctx, resolved.country, resolved.region, resolved.year)
	if err != nil {
		return nil, err
	}

	active := make([]optimizer.Holiday, 0, len(planned))
	for _, h := range planned {
		if !h.Hidden {
			active = append(active, h.Holiday)
		}
	}

	// 3. Optimize
	optimized, err := optimizer.OptimizeDaysOff(
		active,
		resolved.budget,
		resolved.weekend,
		resolved.start,
		resolved.end,
		req.ExcludedDays,
		req.FixedDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize days off: %w", err)
	}

	// 4. Aggregate
	periods, err := optimizer.CalculateConsecutiveDaysOff(
		active,
		optimized,
		resolved.weekend,
		resolved.start,
		resolved.end,
		req.FixedDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate periods: %w", err)
	}

	plan := &Plan{
		Country:       resolved.country,
		Region:        resolved.region,
		Year:          resolved.year,
		Start:         resolved.start,
		End:           resolved.end,
		Budget:        resolved.budget,
		WeekendDays:   resolved.weekend.Ints(),
		Holidays:      planned,
		OptimizedDays: optimized,
		Periods:       periods,
		DaysUsed:      len(optimized),
	}
	for _, p := range periods {
		plan.TotalDaysOff += p.TotalDays
	}

	m.logger.Info("Plan completed",
		zap.Int("days_used", plan.DaysUsed),
		zap.Int("periods", len(periods)),
		zap.Int("total_days_off", plan.TotalDaysOff))

	// 5. Remember the context for next time
	m.remember(ctx, req, resolved)

	return plan, nil
}

// Holidays returns the holidays of a country in year with hidden flags
func (m *Manager) Holidays(ctx context.Context, country, region string, year int) ([]PlannedHoliday, error) {
	holidays, err := m.holidays.Holidays(ctx, country, region, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays: %w", err)
	}

	hidden, err := m.prefs.HiddenHolidays(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("failed to read hidden holidays: %w", err)
	}

	planned := make([]PlannedHoliday, 0, len(holidays))
	for _, h := range holidays {
		planned = append(planned, PlannedHoliday{
			Holiday: h,
			Hidden:  hidden[h.Date.String()],
		})
	}

	m.logger.Debug("Holidays resolved",
		zap.String("country", country),
		zap.Int("year", year),
		zap.Int("count", len(planned)),
		zap.Int("hidden", len(planned)-countVisible(planned)))

	return planned, nil
}

// SetHolidayHidden hides or shows the holiday on date for a country
func (m *Manager) SetHolidayHidden(ctx context.Context, country string, date dateutil.Date, hidden bool) error {
	country = calendar.NormalizeCountry(country)
	if country == "" {
		return fmt.Errorf("%w: country is required", ErrInvalidRequest)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}

	if err := m.prefs.SetHiddenHoliday(ctx, country, date, hidden); err != nil {
		return fmt.Errorf("failed to save hidden holiday: %w", err)
	}

	m.logger.Info("Holiday visibility changed",
		zap.String("country", country),
		zap.Stringer("date", date),
		zap.Bool("hidden", hidden))

	return nil
}

type resolvedRequest struct {
	country string
	region  string
	year    int
	start   dateutil.Date
	end     dateutil.Date
	budget  int
	weekend optimizer.WeekendSet
}

func (m *Manager) resolve(ctx context.Context, req PlanRequest) (resolvedRequest, error) {
	state, err := m.prefs.AppState(ctx, m.now().Year, m.defaults.Country, -1)
	if err != nil {
		return resolvedRequest{}, fmt.Errorf("failed to read preferences: %w", err)
	}

	r := resolvedRequest{
		country: calendar.NormalizeCountry(req.Country),
		region:  calendar.NormalizeCountry(req.Region),
		year:    req.Year,
	}

	if r.country == "" {
		r.country = calendar.NormalizeCountry(state.SelectedCountry)
	}
	if r.country == "" {
		return resolvedRequest{}, fmt.Errorf("%w: country is required", ErrInvalidRequest)
	}
	sameCountry := r.country == calendar.NormalizeCountry(state.SelectedCountry)

	if r.region == "" && req.Country == "" {
		r.region = calendar.NormalizeCountry(state.SelectedStateCode)
	}
	if r.region == "" && r.country == calendar.NormalizeCountry(m.defaults.Country) {
		r.region = calendar.NormalizeCountry(m.defaults.Region)
	}

	if r.year == 0 {
		r.year = state.Year
	}
	if r.year < 1 || r.year > 9999 {
		return resolvedRequest{}, fmt.Errorf("%w: year %d out of range", ErrInvalidRequest, r.year)
	}

	// range defaults to the whole year and never leaves it
	r.start, r.end = dateutil.StartOfYear(r.year), dateutil.EndOfYear(r.year)
	if !req.Start.IsZero() && req.Start.After(r.start) {
		r.start = req.Start
	}
	if !req.End.IsZero() && req.End.Before(r.end) {
		r.end = req.End
	}

	switch {
	case req.Budget != nil:
		r.budget = *req.Budget
	case sameCountry && state.DaysOff >= 0:
		r.budget = state.DaysOff
	case m.defaults.Budget >= 0:
		r.budget = m.defaults.Budget
	default:
		r.budget = allowance.Days(r.country)
	}

	if req.WeekendDays != nil {
		r.weekend, err = optimizer.WeekendSetFromInts(req.WeekendDays)
		if err != nil {
			return resolvedRequest{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	} else {
		r.weekend, err = m.prefs.WeekendDaysOr(ctx, m.defaults.Weekend)
		if err != nil {
			return resolvedRequest{}, fmt.Errorf("failed to read weekend days: %w", err)
		}
	}

	return r, nil
}

// remember stores the resolved context. Failures are logged, the plan
// itself is already complete.
func (m *Manager) remember(ctx context.Context, req PlanRequest, r resolvedRequest) {
	update := prefs.AppStateUpdate{
		Year:              &r.year,
		SelectedCountry:   &r.country,
		SelectedStateCode: &r.region,
		DaysOff:           &r.budget,
	}
	if err := m.prefs.SaveAppState(ctx, update); err != nil {
		m.logger.Warn("Failed to save app state", zap.Error(err))
	}

	if req.WeekendDays != nil {
		if err := m.prefs.SetWeekendDays(ctx, r.weekend); err != nil {
			m.logger.Warn("Failed to save weekend days", zap.Error(err))
		}
	}
}

func countVisible(holidays []PlannedHoliday) int {
	n := 0
	for _, h := range holidays {
		if !h.Hidden {
			n++
		}
	}
	return n
}
