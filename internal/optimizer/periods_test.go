package optimizer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

func TestCalculateConsecutiveDaysOff(t *testing.T) {
	tests := []struct {
		name      string
		holidays  []Holiday
		optimized []dateutil.Date
		fixed     []dateutil.Date
		start     dateutil.Date
		end       dateutil.Date
		want      []ConsecutivePeriod
	}{
		{
			name:      "bridged holidays form one break",
			holidays:  []Holiday{{Date: d(time.January, 1)}, {Date: d(time.January, 8)}},
			optimized: []dateutil.Date{d(time.January, 2), d(time.January, 3), d(time.January, 4), d(time.January, 5)},
			start:     d(time.January, 1),
			end:       d(time.January, 14),
			want: []ConsecutivePeriod{
				{StartDate: d(time.January, 1), EndDate: d(time.January, 8), TotalDays: 8, UsedDaysOff: 4, IncludesHoliday: true},
			},
		},
		{
			name:      "fixed days join but are not counted as used",
			holidays:  []Holiday{{Date: d(time.January, 1)}},
			optimized: []dateutil.Date{d(time.January, 2)},
			fixed:     []dateutil.Date{d(time.January, 3)},
			start:     d(time.January, 1),
			end:       d(time.January, 14),
			want: []ConsecutivePeriod{
				{StartDate: d(time.January, 1), EndDate: d(time.January, 3), TotalDays: 3, UsedDaysOff: 1, IncludesHoliday: true},
			},
		},
		{
			name:     "range starting on a weekend keeps the weekend",
			holidays: []Holiday{{Date: d(time.January, 8)}},
			start:    d(time.January, 6),
			end:      d(time.January, 14),
			want: []ConsecutivePeriod{
				{StartDate: d(time.January, 6), EndDate: d(time.January, 8), TotalDays: 3, UsedDaysOff: 0, IncludesHoliday: true},
			},
		},
		{
			name:     "single day is not a period",
			holidays: []Holiday{{Date: d(time.January, 1)}},
			start:    d(time.January, 1),
			end:      d(time.January, 5),
			want:     []ConsecutivePeriod{},
		},
		{
			name:  "plain weekends are not periods",
			start: d(time.January, 1),
			end:   d(time.January, 31),
			want:  []ConsecutivePeriod{},
		},
		{
			name:      "days outside the range are ignored",
			optimized: []dateutil.Date{d(time.January, 5), d(time.February, 2)},
			start:     d(time.January, 1),
			end:       d(time.January, 14),
			want: []ConsecutivePeriod{
				{StartDate: d(time.January, 5), EndDate: d(time.January, 7), TotalDays: 3, UsedDaysOff: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateConsecutiveDaysOff(tt.holidays, tt.optimized, DefaultWeekend, tt.start, tt.end, tt.fixed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateConsecutiveDaysOff_MatchesOptimizer(t *testing.T) {
	holidays := usHolidays2024()
	start, end := d(time.January, 1), d(time.December, 31)

	optimized, err := OptimizeDaysOff(holidays, 20, DefaultWeekend, start, end, nil, nil)
	require.NoError(t, err)
	snapshot := append([]dateutil.Date(nil), optimized...)

	periods, err := CalculateConsecutiveDaysOff(holidays, optimized, DefaultWeekend, start, end, nil)
	require.NoError(t, err)
	again, err := CalculateConsecutiveDaysOff(holidays, optimized, DefaultWeekend, start, end, nil)
	require.NoError(t, err)

	assert.Equal(t, periods, again)
	assert.Equal(t, snapshot, optimized)

	used := 0
	for i, p := range periods {
		assert.GreaterOrEqual(t, p.TotalDays, 2)
		assert.Equal(t, dateutil.DaysBetween(p.StartDate, p.EndDate)+1, p.TotalDays)
		if i > 0 {
			assert.True(t, periods[i-1].EndDate.Before(p.StartDate))
		}
		used += p.UsedDaysOff
	}
	// every optimized day touches a weekend or holiday, so none is left out
	assert.Equal(t, len(optimized), used)
}

func TestCalculateConsecutiveDaysOff_InvalidRange(t *testing.T) {
	_, err := CalculateConsecutiveDaysOff(nil, nil, DefaultWeekend, d(time.May, 2), d(time.May, 1), nil)
	assert.True(t, errors.Is(err, ErrInvalidRange))
}
