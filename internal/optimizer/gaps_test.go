package optimizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

func d(month time.Month, day int) dateutil.Date {
	return dateutil.New(2024, month, day)
}

func TestWeekendSet(t *testing.T) {
	assert.True(t, DefaultWeekend.Contains(time.Saturday))
	assert.True(t, DefaultWeekend.Contains(time.Sunday))
	assert.False(t, DefaultWeekend.Contains(time.Friday))
	assert.Equal(t, []int{0, 6}, DefaultWeekend.Ints())
	assert.Equal(t, 2, DefaultWeekend.Len())

	set, err := WeekendSetFromInts([]int{5, 6})
	require.NoError(t, err)
	assert.True(t, set.IsWeekend(d(time.January, 5)), "2024-01-05 is a Friday")
	assert.False(t, set.IsWeekend(d(time.January, 7)), "Sunday is a work day here")

	_, err = WeekendSetFromInts([]int{7})
	assert.Error(t, err)

	var decoded WeekendSet
	require.NoError(t, decoded.UnmarshalJSON([]byte(`[1,3]`)))
	assert.Equal(t, NewWeekendSet(time.Monday, time.Wednesday), decoded)
}

func TestPredicates(t *testing.T) {
	holidays := []Holiday{{Date: d(time.January, 1), Name: "New Year"}, {Date: d(time.January, 1), Name: "Other"}}

	assert.True(t, IsHoliday(d(time.January, 1), holidays))
	assert.False(t, IsHoliday(d(time.January, 2), holidays))
	assert.True(t, IsWeekend(d(time.January, 6), DefaultWeekend))
	assert.True(t, IsInOffSet(d(time.January, 3), NewDaySet(d(time.January, 3))))
	assert.False(t, IsInOffSet(d(time.January, 3), nil))
	assert.Len(t, holidaySet(holidays, d(time.January, 1), d(time.December, 31)), 1)
}

func TestFindGaps(t *testing.T) {
	tests := []struct {
		name    string
		start   dateutil.Date
		end     dateutil.Date
		weekend WeekendSet
		off     DaySet
		want    []Gap
	}{
		{
			name:    "gaps between holiday and weekends",
			start:   d(time.January, 1),
			end:     d(time.January, 14),
			weekend: DefaultWeekend,
			off:     NewDaySet(d(time.January, 1)),
			want: []Gap{
				{Start: d(time.January, 2), End: d(time.January, 5), Length: 4},
				{Start: d(time.January, 8), End: d(time.January, 12), Length: 5},
			},
		},
		{
			name:    "run reaching the end is closed at the end",
			start:   d(time.January, 1),
			end:     d(time.January, 3),
			weekend: DefaultWeekend,
			off:     NewDaySet(),
			want:    []Gap{{Start: d(time.January, 1), End: d(time.January, 3), Length: 3}},
		},
		{
			name:    "run of six work days is dropped entirely",
			start:   d(time.January, 1),
			end:     d(time.January, 7),
			weekend: NewWeekendSet(time.Sunday),
			off:     NewDaySet(),
			want:    nil,
		},
		{
			name:    "everything off",
			start:   d(time.January, 6),
			end:     d(time.January, 7),
			weekend: DefaultWeekend,
			off:     NewDaySet(),
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindGaps(tt.start, tt.end, tt.weekend, tt.off))
		})
	}
}

func TestFindGaps_NeverLongerThanMax(t *testing.T) {
	off := NewDaySet(d(time.March, 13), d(time.July, 4), d(time.November, 28))
	for _, gap := range FindGaps(d(time.January, 1), d(time.December, 31), NewWeekendSet(time.Sunday), off) {
		assert.LessOrEqual(t, gap.Length, MaxGapLength)
		assert.Equal(t, gap.Length, dateutil.DaysBetween(gap.Start, gap.End)+1)
	}
}

func TestEvaluateChain(t *testing.T) {
	off := NewDaySet(d(time.January, 1))

	// Jan 1 holiday plus the Dec 30-31 weekend precede the gap
	backward := EvaluateChain(d(time.January, 2), 4, Backward, DefaultWeekend, off)
	assert.Equal(t, Chain{Length: 7, UsedDaysOff: 4}, backward)

	forward := EvaluateChain(d(time.January, 5), 4, Forward, DefaultWeekend, off)
	assert.Equal(t, Chain{Length: 6, UsedDaysOff: 4}, forward)
}

func TestEvaluateChain_CountsOnlyWorkDaysInGap(t *testing.T) {
	off := NewDaySet(d(time.January, 3))

	chain := EvaluateChain(d(time.January, 2), 3, Backward, DefaultWeekend, off)
	assert.Equal(t, 2, chain.UsedDaysOff)
	assert.Equal(t, 3, chain.Length, "Jan 1 is a work day, nothing to extend")
}

func TestRankGaps(t *testing.T) {
	off := NewDaySet(d(time.January, 4), d(time.January, 9))
	gaps := FindGaps(d(time.January, 1), d(time.January, 14), DefaultWeekend, off)

	ranked := RankGaps(gaps, DefaultWeekend, off)
	require.Len(t, ranked, 4)

	// single-day gaps first, chronological among equals
	assert.Equal(t, d(time.January, 5), ranked[0].Start)
	assert.Equal(t, FillFromEnd, ranked[0].FillFrom)
	assert.Equal(t, 3, ranked[0].ChainLength)

	assert.Equal(t, d(time.January, 8), ranked[1].Start)
	assert.Equal(t, FillFromStart, ranked[1].FillFrom)
	assert.Equal(t, 3, ranked[1].ChainLength)

	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].Length, ranked[i].Length)
	}
}

func TestRankGaps_LongerChainWinsAmongEqualLength(t *testing.T) {
	// Jan 1, 3, 5 and 12 are single-day gaps. Jan 3 sits between two
	// holidays but only reaches a 2-day chain, the others touch a weekend.
	off := NewDaySet(d(time.January, 2), d(time.January, 4), d(time.January, 11))
	gaps := FindGaps(d(time.January, 1), d(time.January, 14), DefaultWeekend, off)
	require.Len(t, gaps, 5)

	ranked := RankGaps(gaps, DefaultWeekend, off)

	starts := make([]dateutil.Date, 0, len(ranked))
	for _, rg := range ranked {
		starts = append(starts, rg.Start)
	}
	assert.Equal(t, []dateutil.Date{
		d(time.January, 1), d(time.January, 5), d(time.January, 12), d(time.January, 3), d(time.January, 8),
	}, starts)
	assert.Equal(t, 3, ranked[0].ChainLength)
	assert.Equal(t, 2, ranked[3].ChainLength)
	assert.Equal(t, 3, ranked[4].Length)
}

func TestRankGaps_TieFillsFromEnd(t *testing.T) {
	off := NewDaySet(d(time.January, 1), d(time.January, 8))
	gaps := FindGaps(d(time.January, 1), d(time.January, 7), DefaultWeekend, off)
	require.Len(t, gaps, 1)

	ranked := RankGaps(gaps, DefaultWeekend, off)
	assert.Equal(t, 7, ranked[0].ChainLength)
	assert.Equal(t, FillFromEnd, ranked[0].FillFrom)
}
