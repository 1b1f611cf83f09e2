package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestComputePlanningWindows_Weekdays(t *testing.T) {
	// 2024-01-08 is a Monday.
	monday := date(2024, time.January, 8)
	for offset := 0; offset < 5; offset++ {
		today := monday.AddDate(0, 0, offset)
		w := ComputePlanningWindows(today)
		assert.Equal(t, monday, w.ThisWeekStart, "weekday %s", today.Weekday())
		assert.Equal(t, monday.AddDate(0, 0, 7), w.NextWeekStart)
	}
}

func TestComputePlanningWindows_WeekendRollsToFollowingMonday(t *testing.T) {
	sat := date(2024, time.January, 13)
	sun := date(2024, time.January, 14)
	followingMonday := date(2024, time.January, 15)

	for _, today := range []time.Time{sat, sun} {
		w := ComputePlanningWindows(today)
		assert.Equal(t, followingMonday, w.ThisWeekStart, "%s", today.Weekday())
		assert.Equal(t, followingMonday.AddDate(0, 0, 7), w.NextWeekStart)
	}
}

func TestComputePlanningWindows_WeekendStart(t *testing.T) {
	sat := date(2024, time.January, 13)

	// Saturday: the weekend is today.
	w := ComputePlanningWindows(sat)
	assert.Equal(t, sat, w.ThisWeekendStart)

	// Sunday: yesterday.
	w = ComputePlanningWindows(sat.AddDate(0, 0, 1))
	assert.Equal(t, sat, w.ThisWeekendStart)

	// Any weekday: the next Saturday strictly after today.
	for offset := 2; offset <= 6; offset++ {
		today := sat.AddDate(0, 0, offset)
		w = ComputePlanningWindows(today)
		next := sat.AddDate(0, 0, 7)
		assert.Equal(t, next, w.ThisWeekendStart, "%s", today.Weekday())
		assert.True(t, w.ThisWeekendStart.After(today))
	}

	w = ComputePlanningWindows(sat)
	assert.Equal(t, sat.AddDate(0, 0, 7), w.NextWeekendStart)
}

func TestComputePlanningWindows_PureAndIdempotent(t *testing.T) {
	today := date(2024, time.March, 6)
	first := ComputePlanningWindows(today)
	second := ComputePlanningWindows(today)
	assert.Equal(t, first, second)
}

func TestComputePlanningWindows_StripsClock(t *testing.T) {
	noon := time.Date(2024, time.January, 10, 12, 34, 56, 0, time.Local)
	w := ComputePlanningWindows(noon)
	require.Equal(t, date(2024, time.January, 8), w.ThisWeekStart)
	assert.Zero(t, w.ThisWeekStart.Hour())
}

func TestWindowStart_SelectsAnchor(t *testing.T) {
	w := ComputePlanningWindows(date(2024, time.January, 10))
	assert.Equal(t, w.ThisWeekStart, w.WindowStart(WindowWorkweek, false))
	assert.Equal(t, w.NextWeekStart, w.WindowStart(WindowWorkweek, true))
	assert.Equal(t, w.ThisWeekendStart, w.WindowStart(WindowWeekend, false))
	assert.Equal(t, w.NextWeekendStart, w.WindowStart(WindowWeekend, true))
}
