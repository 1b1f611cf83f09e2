package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlacement_EncodeDecodeRoundTrip(t *testing.T) {
	cases := []Placement{
		Unplaced(),
		OnDay(date(2024, time.January, 10)),
		OnDay(date(2025, time.December, 31)),
		InWindow(WindowWorkweek, date(2024, time.January, 8)),
		InWindow(WindowWeekend, date(2024, time.January, 13)),
	}
	for _, p := range cases {
		decoded, err := DecodePlacement(p.Encode())
		require.NoError(t, err, p.Encode())
		assert.True(t, p.Equal(decoded), "round trip of %s", p.Encode())
	}
}

func TestPlacement_EncodeCanonicalForms(t *testing.T) {
	assert.Equal(t, "none", Unplaced().Encode())
	assert.Equal(t, "D|2024-01-10", OnDay(date(2024, time.January, 10)).Encode())
	assert.Equal(t, "P|weekend|2024-01-13",
		InWindow(WindowWeekend, date(2024, time.January, 13)).Encode())
}

func TestDecodePlacement_Malformed(t *testing.T) {
	for _, s := range []string{"D|", "D|10-01-2024", "P|fortnight|2024-01-08", "P|weekend", "X|2024-01-01"} {
		_, err := DecodePlacement(s)
		require.Error(t, err, s)
		assert.ErrorIs(t, err, ErrBadPlacement, s)
	}
}

func TestDecodePlacement_EmptyIsUnplaced(t *testing.T) {
	p, err := DecodePlacement("")
	require.NoError(t, err)
	assert.True(t, p.IsZero())
}

func TestPlacement_Equal(t *testing.T) {
	day := date(2024, time.January, 10)
	assert.True(t, OnDay(day).Equal(OnDay(day.Add(5*time.Hour))))
	assert.False(t, OnDay(day).Equal(OnDay(day.AddDate(0, 0, 1))))
	assert.False(t, OnDay(day).Equal(Unplaced()))
	assert.True(t, Placement{}.Equal(Unplaced()))
	assert.False(t, InWindow(WindowWorkweek, day).Equal(InWindow(WindowWeekend, day)))
}

func TestParseClockInput(t *testing.T) {
	cases := map[string]int{
		"9:30 am":  9*60 + 30,
		"9:30am":   9*60 + 30,
		"12:00 am": 0,
		"12:15 pm": 12*60 + 15,
		"2:05 pm":  14*60 + 5,
		"7pm":      19 * 60,
		"14:00":    14 * 60,
		"0:00":     0,
	}
	for in, want := range cases {
		got, err := ParseClockInput(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "25:00", "13:00 pm", "9:75", "soonish"} {
		_, err := ParseClockInput(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, ErrValidation, in)
	}
}

func TestClock_FormatParse(t *testing.T) {
	assert.Equal(t, "09:05:00", FormatClock(9*60+5))
	min, err := ParseClock("09:05:00")
	require.NoError(t, err)
	assert.Equal(t, 9*60+5, min)
}

func TestTask_MarkDone(t *testing.T) {
	now := time.Now()
	task := &Task{ItemCore: ItemCore{ID: "t1", Title: "Buy milk"}}
	task.MarkDone(true, now)
	require.NotNil(t, task.CompletedAt)
	assert.True(t, task.Done)
	task.MarkDone(false, now)
	assert.Nil(t, task.CompletedAt)
	assert.False(t, task.Done)
}

func TestPlan_SpanAccessors(t *testing.T) {
	start := date(2024, time.January, 8)
	end := date(2024, time.January, 10)
	p := &Plan{ItemCore: ItemCore{ID: "p1", Title: "Trip", Placement: OnDay(start)}, EndDay: &end}
	assert.True(t, p.IsMultiDay())
	assert.Equal(t, start, p.StartDay())
	assert.Equal(t, end, p.LastDay())

	single := &Plan{ItemCore: ItemCore{Placement: OnDay(start)}}
	assert.False(t, single.IsMultiDay())
	assert.Equal(t, start, single.LastDay())
}
