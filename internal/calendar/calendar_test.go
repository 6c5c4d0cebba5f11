package calendar

import (
	"testing"
	"time"

	"github.com/Veraticus/packcal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMidnight(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		in   time.Time
		want time.Time
		name string
	}{
		{name: "already midnight", in: date(2024, 1, 1), want: date(2024, 1, 1)},
		{name: "late utc evening", in: time.Date(2024, 1, 1, 23, 59, 59, 999, time.UTC), want: date(2024, 1, 1)},
		{name: "non-utc location uses the utc day", in: time.Date(2024, 1, 2, 5, 0, 0, 0, tokyo), want: date(2024, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Midnight(tt.in)
			assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestDayNumber(t *testing.T) {
	assert.Equal(t, int64(0), DayNumber(date(1970, 1, 1)))
	assert.Equal(t, int64(0), DayNumber(time.Date(1970, 1, 1, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(-1), DayNumber(time.Date(1969, 12, 31, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(19723), DayNumber(date(2024, 1, 1)))
	assert.Equal(t, int64(9), DayNumber(date(2024, 1, 10))-DayNumber(date(2024, 1, 1)))
}

func TestAddDays_Rollover(t *testing.T) {
	assert.Equal(t, date(2024, 3, 1), AddDays(date(2024, 2, 28), 2)) // leap year
	assert.Equal(t, date(2025, 1, 1), AddDays(date(2024, 12, 31), 1))
	assert.Equal(t, date(2023, 12, 31), AddDays(date(2024, 1, 1), -1))
	assert.Equal(t, date(2024, 1, 8), AddDays(time.Date(2024, 1, 1, 17, 30, 0, 0, time.UTC), 7))
}

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, model.Monday, WeekdayOf(date(2024, 1, 1)))
	assert.Equal(t, model.Sunday, WeekdayOf(date(2024, 1, 7)))
	assert.Equal(t, model.Wednesday, WeekdayOf(date(2024, 1, 3)))
}

func TestStartOfWeekWindow(t *testing.T) {
	tests := []struct {
		day    time.Time
		want   time.Time
		name   string
		anchor model.Weekday
	}{
		{name: "on the anchor day", day: date(2024, 1, 1), anchor: model.Monday, want: date(2024, 1, 1)},
		{name: "mid week", day: date(2024, 1, 3), anchor: model.Monday, want: date(2024, 1, 1)},
		{name: "sunday before monday anchor", day: date(2024, 1, 7), anchor: model.Monday, want: date(2024, 1, 1)},
		{name: "anchor later in week wraps back", day: date(2024, 1, 2), anchor: model.Friday, want: date(2023, 12, 29)},
		{name: "sunday anchor", day: date(2024, 1, 6), anchor: model.Sunday, want: date(2023, 12, 31)},
		{name: "unknown anchor defaults to monday", day: date(2024, 1, 4), anchor: model.Weekday("Xyz"), want: date(2024, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartOfWeekWindow(tt.day, tt.anchor))
		})
	}
}

func TestStartOfWeekWindow_EveryDayCoveredOnce(t *testing.T) {
	start := date(2023, 12, 1)
	for i := 0; i < 120; i++ {
		d := AddDays(start, i)
		ws := StartOfWeekWindow(d, model.Monday)
		assert.False(t, d.Before(ws), "day %v before window start %v", d, ws)
		assert.True(t, d.Before(AddDays(ws, 7)), "day %v outside window %v", d, ws)
		assert.Equal(t, model.Monday, WeekdayOf(ws))
	}
}

func TestMonthBoundaries(t *testing.T) {
	assert.Equal(t, date(2024, 2, 1), FirstOfMonth(time.Date(2024, 2, 29, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, date(2024, 3, 1), FirstOfNextMonth(date(2024, 2, 29)))
	assert.Equal(t, date(2025, 1, 1), FirstOfNextMonth(date(2024, 12, 15)))
}

func TestFromLocalDate(t *testing.T) {
	newYork := time.FixedZone("EST", -5*60*60)
	// 21:00 on Jan 1 in New York is already Jan 2 in UTC; the displayed date wins.
	local := time.Date(2024, 1, 1, 21, 0, 0, 0, newYork)
	assert.Equal(t, date(2024, 1, 1), FromLocalDate(local))
	assert.Equal(t, date(2024, 1, 2), Midnight(local))
}

func TestParseAndFormat(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 10), d)
	assert.Equal(t, "2024-01-10", FormatDate(d))
	assert.Equal(t, "2024-01-08 00:00", FormatBoundary(date(2024, 1, 8)))

	_, err = ParseDate("10/01/2024")
	assert.Error(t, err)
}

func TestLocalHelpers(t *testing.T) {
	loc := time.FixedZone("X", 3*60*60)
	d := time.Date(2024, 1, 17, 15, 0, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), StartOfMonthLocal(d))
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, loc), StartOfWeekMonLocal(d))
	assert.Equal(t, time.Date(2024, 1, 14, 0, 0, 0, 0, loc), StartOfWeekMonLocal(time.Date(2024, 1, 14, 0, 0, 0, 0, loc)).AddDate(0, 0, 6))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, loc), AddMonthsLocal(d, 1))
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, loc), AddMonthsLocal(d, -1))
	assert.Equal(t, time.Date(2024, 1, 24, 0, 0, 0, 0, loc), AddDaysLocal(d, 7))
}
