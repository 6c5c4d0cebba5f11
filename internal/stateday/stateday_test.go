package stateday

import (
	"testing"
	"time"

	"github.com/Veraticus/packcal/internal/calendar"
	"github.com/stretchr/testify/assert"
)

func utc(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_StartDate(t *testing.T) {
	anchor := StartDate(utc(2024, 1, 1))
	now := utc(2030, 6, 1) // ignored in this mode

	tests := []struct {
		target  time.Time
		name    string
		want    int
		defined bool
	}{
		{name: "anchor day is day one", target: utc(2024, 1, 1), want: 1, defined: true},
		{name: "ten days in", target: utc(2024, 1, 10), want: 10, defined: true},
		{name: "day before anchor is undefined", target: utc(2023, 12, 31), defined: false},
		{name: "time of day is ignored", target: time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC), want: 10, defined: true},
		{name: "across a year boundary", target: utc(2025, 1, 1), want: 367, defined: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.target, anchor, now)
			assert.Equal(t, tt.defined, ok)
			if tt.defined {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolve_TodayIs(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	anchor := TodayIs(5)

	sd, ok := Resolve(utc(2024, 3, 15), anchor, now)
	assert.True(t, ok)
	assert.Equal(t, 5, sd)

	sd, ok = Resolve(utc(2024, 3, 20), anchor, now)
	assert.True(t, ok)
	assert.Equal(t, 10, sd)

	sd, ok = Resolve(utc(2024, 3, 11), anchor, now)
	assert.True(t, ok)
	assert.Equal(t, 1, sd)

	_, ok = Resolve(utc(2024, 3, 10), anchor, now)
	assert.False(t, ok, "day zero is undefined")
}

func TestResolve_TodayIsUsesUTCDayOfNow(t *testing.T) {
	// 02:00 on Mar 16 in UTC+5 is still Mar 15 in UTC.
	now := time.Date(2024, 3, 16, 2, 0, 0, 0, time.FixedZone("X", 5*60*60))
	sd, ok := Resolve(utc(2024, 3, 15), TodayIs(7), now)
	assert.True(t, ok)
	assert.Equal(t, 7, sd)
}

func TestResolve_NoAnchor(t *testing.T) {
	_, ok := Resolve(utc(2024, 1, 1), Anchor{}, utc(2024, 1, 1))
	assert.False(t, ok)

	_, ok = Resolve(utc(2024, 1, 1), TodayIs(0), utc(2024, 1, 1))
	assert.False(t, ok)
	assert.False(t, TodayIs(-3).IsSet())
}

func TestResolve_Monotonic(t *testing.T) {
	now := utc(2024, 5, 1)
	anchors := map[string]Anchor{
		"start date": StartDate(utc(2024, 4, 1)),
		"today is":   TodayIs(3),
	}

	for name, anchor := range anchors {
		t.Run(name, func(t *testing.T) {
			prev := 0
			for i := -60; i < 60; i++ {
				sd, ok := Resolve(calendar.AddDays(now, i), anchor, now)
				if !ok {
					assert.Zero(t, prev, "state day became undefined after being defined")
					continue
				}
				if prev != 0 {
					assert.Equal(t, prev+1, sd)
				}
				prev = sd
			}
		})
	}
}

func TestAnchorModesAreExclusive(t *testing.T) {
	a := StartDate(time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC))
	_, isToday := a.TodayIsValue()
	start, isStart := a.StartDateValue()
	assert.False(t, isToday)
	assert.True(t, isStart)
	assert.Equal(t, utc(2024, 1, 1), start)
	assert.Equal(t, "state day 1 = 2024-01-01 (UTC)", a.String())

	b := TodayIs(12)
	_, isStart = b.StartDateValue()
	n, isToday := b.TodayIsValue()
	assert.False(t, isStart)
	assert.True(t, isToday)
	assert.Equal(t, 12, n)
	assert.Equal(t, "today is state day 12", b.String())
	assert.Equal(t, "not set", Anchor{}.String())
}

func TestDefaultAnchor(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sd, ok := Resolve(now, DefaultAnchor(now), now)
	assert.True(t, ok)
	assert.Equal(t, DefaultLookbackDays+1, sd)
}
