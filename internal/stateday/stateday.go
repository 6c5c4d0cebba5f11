// Package stateday maps UTC calendar dates to the abstract in-game "state day" counter.
package stateday

import (
	"fmt"
	"time"

	"github.com/Veraticus/packcal/internal/calendar"
)

// DefaultLookbackDays is how far before today the default anchor's start date lies.
const DefaultLookbackDays = 60

// Mode identifies how an Anchor pins state days to the calendar.
type Mode int

const (
	// ModeNone means no anchor is set; every date has an undefined state day.
	ModeNone Mode = iota
	// ModeStartDate pins state day 1 to an explicit UTC date.
	ModeStartDate
	// ModeTodayIs declares that today's UTC date is a given state day.
	ModeTodayIs
)

// Anchor pins the state-day counter to the calendar. The two modes are
// mutually exclusive; the constructors return an anchor with only one set.
type Anchor struct {
	startDate  time.Time
	todayIsDay int
	mode       Mode
}

// StartDate returns an anchor where date is state day 1.
func StartDate(date time.Time) Anchor {
	return Anchor{mode: ModeStartDate, startDate: calendar.Midnight(date)}
}

// TodayIs returns an anchor where today's UTC date is state day n.
// Non-positive n yields an unset anchor.
func TodayIs(n int) Anchor {
	if n <= 0 {
		return Anchor{}
	}
	return Anchor{mode: ModeTodayIs, todayIsDay: n}
}

// DefaultAnchor places state day 1 sixty UTC days before now.
func DefaultAnchor(now time.Time) Anchor {
	return StartDate(calendar.AddDays(now, -DefaultLookbackDays))
}

// Mode reports which anchor mode is active.
func (a Anchor) Mode() Mode { return a.mode }

// StartDateValue returns the explicit start date, if that mode is active.
func (a Anchor) StartDateValue() (time.Time, bool) {
	return a.startDate, a.mode == ModeStartDate
}

// TodayIsValue returns the asserted state day for today, if that mode is active.
func (a Anchor) TodayIsValue() (int, bool) {
	return a.todayIsDay, a.mode == ModeTodayIs
}

// IsSet reports whether any anchor mode is active.
func (a Anchor) IsSet() bool { return a.mode != ModeNone }

// String describes the anchor for display.
func (a Anchor) String() string {
	switch a.mode {
	case ModeStartDate:
		return fmt.Sprintf("state day 1 = %s (UTC)", calendar.FormatDate(a.startDate))
	case ModeTodayIs:
		return fmt.Sprintf("today is state day %d", a.todayIsDay)
	default:
		return "not set"
	}
}

// Resolve returns the state day of target under anchor. The second result is
// false when the day is undefined: no anchor, a date before the start date, or
// a relative anchor that would produce a day below 1.
func Resolve(target time.Time, anchor Anchor, now time.Time) (int, bool) {
	day := calendar.DayNumber(target)

	switch anchor.mode {
	case ModeStartDate:
		diff := day - calendar.DayNumber(anchor.startDate)
		if diff < 0 {
			return 0, false
		}
		return int(diff) + 1, true

	case ModeTodayIs:
		delta := day - calendar.DayNumber(calendar.Midnight(now))
		sd := int64(anchor.todayIsDay) + delta
		if sd <= 0 {
			return 0, false
		}
		return int(sd), true

	default:
		return 0, false
	}
}
