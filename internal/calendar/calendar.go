// Package calendar implements the UTC day arithmetic that state days and reset
// windows are computed on.
//
// Every function except the *Local helpers works in UTC only. FromLocalDate is
// the single place where a date displayed in the caller's timezone is turned
// into the UTC midnight the engine understands.
package calendar

import (
	"fmt"
	"time"

	"github.com/Veraticus/packcal/internal/model"
)

// DateLayout is the YYYY-MM-DD layout used for dates on the command line and in storage.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Midnight truncates t to the start of its UTC day.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayNumber returns the number of whole days between the Unix epoch and t's UTC day.
func DayNumber(t time.Time) int64 {
	// UTC midnights are exact multiples of a day, so this never truncates.
	return Midnight(t).Unix() / secondsPerDay
}

// AddDays moves t's UTC day by n days and returns that day's midnight.
func AddDays(t time.Time, n int) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day()+n, 0, 0, 0, 0, time.UTC)
}

// WeekdayOf returns the UTC weekday of t.
func WeekdayOf(t time.Time) model.Weekday {
	return model.WeekdayFromTime(t.UTC().Weekday())
}

// StartOfWeekWindow returns the midnight of the most recent anchor weekday at or before t's UTC day.
func StartOfWeekWindow(t time.Time, anchor model.Weekday) time.Time {
	current := int(t.UTC().Weekday())
	target := int(anchor.Time())
	diff := (current - target + 7) % 7
	return AddDays(t, -diff)
}

// FirstOfMonth returns the midnight of the first day of t's UTC month.
func FirstOfMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// FirstOfNextMonth returns the midnight of the first day of the UTC month after t's.
func FirstOfNextMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same UTC day.
func SameDay(a, b time.Time) bool {
	return DayNumber(a) == DayNumber(b)
}

// FromLocalDate keeps the year, month and day t shows in its own location and
// reinterprets them as a UTC midnight.
func FromLocalDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string as a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// FormatDate renders t's UTC day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatBoundary renders a reset boundary as "YYYY-MM-DD 00:00".
func FormatBoundary(t time.Time) string {
	return Midnight(t).Format(DateLayout + " 15:04")
}
