package calendar

import "time"

// StartOfMonthLocal returns the first day of t's month in t's location.
func StartOfMonthLocal(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfWeekMonLocal returns the Monday on or before t in t's location.
func StartOfWeekMonLocal(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}

// AddDaysLocal moves t by n calendar days in t's location.
func AddDaysLocal(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// AddMonthsLocal returns the first day of the month n months after t's.
func AddMonthsLocal(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
}
