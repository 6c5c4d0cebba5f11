package model

import (
	"strings"
	"time"
)

// Weekday is a three-letter UTC weekday name as it appears in datasets.
type Weekday string

// Weekday constants, Monday first.
const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// WeekdaysMonFirst lists all weekdays starting with Monday.
var WeekdaysMonFirst = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayToTime = map[Weekday]time.Weekday{
	Sunday:    time.Sunday,
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
}

// Time converts the weekday to a time.Weekday. Unknown names resolve to Monday.
func (w Weekday) Time() time.Weekday {
	if wd, ok := weekdayToTime[w]; ok {
		return wd
	}
	return time.Monday
}

// Valid reports whether w is one of the seven known weekday names.
func (w Weekday) Valid() bool {
	_, ok := weekdayToTime[w]
	return ok
}

// WeekdayFromTime converts a time.Weekday to its dataset name.
func WeekdayFromTime(wd time.Weekday) Weekday {
	return WeekdaysMonFirst[(int(wd)+6)%7]
}

// ParseWeekday accepts short or long weekday names in any case ("mon", "Monday").
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return "", false
	}
	for _, w := range WeekdaysMonFirst {
		long := strings.ToLower(w.Time().String())
		if s == strings.ToLower(string(w)) || s == long {
			return w, true
		}
	}
	return "", false
}
