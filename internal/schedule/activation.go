// Package schedule decides which schedule rules are active on a given date.
package schedule

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/packcal/internal/calendar"
	"github.com/Veraticus/packcal/internal/model"
)

// Activation is a rule that is active on the evaluated date, with a
// human-readable description of its active window.
type Activation struct {
	Window string
	Rule   model.ScheduleRule
}

// ActiveRules returns the rules active on date, whose state day is stateDay,
// in dataset order. date is expected to be a UTC midnight.
func ActiveRules(rules []model.ScheduleRule, date time.Time, stateDay int) []Activation {
	date = calendar.Midnight(date)
	out := make([]Activation, 0, len(rules))

	for _, rule := range rules {
		if !rule.InWindow(stateDay) {
			continue
		}
		if window, ok := evaluate(rule, date); ok {
			out = append(out, Activation{Rule: rule, Window: window})
		}
	}

	return out
}

// IsActive reports whether a single rule is active on date at stateDay.
func IsActive(rule model.ScheduleRule, date time.Time, stateDay int) bool {
	if !rule.InWindow(stateDay) {
		return false
	}
	_, ok := evaluate(rule, calendar.Midnight(date))
	return ok
}

func evaluate(rule model.ScheduleRule, date time.Time) (string, bool) {
	if rule.Repeat == nil {
		return fmt.Sprintf("State Day %d → %d", rule.StartDay, rule.EndDay), true
	}

	rep := *rule.Repeat
	switch rep.Freq {
	case model.RepeatWeekly:
		return evaluateWeekly(rep, date)

	case model.RepeatDaily:
		return "Daily (00:00 UTC reset)", true

	case model.RepeatMonthly:
		onDay := rep.DayOfMonth()
		if date.Day() != onDay {
			return "", false
		}
		return fmt.Sprintf("Monthly on day %d (00:00 UTC reset)", onDay), true

	default:
		return "", false
	}
}

func evaluateWeekly(rep model.RepeatSpec, date time.Time) (string, bool) {
	switch len(rep.On) {
	case 0:
		return "Weekly (00:00 UTC reset)", true

	case 1:
		// One weekday opens a seven-day window that rolls over on that weekday.
		startName := rep.On[0]
		start := calendar.StartOfWeekWindow(date, startName)
		end := calendar.AddDays(start, 7)
		if date.Before(start) || !date.Before(end) {
			return "", false
		}
		return fmt.Sprintf("%s 00:00 UTC → next %s 00:00 UTC", startName, startName), true

	default:
		if !slices.Contains(rep.On, calendar.WeekdayOf(date)) {
			return "", false
		}
		names := make([]string, len(rep.On))
		for i, wd := range rep.On {
			names[i] = string(wd)
		}
		return fmt.Sprintf("Weekly on %s (00:00 UTC reset)", strings.Join(names, ", ")), true
	}
}
