// Package view builds the calendar grid and day detail that the CLI and TUI render.
//
// State is an immutable value: every transition returns a new State. Dates in
// State are local display dates; they only meet the engine through
// calendar.FromLocalDate.
package view

import (
	"time"

	"github.com/Veraticus/packcal/internal/calendar"
	"github.com/Veraticus/packcal/internal/schedule"
	"github.com/Veraticus/packcal/internal/stateday"
)

// Mode selects the calendar layout.
type Mode int

const (
	// ModeMonth shows six Monday-first weeks around the cursor's month.
	ModeMonth Mode = iota
	// ModeWeek shows the Monday-first week containing the cursor.
	ModeWeek
)

// String returns the mode name used in flags and config.
func (m Mode) String() string {
	if m == ModeWeek {
		return "week"
	}
	return "month"
}

// ParseMode maps "month" or "week" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "month", "":
		return ModeMonth, true
	case "week":
		return ModeWeek, true
	default:
		return ModeMonth, false
	}
}

// State is what the calendar currently shows.
type State struct {
	Cursor   time.Time
	Selected time.Time
	Anchor   stateday.Anchor
	Category string
	Mode     Mode
}

// NewState opens the month containing today with today selected.
func NewState(now time.Time, anchor stateday.Anchor) State {
	today := calendar.AddDaysLocal(now, 0)
	return State{
		Mode:     ModeMonth,
		Cursor:   today,
		Selected: today,
		Anchor:   anchor,
		Category: schedule.AllCategories,
	}
}

// WithMode switches layout, keeping the selected date in view.
func (s State) WithMode(m Mode) State {
	s.Mode = m
	if !s.Selected.IsZero() {
		s.Cursor = s.Selected
	}
	return s
}

// ToggleMode flips between month and week.
func (s State) ToggleMode() State {
	if s.Mode == ModeMonth {
		return s.WithMode(ModeWeek)
	}
	return s.WithMode(ModeMonth)
}

// Next moves one month or one week forward.
func (s State) Next() State { return s.page(1) }

// Prev moves one month or one week back.
func (s State) Prev() State { return s.page(-1) }

func (s State) page(dir int) State {
	if s.Mode == ModeWeek {
		s.Cursor = calendar.AddDaysLocal(s.Cursor, 7*dir)
	} else {
		s.Cursor = calendar.AddMonthsLocal(s.Cursor, dir)
	}
	return s
}

// Today jumps back to now, selecting it.
func (s State) Today(now time.Time) State {
	today := calendar.AddDaysLocal(now, 0)
	s.Cursor = today
	s.Selected = today
	return s
}

// Select picks a date and scrolls the cursor to it if it is out of view.
func (s State) Select(date time.Time) State {
	s.Selected = calendar.AddDaysLocal(date, 0)
	if !s.Visible(s.Selected) {
		s.Cursor = s.Selected
	}
	return s
}

// MoveSelection shifts the selected date by days.
func (s State) MoveSelection(days int) State {
	base := s.Selected
	if base.IsZero() {
		base = s.Cursor
	}
	return s.Select(calendar.AddDaysLocal(base, days))
}

// WithCategory sets the rule category filter. Empty means all.
func (s State) WithCategory(category string) State {
	if category == "" {
		category = schedule.AllCategories
	}
	s.Category = category
	return s
}

// CycleCategory advances the filter through "all" followed by categories.
func (s State) CycleCategory(categories []string) State {
	options := append([]string{schedule.AllCategories}, categories...)
	for i, c := range options {
		if c == s.Category {
			return s.WithCategory(options[(i+1)%len(options)])
		}
	}
	return s.WithCategory(schedule.AllCategories)
}

// WithAnchor replaces the state-day anchor.
func (s State) WithAnchor(a stateday.Anchor) State {
	s.Anchor = a
	return s
}

// Range returns the first displayed date and the number of cells.
func (s State) Range() (time.Time, int) {
	if s.Mode == ModeWeek {
		return calendar.StartOfWeekMonLocal(s.Cursor), 7
	}
	return calendar.StartOfWeekMonLocal(calendar.StartOfMonthLocal(s.Cursor)), 42
}

// Visible reports whether date falls inside the displayed grid.
func (s State) Visible(date time.Time) bool {
	start, n := s.Range()
	end := calendar.AddDaysLocal(start, n)
	return !date.Before(start) && date.Before(end)
}
