package view

import (
	"fmt"
	"time"

	"github.com/Veraticus/packcal/internal/calendar"
	"github.com/Veraticus/packcal/internal/cooldown"
	"github.com/Veraticus/packcal/internal/model"
	"github.com/Veraticus/packcal/internal/schedule"
	"github.com/Veraticus/packcal/internal/stateday"
)

// MaxBadges is how many categories a calendar cell shows.
const MaxBadges = 3

// Detail messages.
const (
	MsgNoStateDay = "No state day yet. Set a state start date or \"today is state day\"."
	MsgNoPacks    = "No packs scheduled for this day (in your dataset)."
)

// Cell is one day of the calendar grid.
type Cell struct {
	Date        time.Time
	UTCDate     time.Time
	Badges      []string
	StateDay    int
	HasStateDay bool
	Today       bool
	Dimmed      bool
	Selected    bool
}

// StateDayLabel renders the cell's state day as "Day N" or "—".
func (c Cell) StateDayLabel() string {
	if !c.HasStateDay {
		return "—"
	}
	return fmt.Sprintf("Day %d", c.StateDay)
}

// Calendar is a rendered grid, seven cells per row.
type Calendar struct {
	Title string
	Cells []Cell
	Mode  Mode
}

// Weeks splits the cells into rows of seven.
func (c Calendar) Weeks() [][]Cell {
	var rows [][]Cell
	for i := 0; i < len(c.Cells); i += 7 {
		end := min(i+7, len(c.Cells))
		rows = append(rows, c.Cells[i:end])
	}
	return rows
}

// BuildCalendar lays out the grid for s against the merged dataset.
func BuildCalendar(s State, ds *model.Dataset, now time.Time) Calendar {
	start, n := s.Range()
	todayUTC := calendar.Midnight(now)

	cal := Calendar{Mode: s.Mode, Cells: make([]Cell, 0, n)}
	if s.Mode == ModeWeek {
		cal.Title = fmt.Sprintf("%s → %s", start.Format("Jan 2"), calendar.AddDaysLocal(start, 6).Format("Jan 2, 2006"))
	} else {
		cal.Title = calendar.StartOfMonthLocal(s.Cursor).Format("January 2006")
	}

	for i := 0; i < n; i++ {
		local := calendar.AddDaysLocal(start, i)
		utc := calendar.FromLocalDate(local)

		cell := Cell{
			Date:     local,
			UTCDate:  utc,
			Today:    calendar.SameDay(utc, todayUTC),
			Dimmed:   s.Mode == ModeMonth && local.Month() != s.Cursor.Month(),
			Selected: !s.Selected.IsZero() && calendar.SameDay(calendar.FromLocalDate(s.Selected), utc),
		}
		if sd, ok := stateday.Resolve(utc, s.Anchor, now); ok {
			cell.StateDay = sd
			cell.HasStateDay = true
			cell.Badges = schedule.TopCategories(activeOn(ds, s.Category, utc, sd), MaxBadges)
		}
		cal.Cells = append(cal.Cells, cell)
	}
	return cal
}

// PackCard is a pack offered by an active rule with its purchase status.
type PackCard struct {
	Pack   model.PackDefinition
	Status cooldown.Status
}

// RuleDetail is an active rule and its resolvable packs.
type RuleDetail struct {
	Window string
	Rule   model.ScheduleRule
	Packs  []PackCard
}

// Detail describes a single selected day.
type Detail struct {
	Date        time.Time
	UTCDate     time.Time
	Title       string
	Message     string
	Rules       []RuleDetail
	StateDay    int
	HasStateDay bool
}

// BuildDetail lists what is scheduled on the selected date. Purchase status is
// evaluated for the reset window containing that date.
func BuildDetail(s State, ds *model.Dataset, purchases []model.PurchaseRecord, now time.Time) Detail {
	local := s.Selected
	if local.IsZero() {
		local = calendar.AddDaysLocal(now, 0)
	}
	utc := calendar.FromLocalDate(local)
	long := local.Format("Monday, January 2, 2006")

	d := Detail{Date: local, UTCDate: utc}

	sd, ok := stateday.Resolve(utc, s.Anchor, now)
	if !ok {
		d.Title = long + " · set state start day"
		d.Message = MsgNoStateDay
		return d
	}
	d.StateDay = sd
	d.HasStateDay = true
	d.Title = fmt.Sprintf("%s · State Day %d (UTC reset)", long, sd)

	for _, act := range activeOn(ds, s.Category, utc, sd) {
		rd := RuleDetail{Rule: act.Rule, Window: act.Window}
		for _, p := range schedule.ResolvePacks(ds, act.Rule) {
			rd.Packs = append(rd.Packs, PackCard{Pack: p, Status: cooldown.PurchaseStatus(p, utc, purchases)})
		}
		d.Rules = append(d.Rules, rd)
	}
	if len(d.Rules) == 0 {
		d.Message = MsgNoPacks
	}
	return d
}

// Packs flattens the pack cards of every active rule in display order.
func (d Detail) Packs() []PackCard {
	var out []PackCard
	for _, r := range d.Rules {
		out = append(out, r.Packs...)
	}
	return out
}

func activeOn(ds *model.Dataset, category string, utc time.Time, sd int) []schedule.Activation {
	rng := schedule.PickRange(ds, sd)
	if rng == nil {
		return nil
	}
	return schedule.ActiveRules(schedule.FilterCategory(rng.Rules, category), utc, sd)
}
