// Package cooldown computes reset windows and purchase availability for packs.
//
// Nothing here caches window state: the window containing "now" shifts as time
// advances and the purchase log is append-only, so every call recomputes.
package cooldown

import (
	"time"

	"github.com/Veraticus/packcal/internal/calendar"
	"github.com/Veraticus/packcal/internal/model"
)

// Window is a half-open UTC interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Status is the purchase state of a pack in its current reset window.
type Status struct {
	NextReset *time.Time
	Window    Window
	Used      int
	Limit     int
	Available bool
}

// Period returns the reset window of policy that contains now's UTC day.
// Unknown reset types fall back to a daily window.
func Period(policy model.ResetPolicy, now time.Time) Window {
	day := calendar.Midnight(now)

	switch policy.Type {
	case model.ResetWeekly:
		start := calendar.StartOfWeekWindow(day, policy.WeekStart())
		return Window{Start: start, End: calendar.AddDays(start, 7)}

	case model.ResetMonthly:
		return Window{Start: calendar.FirstOfMonth(day), End: calendar.FirstOfNextMonth(day)}

	default:
		return Window{Start: day, End: calendar.AddDays(day, 1)}
	}
}

// CountInWindow counts purchases of packID whose timestamp lies in w.
func CountInWindow(packID string, w Window, purchases []model.PurchaseRecord) int {
	start, end := w.Start.UnixMilli(), w.End.UnixMilli()
	used := 0
	for _, p := range purchases {
		if p.PackID == packID && p.TimestampMs >= start && p.TimestampMs < end {
			used++
		}
	}
	return used
}

// PurchaseStatus evaluates pack against the purchase log for the reset window
// containing now. NextReset is nil while the pack is still available.
func PurchaseStatus(pack model.PackDefinition, now time.Time, purchases []model.PurchaseRecord) Status {
	w := Period(pack.ResetPolicy(), now)
	limit := pack.Limit()
	used := CountInWindow(pack.ID, w, purchases)

	st := Status{
		Window:    w,
		Used:      used,
		Limit:     limit,
		Available: used < limit,
	}
	if !st.Available {
		end := w.End
		st.NextReset = &end
	}
	return st
}
