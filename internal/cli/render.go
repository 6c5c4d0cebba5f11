package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/packcal/internal/calendar"
	"github.com/Veraticus/packcal/internal/model"
	"github.com/Veraticus/packcal/internal/view"
	"github.com/charmbracelet/lipgloss"
)

// WeekdayHeaders labels the calendar columns.
var WeekdayHeaders = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RenderCalendar draws the grid as rows of fixed-width cells under a title.
func RenderCalendar(cal view.Calendar) string {
	header := make([]string, 0, len(WeekdayHeaders))
	for _, d := range WeekdayHeaders {
		header = append(header, SubtleStyle.Width(CellWidth).PaddingRight(1).Render(d))
	}

	rows := []string{
		FormatTitle(cal.Title),
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
	}
	for _, week := range cal.Weeks() {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			cells = append(cells, RenderCell(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderCell draws one day: the date and state day, then its category badges.
func RenderCell(c view.Cell) string {
	style := CellStyle
	switch {
	case c.Selected:
		style = SelectedCellStyle
	case c.Today:
		style = TodayCellStyle
	case c.Dimmed:
		style = DimCellStyle
	}

	top := fmt.Sprintf("%-3d%*s", c.Date.Day(), CellWidth-4, c.StateDayLabel())

	badges := make([]string, 0, len(c.Badges))
	used := 0
	for i, b := range c.Badges {
		text := truncate(b, CellWidth-1-used)
		if text == "" {
			break
		}
		used += len([]rune(text)) + 1
		if i == 0 {
			badges = append(badges, HighBadgeStyle.Render(text))
		} else {
			badges = append(badges, BadgeStyle.Render(text))
		}
	}

	return style.Render(top + "\n" + strings.Join(badges, " "))
}

// RenderDetail draws the selected day: a title, then each active rule with its
// pack cards.
func RenderDetail(d view.Detail) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(d.Title))
	b.WriteString("\n")

	if d.Message != "" {
		b.WriteString(SubtleStyle.Render(d.Message))
		b.WriteString("\n")
		return b.String()
	}

	for _, r := range d.Rules {
		b.WriteString(RenderRuleHeader(r))
		for _, card := range r.Packs {
			b.WriteString(RenderPackCard(card))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderRuleHeader draws an active rule's title, category, window and pack count.
func RenderRuleHeader(r view.RuleDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render(r.Rule.DisplayTitle()), HighBadgeStyle.Render("["+r.Rule.CategoryName()+"]"))
	fmt.Fprintf(&b, "  Active window: %s\n", r.Window)
	fmt.Fprintf(&b, "  Packs: %d\n", len(r.Packs))
	return b.String()
}

// RenderPackCard draws a pack with its contents and purchase status.
func RenderPackCard(card view.PackCard) string {
	p := card.Pack
	var b strings.Builder

	name := PackIcon + " " + BoldStyle.Render(p.Name)
	if price := FormatPrice(p.Price); price != "" {
		name += "  " + SubtleStyle.Render(price)
	}
	fmt.Fprintf(&b, "  %s  %s\n", name, BadgeStyle.Render("["+string(p.ResetPolicy().Type)+"]"))

	if p.Description != "" {
		fmt.Fprintf(&b, "    %s\n", p.Description)
	}
	for _, line := range GivesLines(p) {
		fmt.Fprintf(&b, "    %s\n", line)
	}

	st := card.Status
	status := SuccessStyle.Render("AVAILABLE")
	if !st.Available && st.NextReset != nil {
		status = ErrorStyle.Render(LockIcon+" LOCKED") + " until " + calendar.FormatBoundary(*st.NextReset) + " UTC"
	}
	fmt.Fprintf(&b, "    Purchases this period: %d/%d · %s\n", st.Used, st.Limit, status)
	return b.String()
}

// GivesLines lists the fixed contents and the choose pool of a pack.
func GivesLines(p model.PackDefinition) []string {
	var lines []string
	if len(p.Gives) > 0 {
		lines = append(lines, "Includes:")
		for _, g := range p.Gives {
			lines = append(lines, fmt.Sprintf("  • %s x%s", g.Item, g.Qty))
		}
	}
	if p.IsChoose() {
		lines = append(lines, fmt.Sprintf("Choose %d:", p.Choose.Count))
		for _, c := range p.Choose.Pool {
			lines = append(lines, fmt.Sprintf("  • %s x%s", c.Item, c.Qty))
		}
	}
	return lines
}

// FormatPrice renders a price as "$4.99"; nil renders as "".
func FormatPrice(price *float64) string {
	if price == nil {
		return ""
	}
	return "$" + strconv.FormatFloat(*price, 'f', -1, 64)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
