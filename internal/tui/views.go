package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/packcal/internal/calendar"
	"github.com/Veraticus/packcal/internal/cli"
	"github.com/Veraticus/packcal/internal/schedule"
	"github.com/Veraticus/packcal/internal/stateday"
	"github.com/Veraticus/packcal/internal/tui/themes"
	"github.com/Veraticus/packcal/internal/view"
	"github.com/charmbracelet/lipgloss"
)

// wideLayout is the width at which calendar and detail sit side by side.
const wideLayout = 120

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.theme.StatusPending.Render("Loading purchases...")
	}

	now := m.now()
	cal := cli.RenderCalendar(view.BuildCalendar(m.state, m.dataset, now))
	detail := m.renderDetail(view.BuildDetail(m.state, m.dataset, m.purchases, now))

	var body string
	if m.width >= wideLayout {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.theme.FocusedPanel.Render(cal),
			m.theme.Panel.Width(max(m.width-lipgloss.Width(cal)-6, 40)).Render(detail),
		)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.theme.FocusedPanel.Render(cal),
			m.theme.Panel.Render(detail),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatus(),
		m.help.View(m.keymap),
	)
}

func (m Model) renderHeader() string {
	now := m.now()
	title := m.theme.Title.Render(cli.CalendarIcon + " packcal")

	day := "No state day set"
	if sd, ok := stateday.Resolve(calendar.Midnight(now), m.state.Anchor, now); ok {
		day = fmt.Sprintf("Today is State Day %d", sd)
	}

	category := m.state.Category
	if category != schedule.AllCategories {
		category = themes.GetCategoryIcon(category) + " " + category
	}

	sub := m.theme.Subtitle.Render(fmt.Sprintf("%s · Category: %s · %s view", day, category, m.state.Mode))
	return title + "  " + sub
}

// renderDetail draws the selected day with the highlighted pack marked.
func (m Model) renderDetail(d view.Detail) string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(d.Title))
	b.WriteString("\n\n")

	if d.Message != "" {
		b.WriteString(m.theme.Subtitle.Render(d.Message))
		return b.String()
	}

	idx := 0
	for _, r := range d.Rules {
		b.WriteString(themes.GetCategoryIcon(r.Rule.CategoryName()) + " " + cli.RenderRuleHeader(r))
		for _, card := range r.Packs {
			text := cli.RenderPackCard(card)
			if idx == m.packCursor {
				text = m.theme.Selected.Render("▸") + strings.TrimPrefix(text, " ")
			}
			b.WriteString(text)
			idx++
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.lastError != nil {
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + m.status)
	}
	return m.theme.StatusInfo.Render(m.status)
}
