// Package tui provides the interactive calendar built on bubbletea.
package tui

import (
	"fmt"
	"time"

	"github.com/Veraticus/packcal/internal/calendar"
	"github.com/Veraticus/packcal/internal/cooldown"
	"github.com/Veraticus/packcal/internal/model"
	"github.com/Veraticus/packcal/internal/schedule"
	"github.com/Veraticus/packcal/internal/tui/themes"
	"github.com/Veraticus/packcal/internal/view"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the main TUI state.
type Model struct {
	lastError  error
	theme      themes.Theme
	dataset    *model.Dataset
	state      view.State
	status     string
	help       help.Model
	config     Config
	keymap     KeyMap
	categories []string
	purchases  []model.PurchaseRecord
	packCursor int
	height     int
	width      int
	quitting   bool
	ready      bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	now := cfg.Clock()
	state := view.NewState(now, cfg.Anchor).
		WithMode(cfg.Mode).
		WithCategory(cfg.Category)

	h := help.New()
	h.ShowAll = cfg.ShowHelp
	h.Width = cfg.Width

	return Model{
		config:     cfg,
		keymap:     DefaultKeyMap(),
		theme:      cfg.Theme,
		help:       h,
		dataset:    cfg.Dataset,
		state:      state,
		categories: schedule.Categories(cfg.Dataset),
		purchases:  []model.PurchaseRecord{},
		width:      cfg.Width,
		height:     cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.loadPurchases()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case purchasesLoadedMsg:
		m.ready = true
		if msg.err != nil {
			m.setError(fmt.Errorf("failed to load purchases: %w", msg.err))
			return m, nil
		}
		m.purchases = msg.purchases

	case purchaseRecordedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("failed to record purchase of %s: %w", msg.pack.Name, msg.err))
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Recorded purchase of %s", msg.pack.Name))
		return m, m.loadPurchases()
	}

	return m, nil
}

// handleKey applies a key press to the calendar state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Left):
		m.moveSelection(-1)
	case key.Matches(msg, m.keymap.Right):
		m.moveSelection(1)
	case key.Matches(msg, m.keymap.Up):
		m.moveSelection(-7)
	case key.Matches(msg, m.keymap.Down):
		m.moveSelection(7)

	case key.Matches(msg, m.keymap.PrevPage):
		m.state = m.state.Prev()
	case key.Matches(msg, m.keymap.NextPage):
		m.state = m.state.Next()
	case key.Matches(msg, m.keymap.Today):
		m.state = m.state.Today(m.now())
		m.packCursor = 0

	case key.Matches(msg, m.keymap.ToggleView):
		m.state = m.state.ToggleMode()
	case key.Matches(msg, m.keymap.Category):
		m.state = m.state.CycleCategory(m.categories)
		m.packCursor = 0
		m.setStatus("Category: " + m.state.Category)

	case key.Matches(msg, m.keymap.NextPack):
		m.movePack(1)
	case key.Matches(msg, m.keymap.PrevPack):
		m.movePack(-1)
	case key.Matches(msg, m.keymap.Buy):
		return m.buySelected()

	case key.Matches(msg, m.keymap.Refresh):
		return m, m.loadPurchases()
	}

	return m, nil
}

func (m *Model) moveSelection(days int) {
	m.state = m.state.MoveSelection(days)
	m.packCursor = 0
}

func (m *Model) movePack(delta int) {
	n := len(m.detail().Packs())
	if n == 0 {
		m.packCursor = 0
		return
	}
	m.packCursor = ((m.packCursor+delta)%n + n) % n
}

// buySelected records a purchase of the highlighted pack if its current
// reset window still has room.
func (m Model) buySelected() (tea.Model, tea.Cmd) {
	card, ok := m.selectedPack()
	if !ok {
		m.setStatus("No pack selected")
		return m, nil
	}

	now := m.now()
	st := cooldown.PurchaseStatus(card.Pack, now, m.purchases)
	if !st.Available {
		msg := fmt.Sprintf("%s is locked (%d/%d this period)", card.Pack.Name, st.Used, st.Limit)
		if st.NextReset != nil {
			msg += " until " + calendar.FormatBoundary(*st.NextReset) + " UTC"
		}
		m.setStatus(msg)
		return m, nil
	}

	return m, m.recordPurchase(card.Pack, now)
}

func (m Model) selectedPack() (view.PackCard, bool) {
	packs := m.detail().Packs()
	if m.packCursor < 0 || m.packCursor >= len(packs) {
		return view.PackCard{}, false
	}
	return packs[m.packCursor], true
}

func (m Model) detail() view.Detail {
	return view.BuildDetail(m.state, m.dataset, m.purchases, m.now())
}

func (m Model) now() time.Time {
	return m.config.Clock()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.lastError = nil
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.lastError = err
}
