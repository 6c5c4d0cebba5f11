package tui

import (
	"time"

	"github.com/Veraticus/packcal/internal/model"
	"github.com/Veraticus/packcal/internal/service"
	"github.com/Veraticus/packcal/internal/stateday"
	"github.com/Veraticus/packcal/internal/tui/themes"
	"github.com/Veraticus/packcal/internal/view"
)

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Storage  service.Storage
	Dataset  *model.Dataset
	Clock    func() time.Time
	Anchor   stateday.Anchor
	Category string
	Width    int
	Height   int
	Mode     view.Mode
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Clock:    time.Now,
		Width:    80,
		Height:   24,
		ShowHelp: true,
	}
}

// WithStorage sets the storage service.
func WithStorage(storage service.Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithDataset sets the merged dataset to display.
func WithDataset(ds *model.Dataset) Option {
	return func(c *Config) {
		c.Dataset = ds
	}
}

// WithAnchor sets the state-day anchor.
func WithAnchor(anchor stateday.Anchor) Option {
	return func(c *Config) {
		c.Anchor = anchor
	}
}

// WithCategory sets the initial category filter.
func WithCategory(category string) Option {
	return func(c *Config) {
		c.Category = category
	}
}

// WithMode sets the initial calendar layout.
func WithMode(mode view.Mode) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}
