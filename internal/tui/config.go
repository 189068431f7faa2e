package tui

import (
	"time"

	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/notify"
	"github.com/safarshare/safar/internal/tui/themes"
)

// NoticeBoard lists the notices currently on screen.
type NoticeBoard interface {
	Active() []notify.Notice
}

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Notices   NoticeBoard
	Selected  *model.CatalogEntry
	Width     int
	Height    int
	Refresh   time.Duration // redraw interval so notices can expire
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Width:     80,
		Height:    24,
		Refresh:   250 * time.Millisecond,
		AltScreen: true,
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

// WithNotices shows the board's active notices under the form.
func WithNotices(board NoticeBoard) Option {
	return func(c *Config) {
		c.Notices = board
	}
}

// WithSelected sets the catalog entry chosen on the board.
func WithSelected(entry *model.CatalogEntry) Option {
	return func(c *Config) {
		c.Selected = entry
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
