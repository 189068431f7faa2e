// Package notify shows transient notices. A Center is constructed once per
// process and passed to whatever needs to surface a message.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/safarshare/safar/internal/common"
)

// DefaultHideAfter is how long a notice stays active.
const DefaultHideAfter = 4 * time.Second

// Level is the severity of a notice.
type Level string

// Notice levels.
const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice is one shown message.
type Notice struct {
	ShownAt time.Time
	Level   Level
	Message string
	ID      int
}

// Formatter renders a notice as one line.
type Formatter func(level Level, message string) string

// PlainFormatter renders "[level] message".
func PlainFormatter(level Level, message string) string {
	return fmt.Sprintf("[%s] %s", level, message)
}

// Notifier is the surface flows use to report outcomes.
type Notifier interface {
	Success(message string) Notice
	Error(message string) Notice
	Info(message string) Notice
}

// Center writes notices and hides each one after a fixed duration.
type Center struct {
	w         io.Writer
	clock     common.Clock
	format    Formatter
	active    map[int]Notice
	timers    map[int]common.Timer
	hideAfter time.Duration
	nextID    int
	closed    bool
	mu        sync.Mutex
}

// Option configures a Center.
type Option func(*Center)

// WithClock sets the clock used for timestamps and auto-hide timers.
func WithClock(clock common.Clock) Option {
	return func(c *Center) { c.clock = clock }
}

// WithHideAfter sets the auto-hide duration.
func WithHideAfter(d time.Duration) Option {
	return func(c *Center) {
		if d > 0 {
			c.hideAfter = d
		}
	}
}

// WithFormatter sets how notices are rendered.
func WithFormatter(f Formatter) Option {
	return func(c *Center) {
		if f != nil {
			c.format = f
		}
	}
}

// NewCenter creates a center writing to w.
func NewCenter(w io.Writer, opts ...Option) *Center {
	c := &Center{
		w:         w,
		clock:     common.SystemClock{},
		format:    PlainFormatter,
		hideAfter: DefaultHideAfter,
		active:    make(map[int]Notice),
		timers:    make(map[int]common.Timer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Success shows a success notice.
func (c *Center) Success(message string) Notice { return c.show(LevelSuccess, message) }

// Error shows an error notice.
func (c *Center) Error(message string) Notice { return c.show(LevelError, message) }

// Info shows an informational notice.
func (c *Center) Info(message string) Notice { return c.show(LevelInfo, message) }

func (c *Center) show(level Level, message string) Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	n := Notice{ID: c.nextID, Level: level, Message: message, ShownAt: c.clock.Now()}

	if c.w != nil {
		if _, err := fmt.Fprintln(c.w, c.format(level, message)); err != nil {
			slog.Debug("failed to write notice", "error", err)
		}
	}
	if c.closed {
		return n
	}

	c.active[n.ID] = n
	id := n.ID
	c.timers[id] = c.clock.AfterFunc(c.hideAfter, func() { c.hide(id) })
	return n
}

func (c *Center) hide(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, id)
	delete(c.timers, id)
}

// Dismiss hides a notice before its timer fires.
func (c *Center) Dismiss(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[id]; ok {
		t.Stop()
	}
	delete(c.active, id)
	delete(c.timers, id)
}

// Active returns the notices still shown, oldest first.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, 0, len(c.active))
	for _, n := range c.active {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Close stops pending timers and hides every notice. Notices shown after
// Close are written but never become active.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.active = make(map[int]Notice)
	c.closed = true
}
