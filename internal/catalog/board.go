package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/safarshare/safar/internal/common"
	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/notify"
)

// Board errors.
var (
	ErrUnknownEntry  = errors.New("unknown catalog entry")
	ErrNoCapacity    = errors.New("no capacity left")
	ErrAlreadyJoined = errors.New("already joined")
)

// JoinLog persists join actions.
type JoinLog interface {
	AppendJoin(ctx context.Context, key string, entry *model.JoinEntry) error
}

// JoinCounter reports how often entries of a kind were joined before.
type JoinCounter interface {
	JoinCounts(ctx context.Context, key string, kind model.CatalogKind) (map[int]int, error)
}

// BoardOptions wires a Board's collaborators. Every field is optional.
type BoardOptions struct {
	Log      JoinLog
	Counter  JoinCounter
	Notifier notify.Notifier
	Clock    common.Clock
	LogKey   string
}

// Board is the in-memory view of one catalog: remaining capacity, the
// selected entry and which entries were joined. Only the join log
// outlives it.
type Board struct {
	kind     model.CatalogKind
	log      JoinLog
	notifier notify.Notifier
	clock    common.Clock
	joined   map[int]bool
	logKey   string
	entries  []model.CatalogEntry
	selected int
	mu       sync.Mutex
}

// NewBoard loads src into a board. With a Counter, capacity is reduced by
// earlier joins recorded under LogKey, never below zero.
func NewBoard(ctx context.Context, src Source, opts BoardOptions) (*Board, error) {
	entries, err := src.Entries(ctx)
	if err != nil {
		return nil, err
	}
	b := &Board{
		kind:     src.Kind(),
		entries:  cloneEntries(entries),
		log:      opts.Log,
		logKey:   opts.LogKey,
		notifier: opts.Notifier,
		clock:    opts.Clock,
		joined:   make(map[int]bool),
	}
	if b.clock == nil {
		b.clock = common.SystemClock{}
	}

	if opts.Counter != nil && opts.LogKey != "" {
		counts, err := opts.Counter.JoinCounts(ctx, opts.LogKey, b.kind)
		if err != nil {
			return nil, fmt.Errorf("failed to load join history: %w", err)
		}
		for i := range b.entries {
			e := &b.entries[i]
			n := counts[e.ID]
			if n == 0 {
				continue
			}
			b.joined[e.ID] = true
			e.Joined += n
			e.Capacity = max(e.Capacity-n, 0)
		}
	}
	return b, nil
}

// Kind returns the board's catalog kind.
func (b *Board) Kind() model.CatalogKind { return b.kind }

// Entries returns every entry with its current capacity.
func (b *Board) Entries() []model.CatalogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneEntries(b.entries)
}

// Visible returns the entries matching f.
func (b *Board) Visible(f Filter) []model.CatalogEntry {
	return Apply(b.Entries(), f)
}

func (b *Board) find(id int) (*model.CatalogEntry, bool) {
	for i := range b.entries {
		if b.entries[i].ID == id {
			return &b.entries[i], true
		}
	}
	return nil, false
}

// Entry returns the entry with the given id.
func (b *Board) Entry(id int) (model.CatalogEntry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.find(id)
	if !ok {
		return model.CatalogEntry{}, false
	}
	return *e, true
}

// Select makes id the single selected entry, replacing any previous one.
func (b *Board) Select(id int) (model.CatalogEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.find(id)
	if !ok {
		return model.CatalogEntry{}, fmt.Errorf("%w: %s %d", ErrUnknownEntry, b.kind, id)
	}
	b.selected = id
	slog.Debug("Selected catalog entry", "kind", b.kind, "id", id)
	return *e, nil
}

// Selected returns the selected entry, if any.
func (b *Board) Selected() (model.CatalogEntry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selected == 0 {
		return model.CatalogEntry{}, false
	}
	e, ok := b.find(b.selected)
	if !ok {
		return model.CatalogEntry{}, false
	}
	return *e, true
}

// ClearSelection drops the selection.
func (b *Board) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = 0
}

// CanJoin reports whether the entry has capacity and was not joined yet.
func (b *Board) CanJoin(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.find(id)
	return ok && e.Capacity > 0 && !b.joined[id]
}

// Join takes one unit of capacity from an entry and records the join.
// Joining at zero capacity is rejected with a notice and leaves capacity
// at zero.
func (b *Board) Join(ctx context.Context, id int) (model.CatalogEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.find(id)
	if !ok {
		return model.CatalogEntry{}, fmt.Errorf("%w: %s %d", ErrUnknownEntry, b.kind, id)
	}
	if e.Capacity <= 0 {
		b.notice(false, "No seats available for this commute")
		return *e, fmt.Errorf("%w: %s %d", ErrNoCapacity, b.kind, id)
	}
	if b.joined[id] {
		b.notice(false, fmt.Sprintf("You already joined %s's commute", e.Name))
		return *e, fmt.Errorf("%w: %s %d", ErrAlreadyJoined, b.kind, id)
	}

	if b.log != nil && b.logKey != "" {
		entry := &model.JoinEntry{
			Kind:      b.kind,
			EntryID:   e.ID,
			EntryName: e.Name,
			Price:     e.Price,
			JoinedAt:  b.clock.Now(),
		}
		if err := b.log.AppendJoin(ctx, b.logKey, entry); err != nil {
			return *e, fmt.Errorf("failed to record join: %w", err)
		}
	}

	e.Capacity--
	e.Joined++
	b.joined[id] = true
	b.notice(true, fmt.Sprintf("Successfully joined %s's commute!", e.Name))
	return *e, nil
}

func (b *Board) notice(ok bool, msg string) {
	if b.notifier == nil {
		return
	}
	if ok {
		b.notifier.Success(msg)
	} else {
		b.notifier.Error(msg)
	}
}
