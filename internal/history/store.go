// Package history keeps the bounded, most-recent-first log of completed
// captures.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/bridge/internal/logging"
	"github.com/dmitrijs2005/bridge/internal/models"
	"github.com/dmitrijs2005/bridge/internal/settings"
)

const (
	// Key is the settings key holding the JSON-encoded log.
	Key = "savedHistory"
	// MaxEntries caps the log; older entries fall off the tail.
	MaxEntries = 50
)

var errNullBlob = errors.New("history blob is null")

type Store struct {
	settings settings.Store
	log      logging.Logger
	now      func() time.Time

	mu        sync.Mutex
	entries   []models.HistoryEntry
	listeners []func([]models.HistoryEntry)
}

type Option func(*Store)

// WithClock sets the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(st settings.Store, log logging.Logger, opts ...Option) *Store {
	if log == nil {
		log = logging.Nop()
	}
	s := &Store{
		settings: st,
		log:      log.With("component", "history"),
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads the persisted log. A missing or unreadable blob yields an
// empty log. Nothing is written.
func (s *Store) Load(ctx context.Context) {
	entries := s.load(ctx)

	s.mu.Lock()
	s.entries = entries
	snapshot := slices.Clone(s.entries)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	notify(listeners, snapshot)
}

func (s *Store) load(ctx context.Context) []models.HistoryEntry {
	blob, err := s.settings.Get(ctx, Key)
	if err != nil {
		s.log.Warn(ctx, "history blob unreadable, starting empty", "key", Key, "error", err)
		return nil
	}
	if blob == nil {
		return nil
	}

	entries, err := decode(blob)
	if err != nil {
		s.log.Warn(ctx, "history blob malformed, starting empty", "key", Key, "error", err)
		return nil
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

func decode(blob []byte) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, errNullBlob
	}
	return entries, nil
}

// Append records a capture at the head of the log, trims the tail to
// MaxEntries and persists. The category fields are stored as given.
func (s *Store) Append(ctx context.Context, title, categoryName, categoryColorHex string) models.HistoryEntry {
	e := models.NewHistoryEntry(title, categoryName, categoryColorHex, s.now())

	s.mu.Lock()
	next := make([]models.HistoryEntry, 0, min(len(s.entries)+1, MaxEntries))
	next = append(next, e)
	next = append(next, s.entries[:min(len(s.entries), MaxEntries-1)]...)
	s.entries = next
	s.persistLocked(ctx)
	snapshot := slices.Clone(s.entries)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	notify(listeners, snapshot)
	return e
}

// Clear empties the log and persists the empty state.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.entries = []models.HistoryEntry{}
	s.persistLocked(ctx)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	notify(listeners, nil)
}

// List returns a copy of the log, most recent first.
func (s *Store) List() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// OnChange registers fn to receive a copy of the log after every change.
func (s *Store) OnChange(fn func([]models.HistoryEntry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) persistLocked(ctx context.Context) {
	entries := s.entries
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	blob, err := json.Marshal(entries)
	if err != nil {
		s.log.Error(ctx, "encode history failed", "error", err)
		return
	}
	if err := s.settings.Set(ctx, Key, blob); err != nil {
		s.log.Error(ctx, "persist history failed", "key", Key, "error", err)
	}
}

func notify(listeners []func([]models.HistoryEntry), entries []models.HistoryEntry) {
	for _, fn := range listeners {
		fn(slices.Clone(entries))
	}
}
