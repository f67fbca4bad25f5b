package categories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/bridge/internal/common"
	"github.com/dmitrijs2005/bridge/internal/logging"
	"github.com/dmitrijs2005/bridge/internal/models"
	"github.com/dmitrijs2005/bridge/internal/settings"
)

// Key is the settings key holding the JSON-encoded category list.
const Key = "savedCategories"

var errNullBlob = errors.New("category blob is null")

// Store holds the ordered category set. Callers receive copies.
type Store struct {
	settings settings.Store
	log      logging.Logger
	rules    []Rule

	mu        sync.Mutex
	items     []models.Category
	listeners []func([]models.Category)
}

type Option func(*Store)

// WithRules replaces the migration rules applied by Load.
func WithRules(rules ...Rule) Option {
	return func(s *Store) { s.rules = rules }
}

// NewStore returns a store seeded with the defaults. Call Load to read the
// persisted set.
func NewStore(st settings.Store, log logging.Logger, opts ...Option) *Store {
	if log == nil {
		log = logging.Nop()
	}
	s := &Store{
		settings: st,
		log:      log.With("component", "categories"),
		rules:    LegacyRules(),
		items:    models.DefaultCategories(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads the persisted set and migrates it. A missing or unreadable
// blob yields the defaults without writing. A migrated set is written back
// before Load returns, so a second Load with no external change writes
// nothing.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	items, changed := s.load(ctx)
	s.items = items
	if changed {
		s.persistLocked(ctx)
	}
	snapshot := slices.Clone(s.items)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	notify(listeners, snapshot)
}

func (s *Store) load(ctx context.Context) ([]models.Category, bool) {
	blob, err := s.settings.Get(ctx, Key)
	if err != nil {
		s.log.Warn(ctx, "category blob unreadable, using defaults", "key", Key, "error", err)
		return models.DefaultCategories(), false
	}
	if blob == nil {
		s.log.Debug(ctx, "no saved categories, using defaults", "key", Key)
		return models.DefaultCategories(), false
	}

	decoded, err := decode(blob)
	if err != nil {
		s.log.Warn(ctx, "category blob malformed, using defaults", "key", Key, "error", err)
		return models.DefaultCategories(), false
	}

	migrated, changed := Compose(s.rules...)(decoded)
	if changed {
		s.log.Info(ctx, "categories migrated", "before", len(decoded), "after", len(migrated))
	}
	if len(migrated) == 0 {
		return models.DefaultCategories(), true
	}
	return migrated, changed
}

func decode(blob []byte) ([]models.Category, error) {
	var items []models.Category
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errNullBlob
	}
	return items, nil
}

// List returns a copy of the current set in display order.
func (s *Store) List() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Get returns the category with the given id.
func (s *Store) Get(id string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexByID(id); i >= 0 {
		return s.items[i], nil
	}
	return models.Category{}, fmt.Errorf("category %s: %w", id, common.ErrorNotFound)
}

// Resolve returns the category with the given id, or the first category
// when it no longer exists.
func (s *Store) Resolve(id string) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexByID(id); i >= 0 {
		return s.items[i]
	}
	return s.items[0]
}

func (s *Store) indexByID(id string) int {
	return slices.IndexFunc(s.items, func(c models.Category) bool { return c.ID == id })
}

// Add appends a new category with a fresh id and persists the set. Names
// are not checked for emptiness or uniqueness.
func (s *Store) Add(ctx context.Context, name, icon, colorHex string) models.Category {
	c := models.NewCategory(name, icon, colorHex)
	s.mutate(ctx, func(items []models.Category) []models.Category {
		return append(items, c)
	})
	return c
}

// Update edits the category with the given id in place.
func (s *Store) Update(ctx context.Context, id, name, icon, colorHex string) error {
	var found bool
	s.mutate(ctx, func(items []models.Category) []models.Category {
		i := slices.IndexFunc(items, func(c models.Category) bool { return c.ID == id })
		if i < 0 {
			return nil
		}
		found = true
		items[i].Name = name
		items[i].IconName = icon
		items[i].ColorHex = colorHex
		return items
	})
	if !found {
		return fmt.Errorf("category %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

// Delete removes the categories at the given positions. Out-of-range and
// repeated positions are ignored. If nothing is left the defaults are
// restored. The set is persisted in every case.
func (s *Store) Delete(ctx context.Context, positions ...int) {
	s.mutate(ctx, func(items []models.Category) []models.Category {
		drop := make(map[int]struct{}, len(positions))
		for _, p := range positions {
			drop[p] = struct{}{}
		}
		kept := items[:0]
		for i, c := range items {
			if _, ok := drop[i]; !ok {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			s.log.Info(ctx, "last category deleted, restoring defaults")
			return models.DefaultCategories()
		}
		return kept
	})
}

// OnChange registers fn to receive a copy of the set after every change,
// including reloads.
func (s *Store) OnChange(fn func([]models.Category)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// mutate applies fn to a private copy of the set, persists and notifies.
// fn returning nil leaves the store untouched.
func (s *Store) mutate(ctx context.Context, fn func([]models.Category) []models.Category) {
	s.mu.Lock()
	next := fn(slices.Clone(s.items))
	if next == nil {
		s.mu.Unlock()
		return
	}
	s.items = next
	s.persistLocked(ctx)
	snapshot := slices.Clone(s.items)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	notify(listeners, snapshot)
}

// persistLocked writes the set. Failures are logged; the in-memory set stays
// authoritative.
func (s *Store) persistLocked(ctx context.Context) {
	blob, err := json.Marshal(s.items)
	if err != nil {
		s.log.Error(ctx, "encode categories failed", "error", err)
		return
	}
	if err := s.settings.Set(ctx, Key, blob); err != nil {
		s.log.Error(ctx, "persist categories failed", "key", Key, "error", err)
	}
}

func notify(listeners []func([]models.Category), items []models.Category) {
	for _, fn := range listeners {
		fn(slices.Clone(items))
	}
}
