package categories

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/bridge/internal/common"
	"github.com/dmitrijs2005/bridge/internal/logging"
	"github.com/dmitrijs2005/bridge/internal/models"
	"github.com/dmitrijs2005/bridge/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a memory repository and counts writes.
type countingStore struct {
	*settings.MemoryRepository
	mu      sync.Mutex
	writes  int
	failSet error
	failGet error
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryRepository: settings.NewMemoryRepository()}
}

func (c *countingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if c.failGet != nil {
		return nil, c.failGet
	}
	return c.MemoryRepository.Get(ctx, key)
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	c.writes++
	c.mu.Unlock()
	if c.failSet != nil {
		return c.failSet
	}
	return c.MemoryRepository.Set(ctx, key, value)
}

func (c *countingStore) writeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}

func seed(t *testing.T, st settings.Store, items []models.Category) {
	t.Helper()
	b, err := json.Marshal(items)
	require.NoError(t, err)
	require.NoError(t, st.Set(context.Background(), Key, b))
}

func persisted(t *testing.T, st settings.Store) []models.Category {
	t.Helper()
	b, err := st.Get(context.Background(), Key)
	require.NoError(t, err)
	require.NotNil(t, b)
	var out []models.Category
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestLoad_FreshInstallUsesDefaultsWithoutWriting(t *testing.T) {
	st := newCountingStore()
	s := NewStore(st, logging.Nop())
	s.Load(context.Background())

	requireSameContent(t, models.DefaultCategories(), s.List())
	assert.Zero(t, st.writeCount())
}

func TestLoad_MalformedBlobFallsBack(t *testing.T) {
	for name, blob := range map[string]string{
		"garbage":       "{not json",
		"null":          "null",
		"missing field": `[{"id":"1","name":"Care","iconName":"heart.fill"}]`,
		"wrong type":    `{"id":"1"}`,
	} {
		t.Run(name, func(t *testing.T) {
			st := newCountingStore()
			require.NoError(t, st.MemoryRepository.Set(context.Background(), Key, []byte(blob)))

			s := NewStore(st, logging.Nop())
			s.Load(context.Background())
			requireSameContent(t, models.DefaultCategories(), s.List())
			assert.Zero(t, st.writeCount())
		})
	}
}

func TestLoad_ReadErrorFallsBack(t *testing.T) {
	st := newCountingStore()
	st.failGet = errors.New("disk gone")

	s := NewStore(st, logging.Nop())
	s.Load(context.Background())
	assert.Len(t, s.List(), 13)
}

func TestLoad_MigratesAndPersistsOnce(t *testing.T) {
	st := newCountingStore()
	legacy := []models.Category{
		cat("1", "Care", "heart.fill", "#FF2D55"),
		cat("2", "Move", "car.fill", "#34C759"),
		cat("3", "Housekeep", "house.fill", "#FF9500"),
		cat("4", "Administer", "doc.text.fill", "#AF52DE"),
		cat("5", "Entertain", "tv.fill", "#FFCC00"),
	}
	require.NoError(t, st.MemoryRepository.Set(context.Background(), Key, mustJSON(t, legacy)))

	s := NewStore(st, logging.Nop())
	s.Load(context.Background())
	require.Equal(t, 1, st.writeCount())

	got := s.List()
	assert.Equal(t, []string{
		"Care", "Move", "Housekeeping", "Admin", "Entertainment",
		"Groceries", "Medications", "Personal", "Appointments", "Meetings",
	}, names(got))
	assert.Equal(t, "archivebox.fill", got[1].IconName)
	assert.Equal(t, got, persisted(t, st))

	// a second load finds nothing to do
	s2 := NewStore(st, logging.Nop())
	s2.Load(context.Background())
	assert.Equal(t, 1, st.writeCount())
	assert.Equal(t, got, s2.List())
}

func TestLoad_RoundTripWithoutPendingRules(t *testing.T) {
	st := newCountingStore()
	s := NewStore(st, logging.Nop())
	s.Add(context.Background(), "Garden", "leaf.fill", "#00FF00")
	want := s.List()

	s2 := NewStore(st, logging.Nop())
	s2.Load(context.Background())
	assert.Equal(t, want, s2.List())
}

func TestLoad_EmptyResultRestoresDefaults(t *testing.T) {
	st := newCountingStore()
	seed(t, st, []models.Category{})

	s := NewStore(st, logging.Nop(), WithRules())
	s.Load(context.Background())
	requireSameContent(t, models.DefaultCategories(), s.List())
	assert.Equal(t, s.List(), persisted(t, st))
}

func TestAdd_AppendsWithFreshIDAndPersists(t *testing.T) {
	st := newCountingStore()
	s := NewStore(st, logging.Nop())
	s.Load(context.Background())

	a := s.Add(context.Background(), "Garden", "leaf.fill", "#00FF00")
	b := s.Add(context.Background(), "Garden", "leaf.fill", "#00FF00")
	assert.NotEqual(t, a.ID, b.ID)

	list := s.List()
	require.Len(t, list, 15)
	assert.Equal(t, a, list[13])
	assert.Equal(t, b, list[14])
	assert.Equal(t, list, persisted(t, st))
}

func TestUpdate(t *testing.T) {
	st := newCountingStore()
	s := NewStore(st, logging.Nop())
	c := s.Add(context.Background(), "Gardn", "leaf", "#00FF00")

	require.NoError(t, s.Update(context.Background(), c.ID, "Garden", "leaf.fill", "#00AA00"))
	got, err := s.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Category{ID: c.ID, Name: "Garden", IconName: "leaf.fill", ColorHex: "#00AA00"}, got)

	writes := st.writeCount()
	err = s.Update(context.Background(), "missing", "x", "y", "z")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, writes, st.writeCount())
}

func TestGetAndResolve(t *testing.T) {
	s := NewStore(newCountingStore(), logging.Nop())

	_, err := s.Get("nope")
	require.ErrorIs(t, err, common.ErrorNotFound)

	assert.Equal(t, "Care", s.Resolve("nope").Name)
	care := s.List()[0]
	radar := s.List()[7]
	assert.Equal(t, radar, s.Resolve(radar.ID))
	assert.Equal(t, care, s.Resolve(""))
}

func TestDelete_Bulk(t *testing.T) {
	st := newCountingStore()
	s := NewStore(st, logging.Nop())

	s.Delete(context.Background(), 12, 0, 0, 99, -1)
	got := s.List()
	require.Len(t, got, 11)
	assert.Equal(t, "Order", got[0].Name)
	assert.Equal(t, "Appointments", got[10].Name)
	assert.Equal(t, got, persisted(t, st))
}

func TestDelete_AllRestoresDefaults(t *testing.T) {
	st := newCountingStore()
	s := NewStore(st, logging.Nop())
	s.Load(context.Background())

	all := make([]int, len(s.List()))
	for i := range all {
		all[i] = i
	}
	s.Delete(context.Background(), all...)

	requireSameContent(t, models.DefaultCategories(), s.List())
	assert.Equal(t, s.List(), persisted(t, st))
}

func TestDelete_AllDoesNotReuseIDs(t *testing.T) {
	st := newCountingStore()
	s := NewStore(st, logging.Nop())
	s.Load(context.Background())
	s.Add(context.Background(), "Garden", "leaf.fill", "#00FF00")

	before := s.List()
	all := make([]int, len(before))
	for i := range all {
		all[i] = i
	}
	s.Delete(context.Background(), all...)

	old := ids(before)
	for _, c := range s.List() {
		assert.NotContains(t, old, c.ID, "%s reuses a deleted id", c.Name)
	}
}

func TestDelete_BackfilledDefaultGetsNewID(t *testing.T) {
	st := newCountingStore()
	s := NewStore(st, logging.Nop())
	s.Load(context.Background())

	groceries := s.List()[8]
	require.Equal(t, "Groceries", groceries.Name)
	s.Delete(context.Background(), 8)
	deleted := ids([]models.Category{groceries})

	s2 := NewStore(st, logging.Nop())
	s2.Load(context.Background())
	list := s2.List()
	require.Len(t, list, 13)
	back := list[12]
	assert.Equal(t, "Groceries", back.Name)
	assert.NotContains(t, deleted, back.ID)
	for _, c := range list {
		assert.NotEqual(t, groceries.ID, c.ID)
	}

	// the backfilled id is persisted, so it is stable from now on
	s3 := NewStore(st, logging.Nop())
	s3.Load(context.Background())
	assert.Equal(t, list, s3.List())
}

func TestDelete_NoValidPositionsStillPersists(t *testing.T) {
	st := newCountingStore()
	s := NewStore(st, logging.Nop())
	s.Delete(context.Background())
	assert.Equal(t, 1, st.writeCount())
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	st := newCountingStore()
	st.failSet = errors.New("read-only")
	s := NewStore(st, logging.Nop())

	c := s.Add(context.Background(), "Garden", "leaf.fill", "#00FF00")
	assert.Equal(t, c, s.List()[13])

	v, err := st.MemoryRepository.Get(context.Background(), Key)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestOnChange_ReceivesCopies(t *testing.T) {
	s := NewStore(newCountingStore(), logging.Nop())

	var calls int
	var last []models.Category
	s.OnChange(func(items []models.Category) {
		calls++
		last = items
	})

	s.Load(context.Background())
	s.Add(context.Background(), "Garden", "leaf.fill", "#00FF00")
	require.Equal(t, 2, calls)
	require.Len(t, last, 14)

	last[0].Name = "mutated"
	assert.Equal(t, "Care", s.List()[0].Name)
}

func TestListReturnsCopy(t *testing.T) {
	s := NewStore(newCountingStore(), logging.Nop())
	l := s.List()
	l[0].Name = "changed"
	assert.Equal(t, "Care", s.List()[0].Name)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
