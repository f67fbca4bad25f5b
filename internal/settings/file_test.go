package settings

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/bridge/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileRepo(t *testing.T) *FileRepository {
	t.Helper()
	r, err := NewFileRepository(filepath.Join(t.TempDir(), "settings"), logging.Nop())
	require.NoError(t, err)
	return r
}

func TestFileRepository_Contract(t *testing.T) {
	testRepositoryContract(t, func(t *testing.T) Repository {
		return newFileRepo(t)
	})
}

func TestFileRepository_LayoutAndTempFiles(t *testing.T) {
	r := newFileRepo(t)
	require.NoError(t, r.Set(context.Background(), "savedHistory", []byte("[]")))

	b, err := os.ReadFile(filepath.Join(r.dir, "savedHistory.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	entries, err := os.ReadDir(r.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileRepository_RejectsBadKeys(t *testing.T) {
	r := newFileRepo(t)
	ctx := context.Background()
	for _, key := range []string{"", ".", "..", ".hidden", "a/b", `a\b`} {
		err := r.Set(ctx, key, []byte("x"))
		require.ErrorIs(t, err, ErrInvalidKey, key)
		_, err = r.Get(ctx, key)
		require.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestFileRepository_ListIgnoresForeignFiles(t *testing.T) {
	r := newFileRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(r.dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(r.dir, ".k.json.123.tmp"), []byte("x"), 0o644))
	require.NoError(t, r.Set(context.Background(), "k", []byte("v")))

	m, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"k": []byte("v")}, m)
}

type keyRecorder struct {
	mu   sync.Mutex
	keys []string
}

func (k *keyRecorder) add(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys = append(k.keys, key)
}

func (k *keyRecorder) snapshot() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]string(nil), k.keys...)
}

func TestFileRepository_WatchReportsExternalWrites(t *testing.T) {
	orig := watchDebounce
	watchDebounce = 20 * time.Millisecond
	t.Cleanup(func() { watchDebounce = orig })

	r := newFileRepo(t)
	ctx, cancel := context.WithCancel(context.Background())

	rec := &keyRecorder{}
	done := make(chan error, 1)
	go func() { done <- r.Watch(ctx, rec.add) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, r.Set(ctx, "own", []byte("1")))
	require.NoError(t, os.WriteFile(filepath.Join(r.dir, "savedCategories.json"), []byte("[]"), 0o644))

	require.Eventually(t, func() bool {
		for _, k := range rec.snapshot() {
			if k == "savedCategories" {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.NotContains(t, rec.snapshot(), "own", "writes through Set are not external")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFileRepository_RefreshDetectsChanges(t *testing.T) {
	r := newFileRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("a")))
	assert.False(t, r.refresh(ctx, "k"))

	require.NoError(t, os.WriteFile(r.path("k"), []byte("b"), 0o644))
	assert.True(t, r.refresh(ctx, "k"))
	assert.False(t, r.refresh(ctx, "k"))

	require.NoError(t, os.Remove(r.path("k")))
	assert.True(t, r.refresh(ctx, "k"))
	assert.False(t, r.refresh(ctx, "gone"))
}
