package settings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/bridge/internal/logging"
	"github.com/fsnotify/fsnotify"
)

const fileExt = ".json"

// watchDebounce coalesces the burst of events a single save produces.
var watchDebounce = 150 * time.Millisecond

// FileRepository stores each key as <dir>/<key>.json. Writes go through a
// temp file and a rename so readers never see a partial blob.
type FileRepository struct {
	dir string
	log logging.Logger

	mu sync.Mutex
	// seen holds the last content this process wrote or observed per key,
	// so Watch can ignore its own writes.
	seen map[string][]byte
}

func NewFileRepository(dir string, log logging.Logger) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir %q: %w", dir, err)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &FileRepository{dir: dir, log: log, seen: make(map[string][]byte)}, nil
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." ||
		strings.HasPrefix(key, ".") ||
		strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func (r *FileRepository) path(key string) string {
	return filepath.Join(r.dir, key+fileExt)
}

func (r *FileRepository) Get(_ context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(r.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting[%s]: %w", key, err)
	}

	r.mu.Lock()
	r.seen[key] = bytes.Clone(b)
	r.mu.Unlock()
	return b, nil
}

func (r *FileRepository) Set(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeFileAtomic(r.dir, r.path(key), value); err != nil {
		return fmt.Errorf("failed to set setting[%s]: %w", key, err)
	}
	r.seen[key] = bytes.Clone(value)
	return nil
}

func (r *FileRepository) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete setting[%s]: %w", key, err)
	}
	delete(r.seen, key)
	return nil
}

func (r *FileRepository) List(ctx context.Context) (map[string][]byte, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	out := make(map[string][]byte)
	for _, e := range entries {
		key, ok := keyFromName(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		v, err := r.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out[key] = v
		}
	}
	return out, nil
}

func (r *FileRepository) Clear(ctx context.Context) error {
	all, err := r.List(ctx)
	if err != nil {
		return err
	}
	for key := range all {
		if err := r.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Watch reports keys whose file content changed outside this repository
// until ctx is cancelled. Writes made through Set are not reported.
func (r *FileRepository) Watch(ctx context.Context, fn ChangeFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(r.dir); err != nil {
		return fmt.Errorf("watch %q: %w", r.dir, err)
	}

	r.log.Info(ctx, "settings watcher started", "dir", r.dir)

	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(watchDebounce)
			timerCh = timer.C
		} else {
			timer.Reset(watchDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			r.log.Info(ctx, "settings watcher stopped")
			return nil

		case <-timerCh:
			for key := range pending {
				if r.refresh(ctx, key) {
					fn(key)
				}
			}
			clear(pending)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			key, ok := keyFromName(filepath.Base(ev.Name))
			if !ok {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[key] = struct{}{}
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.log.Error(ctx, "settings watcher error", "error", watchErr)
		}
	}
}

// refresh re-reads key and reports whether it differs from what this
// repository last wrote or saw.
func (r *FileRepository) refresh(ctx context.Context, key string) bool {
	b, err := os.ReadFile(r.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		b = nil
	} else if err != nil {
		r.log.Warn(ctx, "settings watcher read failed", "key", key, "error", err)
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, known := r.seen[key]
	if known && bytes.Equal(prev, b) {
		return false
	}
	if !known && b == nil {
		return false
	}
	if b == nil {
		delete(r.seen, key)
	} else {
		r.seen[key] = b
	}
	r.log.Debug(ctx, "settings changed on disk", "key", key)
	return true
}

func keyFromName(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileExt) {
		return "", false
	}
	key := strings.TrimSuffix(name, fileExt)
	return key, key != ""
}

func writeFileAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
