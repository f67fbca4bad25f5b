package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bridge/internal/capture"
	"github.com/dmitrijs2005/bridge/internal/categories"
	"github.com/dmitrijs2005/bridge/internal/config"
	"github.com/dmitrijs2005/bridge/internal/database"
	"github.com/dmitrijs2005/bridge/internal/health"
	"github.com/dmitrijs2005/bridge/internal/history"
	"github.com/dmitrijs2005/bridge/internal/logging"
	"github.com/dmitrijs2005/bridge/internal/models"
	"github.com/dmitrijs2005/bridge/internal/notes"
	"github.com/dmitrijs2005/bridge/internal/preferences"
	"github.com/dmitrijs2005/bridge/internal/reminders"
	"github.com/dmitrijs2005/bridge/internal/settings"
	"golang.org/x/sync/errgroup"
)

// App wires the stores, the capture workflow and the background jobs
// behind the interactive prompt.
type App struct {
	config *config.Config
	log    logging.Logger

	db         *sql.DB
	settingsDB *sql.DB
	settings   settings.Repository

	categories *categories.Store
	history    *history.Store
	prefs      *preferences.Store
	reminders  *reminders.SQLiteRepository
	health     *health.SQLiteLogger
	capture    *capture.Service
	scheduler  *reminders.Scheduler

	// selected is the category id preselected in the capture prompt.
	selected string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database and the configured settings backend and
// loads both stores.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	db, err := database.OpenSQLite(ctx, c.SQLitePath())
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	repo, settingsDB, err := openSettings(ctx, c, db, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	a := &App{
		config:     c,
		log:        log,
		db:         db,
		settingsDB: settingsDB,
		settings:   repo,
		categories: categories.NewStore(repo, log),
		history:    history.NewStore(repo, log),
		prefs:      preferences.NewStore(repo, log),
		reminders:  reminders.NewSQLiteRepository(db),
		health:     health.NewSQLiteLogger(db),
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}

	a.capture = capture.NewService(a.categories, a.history, a.reminders, log,
		capture.WithNoteSharer(notes.ClipboardSharer{}),
		capture.WithHealthLogger(a.health),
		capture.WithPreferences(a.prefs),
	)

	a.scheduler, err = reminders.NewScheduler(a.reminders, a.notifyDue, log, c.ReminderCheckInterval)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.categories.Load(ctx)
	a.history.Load(ctx)
	a.selected = categoryIDByName(a.categories.List(), initialCategory)
	return a, nil
}

// initialCategory is preselected in the capture prompt on start.
const initialCategory = "Order"

// categoryIDByName returns the id of the first category called name, or ""
// when there is none, which the store resolves to the first category.
func categoryIDByName(items []models.Category, name string) string {
	for _, c := range items {
		if c.Name == name {
			return c.ID
		}
	}
	return ""
}

// openSettings returns the settings repository for the configured backend.
// The second result is a database the caller must close, if any.
func openSettings(ctx context.Context, c *config.Config, local *sql.DB, log logging.Logger) (settings.Repository, *sql.DB, error) {
	switch c.StorageBackend {
	case config.BackendSQLite:
		return settings.NewSQLiteRepository(local), nil, nil

	case config.BackendPostgres:
		pg, err := database.OpenPostgres(ctx, c.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open settings database: %w", err)
		}
		return settings.NewPostgresRepository(pg), pg, nil

	case config.BackendFile:
		repo, err := settings.NewFileRepository(c.SettingsDir(), log)
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil

	case config.BackendS3:
		repo, err := settings.NewS3Repository(ctx, settings.S3Options{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			Prefix:       c.S3Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil

	case config.BackendMemory:
		return settings.NewMemoryRepository(), nil, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", settings.ErrUnsupportedBackend, c.StorageBackend)
}

// Close releases the databases.
func (a *App) Close() error {
	var errs []error
	if a.settingsDB != nil {
		errs = append(errs, a.settingsDB.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// Run serves the prompt while the reminder scheduler and, when enabled,
// the settings watcher run in the background. It returns when the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.scheduler.Run(gctx) })

	if w, ok := a.settings.(settings.Watcher); ok && a.config.WatchExternalChanges {
		g.Go(func() error {
			return w.Watch(gctx, func(key string) { a.reload(gctx, key) })
		})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Root(gctx)
	}()

	select {
	case <-done:
	case <-gctx.Done():
	}
	cancel()
	return g.Wait()
}

// reload re-reads a store whose blob changed outside the process.
func (a *App) reload(ctx context.Context, key string) {
	switch key {
	case categories.Key:
		a.categories.Load(ctx)
	case history.Key:
		a.history.Load(ctx)
	default:
		return
	}
	a.log.Info(ctx, "reloaded after external change", "key", key)
}

func (a *App) notifyDue(_ context.Context, r models.Reminder) {
	printlnFn(fmt.Sprintf("\n⏰ Reminder due: %s (%s)", r.Title, r.ListTitle))
}
