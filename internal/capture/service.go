package capture

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bridge/internal/common"
	"github.com/dmitrijs2005/bridge/internal/logging"
	"github.com/dmitrijs2005/bridge/internal/models"
	"github.com/dmitrijs2005/bridge/internal/notes"
	"github.com/dmitrijs2005/bridge/internal/reminders"
)

var (
	// ErrReminderFailed wraps the error returned by the reminder backend.
	ErrReminderFailed = errors.New("reminder not created")
	ErrNoCategory     = errors.New("no category available")
)

type CategorySource interface {
	Resolve(id string) models.Category
}

type HistoryAppender interface {
	Append(ctx context.Context, title, categoryName, categoryColorHex string) models.HistoryEntry
}

type ReminderCreator interface {
	CreateReminder(ctx context.Context, req reminders.Request) (models.Reminder, error)
}

type HealthLogger interface {
	LogMindfulMinute(ctx context.Context) (models.MindfulSession, error)
}

type PreferenceSource interface {
	AutoShareNote(ctx context.Context) bool
	LogHealth(ctx context.Context) bool
}

// Result reports what a successful capture produced.
type Result struct {
	Category     models.Category
	Reminder     models.Reminder
	Entry        models.HistoryEntry
	Note         string
	Shared       bool
	HealthLogged bool
}

type Service struct {
	categories CategorySource
	history    HistoryAppender
	reminders  ReminderCreator
	sharer     notes.Sharer
	health     HealthLogger
	prefs      PreferenceSource
	log        logging.Logger
}

type Option func(*Service)

func WithNoteSharer(s notes.Sharer) Option { return func(svc *Service) { svc.sharer = s } }

func WithHealthLogger(h HealthLogger) Option { return func(svc *Service) { svc.health = h } }

// WithPreferences sets where the share and health switches are read from.
// Without it both are treated as on.
func WithPreferences(p PreferenceSource) Option { return func(svc *Service) { svc.prefs = p } }

func NewService(categories CategorySource, history HistoryAppender, rem ReminderCreator, log logging.Logger, opts ...Option) *Service {
	if log == nil {
		log = logging.Nop()
	}
	s := &Service{
		categories: categories,
		history:    history,
		reminders:  rem,
		log:        log.With("component", "capture"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Process runs one capture. History is appended exactly once, and only
// after the reminder was created.
func (s *Service) Process(ctx context.Context, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	cat := s.categories.Resolve(in.CategoryID)
	if cat.ID == "" {
		return nil, ErrNoCategory
	}
	if in.CategoryID != "" && cat.ID != in.CategoryID {
		s.log.Info(ctx, "selected category missing, using first", "requested", in.CategoryID, "used", cat.Name)
	}

	rem, err := s.reminders.CreateReminder(ctx, reminders.Request{
		Title:        in.Title,
		Notes:        in.Notes,
		ListName:     cat.Name,
		ListColorHex: cat.ColorHex,
		DueDate:      in.DueDate,
	})
	if err != nil {
		s.log.Error(ctx, "create reminder failed", "category", cat.Name, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrReminderFailed, err)
	}

	res := &Result{
		Category: cat,
		Reminder: rem,
		Entry:    s.history.Append(ctx, in.Title, cat.Name, cat.ColorHex),
		Note:     notes.Format(in.Title, in.Notes, cat.Name, in.DueDate),
	}

	if s.sharer != nil && s.autoShare(ctx) {
		if err := s.sharer.Share(ctx, res.Note); err != nil {
			s.log.Warn(ctx, "share note failed", "error", err)
		} else {
			res.Shared = true
		}
	}

	if s.health != nil && s.logHealth(ctx) {
		if _, err := s.health.LogMindfulMinute(ctx); err != nil {
			s.log.Warn(ctx, "log mindful minute failed", "error", err)
		} else {
			res.HealthLogged = true
		}
	}

	s.log.Info(ctx, "capture processed", "reminder", rem.ID, "category", cat.Name)
	return res, nil
}

func (s *Service) autoShare(ctx context.Context) bool {
	return s.prefs == nil || s.prefs.AutoShareNote(ctx)
}

func (s *Service) logHealth(ctx context.Context) bool {
	return s.prefs == nil || s.prefs.LogHealth(ctx)
}
