package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bridge/internal/logging"
	"github.com/dmitrijs2005/bridge/internal/models"
	"github.com/robfig/cron/v3"
)

// DueSource is the part of the repository the scheduler polls.
type DueSource interface {
	ListDue(ctx context.Context, now time.Time) ([]models.Reminder, error)
	MarkNotified(ctx context.Context, id string) error
}

// Notifier delivers one due reminder.
type Notifier func(ctx context.Context, r models.Reminder)

// Scheduler polls for due reminders on a fixed interval.
type Scheduler struct {
	cron   *cron.Cron
	src    DueSource
	notify Notifier
	log    logging.Logger
	now    func() time.Time

	mu  sync.Mutex
	ctx context.Context
}

func NewScheduler(src DueSource, notify Notifier, log logging.Logger, interval time.Duration) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive")
	}
	if log == nil {
		log = logging.Nop()
	}

	s := &Scheduler{
		cron:   cron.New(),
		src:    src,
		notify: notify,
		log:    log.With("component", "reminders"),
		now:    time.Now,
		ctx:    context.Background(),
	}

	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), s.tick); err != nil {
		return nil, fmt.Errorf("schedule reminder check: %w", err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if _, err := s.Check(ctx); err != nil {
		s.log.Error(ctx, "reminder check failed", "error", err)
	}
}

// Check delivers every reminder due now and marks it notified. It returns
// how many were delivered.
func (s *Scheduler) Check(ctx context.Context) (int, error) {
	due, err := s.src.ListDue(ctx, s.now())
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, r := range due {
		s.notify(ctx, r)
		if err := s.src.MarkNotified(ctx, r.ID); err != nil {
			return delivered, err
		}
		delivered++
	}
	if delivered > 0 {
		s.log.Debug(ctx, "reminders delivered", "count", delivered)
	}
	return delivered, nil
}

// Run checks once, then on every tick until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	if _, err := s.Check(ctx); err != nil {
		s.log.Error(ctx, "reminder check failed", "error", err)
	}

	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}
