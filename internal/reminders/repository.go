package reminders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bridge/internal/common"
	"github.com/dmitrijs2005/bridge/internal/dbx"
	"github.com/dmitrijs2005/bridge/internal/models"
	"github.com/google/uuid"
)

var ErrEmptyListName = errors.New("reminder list name is empty")

// Request describes the reminder to create.
type Request struct {
	Title        string
	Notes        string
	ListName     string
	ListColorHex string
	// DueDate, when set, is also used as the alarm time.
	DueDate *time.Time
}

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// CreateReminder files the reminder under the matching list, creating the
// list first when none matches. Both writes share one transaction.
func (r *SQLiteRepository) CreateReminder(ctx context.Context, req Request) (models.Reminder, error) {
	if strings.TrimSpace(req.ListName) == "" {
		return models.Reminder{}, ErrEmptyListName
	}

	now := r.now().UTC().Truncate(time.Second)
	rem := models.Reminder{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Notes:     req.Notes,
		CreatedAt: now,
	}
	if req.DueDate != nil {
		due := req.DueDate.UTC().Truncate(time.Second)
		rem.DueAt = &due
		alarm := due
		rem.AlarmAt = &alarm
	}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		list, err := findList(ctx, tx, req.ListName)
		if errors.Is(err, common.ErrorNotFound) {
			list, err = createList(ctx, tx, req.ListName, req.ListColorHex, now)
		}
		if err != nil {
			return err
		}
		rem.ListID = list.ID
		rem.ListTitle = list.Title

		_, err = tx.ExecContext(ctx, `
			INSERT INTO reminders (id, list_id, title, notes, due_at, alarm_at, created_at, notified)
			VALUES (?, ?, ?, ?, ?, ?, ?, 0)
		`, rem.ID, rem.ListID, rem.Title, rem.Notes, unixOrNull(rem.DueAt), unixOrNull(rem.AlarmAt), now.Unix())
		if err != nil {
			return fmt.Errorf("insert reminder: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Reminder{}, err
	}
	return rem, nil
}

func findList(ctx context.Context, db dbx.DBTX, name string) (models.ReminderList, error) {
	lists, err := queryLists(ctx, db)
	if err != nil {
		return models.ReminderList{}, err
	}
	for _, l := range lists {
		if strings.EqualFold(l.Title, name) {
			return l, nil
		}
	}
	return models.ReminderList{}, fmt.Errorf("reminder list %q: %w", name, common.ErrorNotFound)
}

func createList(ctx context.Context, db dbx.DBTX, title, colorHex string, now time.Time) (models.ReminderList, error) {
	l := models.ReminderList{
		ID:        uuid.NewString(),
		Title:     title,
		ColorHex:  models.ColorOrFallback(colorHex).Hex(),
		CreatedAt: now,
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO reminder_lists (id, title, color_hex, created_at) VALUES (?, ?, ?, ?)
	`, l.ID, l.Title, l.ColorHex, now.Unix())
	if err != nil {
		return models.ReminderList{}, fmt.Errorf("create reminder list %q: %w", title, err)
	}
	return l, nil
}

// Lists returns all reminder lists, oldest first.
func (r *SQLiteRepository) Lists(ctx context.Context) ([]models.ReminderList, error) {
	return queryLists(ctx, r.db)
}

func queryLists(ctx context.Context, db dbx.DBTX) ([]models.ReminderList, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, title, color_hex, created_at FROM reminder_lists ORDER BY created_at, title
	`)
	if err != nil {
		return nil, fmt.Errorf("query reminder lists: %w", err)
	}
	defer rows.Close()

	var out []models.ReminderList
	for rows.Next() {
		var l models.ReminderList
		var created int64
		if err := rows.Scan(&l.ID, &l.Title, &l.ColorHex, &created); err != nil {
			return nil, fmt.Errorf("scan reminder list: %w", err)
		}
		l.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, l)
	}
	return out, rows.Err()
}

const reminderColumns = `
	r.id, r.list_id, l.title, r.title, r.notes, r.due_at, r.alarm_at, r.created_at, r.notified
	FROM reminders r JOIN reminder_lists l ON l.id = r.list_id`

// List returns every reminder, newest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Reminder, error) {
	return r.query(ctx, `SELECT`+reminderColumns+` ORDER BY r.created_at DESC, r.rowid DESC`)
}

// ListDue returns undelivered reminders whose alarm is at or before now,
// earliest first.
func (r *SQLiteRepository) ListDue(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	return r.query(ctx, `SELECT`+reminderColumns+`
		WHERE r.notified = 0 AND r.alarm_at IS NOT NULL AND r.alarm_at <= ?
		ORDER BY r.alarm_at, r.rowid`, now.Unix())
}

// MarkNotified flags a reminder as delivered.
func (r *SQLiteRepository) MarkNotified(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reminders SET notified = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark reminder %s notified: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark reminder %s notified: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("reminder %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, q string, args ...any) ([]models.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query reminders: %w", err)
	}
	defer rows.Close()

	var out []models.Reminder
	for rows.Next() {
		var (
			rem        models.Reminder
			due, alarm sql.NullInt64
			created    int64
			notified   int
		)
		if err := rows.Scan(&rem.ID, &rem.ListID, &rem.ListTitle, &rem.Title, &rem.Notes,
			&due, &alarm, &created, &notified); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		rem.DueAt = timeOrNil(due)
		rem.AlarmAt = timeOrNil(alarm)
		rem.CreatedAt = time.Unix(created, 0).UTC()
		rem.Notified = notified != 0
		out = append(out, rem)
	}
	return out, rows.Err()
}

func unixOrNull(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timeOrNil(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}
