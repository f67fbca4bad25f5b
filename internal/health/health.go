// Package health records mindfulness sessions in the local database.
package health

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bridge/internal/dbx"
	"github.com/dmitrijs2005/bridge/internal/models"
	"github.com/google/uuid"
)

// MindfulMinute is the length of the session logged per capture.
const MindfulMinute = time.Minute

type SQLiteLogger struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteLogger(db dbx.DBTX) *SQLiteLogger {
	return &SQLiteLogger{db: db, now: time.Now}
}

// LogMindfulMinute records a one-minute session ending now.
func (l *SQLiteLogger) LogMindfulMinute(ctx context.Context) (models.MindfulSession, error) {
	end := l.now().UTC().Truncate(time.Second)
	s := models.MindfulSession{
		ID:      uuid.NewString(),
		StartAt: end.Add(-MindfulMinute),
		EndAt:   end,
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO mindful_sessions (id, start_at, end_at) VALUES (?, ?, ?)`,
		s.ID, s.StartAt.Unix(), s.EndAt.Unix())
	if err != nil {
		return models.MindfulSession{}, fmt.Errorf("log mindful minute: %w", err)
	}
	return s, nil
}

// Sessions returns all logged sessions, newest first.
func (l *SQLiteLogger) Sessions(ctx context.Context) ([]models.MindfulSession, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, start_at, end_at FROM mindful_sessions ORDER BY end_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query mindful sessions: %w", err)
	}
	defer rows.Close()

	var out []models.MindfulSession
	for rows.Next() {
		var s models.MindfulSession
		var start, end int64
		if err := rows.Scan(&s.ID, &start, &end); err != nil {
			return nil, fmt.Errorf("scan mindful session: %w", err)
		}
		s.StartAt = time.Unix(start, 0).UTC()
		s.EndAt = time.Unix(end, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}
