package models

import "time"

// ReminderList groups reminders; one list exists per category name.
type ReminderList struct {
	ID        string
	Title     string
	ColorHex  string
	CreatedAt time.Time
}

// Reminder is a local reminder created from a capture.
type Reminder struct {
	ID     string
	ListID string
	// ListTitle is filled in by list queries for display.
	ListTitle string
	Title     string
	Notes     string
	// DueAt and AlarmAt are nil for reminders without a due date.
	DueAt     *time.Time
	AlarmAt   *time.Time
	CreatedAt time.Time
	Notified  bool
}

// MindfulSession is a logged mindfulness interval.
type MindfulSession struct {
	ID      string
	StartAt time.Time
	EndAt   time.Time
}
