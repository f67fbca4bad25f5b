// Package capture turns a user's quick note into a reminder.
//
// Process validates the input, resolves its category, files the reminder
// and, only once the reminder exists, appends a history entry. Sharing the
// note and logging a mindful minute follow when the matching preferences
// are on; their failures are logged and do not fail the capture.
package capture
