// Package reminders keeps local reminder lists in SQLite and delivers due
// reminders on a cron schedule.
//
// Each capture becomes one reminder in the list whose title matches the
// capture's category name, compared case-insensitively. Missing lists are
// created on demand with the category colour.
package reminders
