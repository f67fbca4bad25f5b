package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bridge/internal/notes"
)

func (a *App) Reminders(ctx context.Context) error {
	items, err := a.reminders.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No reminders.")
		return nil
	}

	colors := map[string]string{}
	lists, err := a.reminders.Lists(ctx)
	if err != nil {
		return err
	}
	for _, l := range lists {
		colors[l.ID] = l.ColorHex
	}

	for _, r := range items {
		due := "no due date"
		if r.DueAt != nil {
			due = r.DueAt.Local().Format(notes.DueLayout)
			if r.Notified {
				due += " (notified)"
			}
		}
		fmt.Fprintf(a.out, "%s %-14s %s  [%s]\n", swatch(colors[r.ListID]), r.ListTitle, r.Title, due)
	}
	return nil
}
