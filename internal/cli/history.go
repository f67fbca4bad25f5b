package cli

import (
	"context"
	"fmt"
)

const historyLayout = "Jan 2 15:04"

func (a *App) History(_ context.Context) error {
	entries := a.history.List()
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No recent captures.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "%s  %s %-14s %s\n",
			e.CreatedAt.Local().Format(historyLayout), swatch(e.CategoryColorHex), e.CategoryName, e.Title)
	}
	return nil
}

func (a *App) ClearHistory(ctx context.Context) error {
	ok, err := GetYesNo(a.reader, fmt.Sprintf("- Clear %d recent captures?", len(a.history.List())), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	a.history.Clear(ctx)
	fmt.Fprintln(a.out, "History cleared.")
	return nil
}
