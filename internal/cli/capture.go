package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bridge/internal/capture"
	"github.com/dmitrijs2005/bridge/internal/common"
)

var dueLayouts = []string{"2006-01-02 15:04", "2006-01-02"}

func parseDue(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: due date %q, expected YYYY-MM-DD [HH:MM]", common.ErrorValidation, s)
}

// Capture prompts for a task and files it through the capture workflow.
func (a *App) Capture(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "- Enter title", a.out)
	if err != nil {
		return err
	}

	text, err := GetMultiline(a.reader, "- Enter notes", a.out)
	if err != nil {
		return err
	}

	current := a.categories.Resolve(a.selected)
	printCategories(a.out, a.categories.List(), current.ID)
	choice, err := GetSimpleText(a.reader, fmt.Sprintf("- Category number (Enter for %s)", current.Name), a.out)
	if err != nil {
		return err
	}
	categoryID := current.ID
	if choice != "" {
		n, err := strconv.Atoi(choice)
		list := a.categories.List()
		if err != nil || n < 1 || n > len(list) {
			return fmt.Errorf("%w: no category %q", common.ErrorValidation, choice)
		}
		categoryID = list[n-1].ID
	}

	dueText, err := GetSimpleText(a.reader, "- Due date (YYYY-MM-DD [HH:MM], Enter for none)", a.out)
	if err != nil {
		return err
	}
	due, err := parseDue(dueText, time.Local)
	if err != nil {
		return err
	}

	res, err := a.capture.Process(ctx, capture.Input{
		Title:      title,
		Notes:      text,
		CategoryID: categoryID,
		DueDate:    due,
	})
	if err != nil {
		return err
	}

	a.selected = res.Category.ID

	var b strings.Builder
	fmt.Fprintf(&b, "Reminder saved to %s %s.", swatch(res.Category.ColorHex), res.Reminder.ListTitle)
	if res.Shared {
		b.WriteString(" Note copied to clipboard.")
	}
	if res.HealthLogged {
		b.WriteString(" Mindful minute logged.")
	}
	fmt.Fprintln(a.out, b.String())
	return nil
}
