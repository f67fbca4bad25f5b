// Package notes formats a capture as plain note text and hands it to a
// sharing target.
package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// DueLayout renders due dates in note text.
const DueLayout = "Jan 2, 2006 at 3:04 PM"

// Format builds the note body:
//
//	<title>
//	Category: <name>
//	Due: <date>        (only with a due date)
//
//	<notes>
func Format(title, notes, categoryName string, due *time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "Category: %s\n", categoryName)
	if due != nil {
		fmt.Fprintf(&b, "Due: %s\n", due.Local().Format(DueLayout))
	}
	b.WriteString("\n")
	b.WriteString(notes)
	return b.String()
}

// Sharer publishes note text somewhere the user can pick it up.
type Sharer interface {
	Share(ctx context.Context, text string) error
}

var writeAll = clipboard.WriteAll

// ClipboardSharer copies the note to the system clipboard.
type ClipboardSharer struct{}

func (ClipboardSharer) Share(_ context.Context, text string) error {
	if err := writeAll(text); err != nil {
		return fmt.Errorf("copy note to clipboard: %w", err)
	}
	return nil
}
