package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Capture(ctx context.Context) error
	Categories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	EditCategory(ctx context.Context) error
	DeleteCategory(ctx context.Context) error
	History(ctx context.Context) error
	ClearHistory(ctx context.Context) error
	Reminders(ctx context.Context) error
	Settings(ctx context.Context) error
	Set(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  capture (c)       capture a task and file it as a reminder
  categories (ls)   list categories
  addcategory       add a category
  editcategory      edit a category
  deletecategory    delete one or more categories
  history (h)       show recent captures
  clearhistory      clear the capture history
  reminders         list reminders
  settings          show preferences
  set <key> <on|off>
  exit | quit`

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, on "exit" or "quit", or when ctx is done between
// commands. Command errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, showPrompt bool) {
	for {
		if ctx.Err() != nil {
			return
		}
		if showPrompt {
			printlnFn(fmt.Sprintf("bridge%s> ", statusFn()))
		}

		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("read error:", err)
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			printlnFn(helpText)
		case "c", "capture":
			cmdErr = a.Capture(ctx)
		case "ls", "categories":
			cmdErr = a.Categories(ctx)
		case "addcategory":
			cmdErr = a.AddCategory(ctx)
		case "editcategory":
			cmdErr = a.EditCategory(ctx)
		case "deletecategory":
			cmdErr = a.DeleteCategory(ctx)
		case "h", "history":
			cmdErr = a.History(ctx)
		case "clearhistory":
			cmdErr = a.ClearHistory(ctx)
		case "reminders":
			cmdErr = a.Reminders(ctx)
		case "settings":
			cmdErr = a.Settings(ctx)
		case "set":
			cmdErr = a.Set(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
