// Package logging defines the structured, context-aware logger used by the
// stores, the capture workflow and the CLI. SlogLogger is the only
// implementation; Nop discards everything and is handy in tests.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are key–value pairs:
//
//	log.Warn(ctx, "category blob unreadable, using defaults", "key", key, "error", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is for recovered conditions, such as a discarded blob.
	Warn(ctx context.Context, msg string, args ...any)
	// Error is for failures that lose durability or abort an operation.
	Error(ctx context.Context, msg string, args ...any)
	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

type nop struct{}

// Nop returns a Logger that drops every record.
func Nop() Logger { return nop{} }

func (nop) Debug(context.Context, string, ...any) {}
func (nop) Info(context.Context, string, ...any)  {}
func (nop) Warn(context.Context, string, ...any)  {}
func (nop) Error(context.Context, string, ...any) {}
func (n nop) With(...any) Logger                  { return n }
