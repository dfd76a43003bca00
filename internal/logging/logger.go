// Package logging is the structured logger handed to ganfan services and the
// CLI. The only implementation wraps log/slog.
package logging

import "context"

// Logger takes a message plus alternating key and value arguments:
//
//	log.Info(ctx, "order toggled", "dinner", dinnerID, "dish", dishID, "picked", picked)
//
// Services log under a "component" key set once with With.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	// Error is for failures the user sees as an error line.
	Error(ctx context.Context, msg string, args ...any)

	With(args ...any) Logger
}
