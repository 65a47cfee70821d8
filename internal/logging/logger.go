// Package logging defines the structured-logging interface used across the
// project, with slog and zap backends.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "post saved", "post_id", id)
//
// A unit-of-work id stored in ctx with WithUnitOfWork is added to every
// record as "uow".
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

type uowKey struct{}

// WithUnitOfWork returns a copy of ctx carrying the unit-of-work id.
func WithUnitOfWork(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, uowKey{}, id)
}

// UnitOfWork returns the id stored by WithUnitOfWork, or "".
func UnitOfWork(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(uowKey{}).(string)
	return id
}

func withUnitOfWork(ctx context.Context, args []any) []any {
	id := UnitOfWork(ctx)
	if id == "" {
		return args
	}
	return append(args[:len(args):len(args)], "uow", id)
}
