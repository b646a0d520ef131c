package stringart

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so Step never
// builds attributes for a silent logger.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// active holds the package logger. SetLogger may race with a running
// engine.
var active atomic.Pointer[slog.Logger]

func init() {
	active.Store(newNopLogger())
}

// SetLogger sets the logger for every Engine in the process. Nothing is
// logged until it is called; nil restores that silence.
//
// Log levels used:
//   - [slog.LevelDebug]: every committed chord
//   - [slog.LevelInfo]: stalls, re-seeds and run completion
//   - [slog.LevelWarn]: runs stopped by cancellation
//
// Example:
//
//	stringart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	active.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return active.Load()
}
