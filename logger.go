package gesture

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record and reports every level as disabled.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var (
	silent  = slog.New(discard{})
	current atomic.Pointer[slog.Logger]
)

// SetLogger routes the package's diagnostics to l. Dispatchers, arenas and
// the adapter packages all write through it, at [slog.LevelDebug] only:
// events dropped by the dispatcher and arenas resolved by a sweep. A nil l
// silences the package again, which is also the initial state.
//
//	gesture.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//		&slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return silent
}
