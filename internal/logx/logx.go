// Package logx carries a charmbracelet logger through context.Context.
package logx

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w at the given level. Timestamps look like "14:32:01.45".
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "rftidy",
	})
}

// Level picks the level for the global --verbose/--quiet flags.
func Level(verbose, quiet bool) log.Level {
	switch {
	case verbose:
		return log.DebugLevel
	case quiet:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger of ctx, or a logger that discards everything.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*log.Logger); ok && l != nil {
			return l
		}
	}
	return log.New(io.Discard)
}

// Timer logs a message with the time elapsed since it was started.
type Timer struct {
	logger *log.Logger
	start  time.Time
}

// Start begins timing an operation.
func Start(l *log.Logger) *Timer {
	return &Timer{logger: l, start: time.Now()}
}

// Done logs msg at info level with the elapsed time, e.g. "formatted 12 files (35ms)".
func (t *Timer) Done(msg string, keyvals ...any) {
	t.logger.Info(msg, append(keyvals, "elapsed", time.Since(t.start).Round(time.Millisecond))...)
}
