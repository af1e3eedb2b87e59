package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level, with "HH:MM:SS.ms"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// the elapsed duration. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level along with the elapsed time, rounded to the
// millisecond: "Inspected data.h5 (12ms)".
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// LogHooks reports inspections and renderings to the logger carried in the
// event's context. Register it with observability.SetInspectHooks and
// observability.SetRenderHooks.
type LogHooks struct{}

func (LogHooks) OnInspectStart(ctx context.Context, format, path string) {
	loggerFromContext(ctx).Debug("inspecting", "format", format, "path", path)
}

func (LogHooks) OnInspectComplete(ctx context.Context, format, path string, d time.Duration, err error) {
	l := loggerFromContext(ctx)
	if err != nil {
		l.Debug("inspection failed", "format", format, "path", path, "err", err)
		return
	}
	l.Debug("inspected", "format", format, "path", path, "took", d.Round(time.Millisecond))
}

func (LogHooks) OnRenderStart(ctx context.Context, format string, nodes int) {
	loggerFromContext(ctx).Debug("rendering", "format", format, "nodes", nodes)
}

func (LogHooks) OnRenderComplete(ctx context.Context, format string, size int, d time.Duration, err error) {
	l := loggerFromContext(ctx)
	if err != nil {
		l.Warn("render failed", "format", format, "err", err)
		return
	}
	l.Debug("rendered", "format", format, "bytes", size, "took", d.Round(time.Millisecond))
}
