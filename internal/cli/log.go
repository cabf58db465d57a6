package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Extracted demo 1.0 (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks reports pipeline events at debug level. Registered with
// --verbose.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnResolve(_ context.Context, dir, backend string, fallback bool) {
	h.logger.Debug("Resolved build system", "dir", dir, "backend", backend, "default", fallback)
}

func (h *logHooks) OnExtractStart(_ context.Context, id, dir, backend string) {
	h.logger.Debug("Calling backend", "extraction", shortID(id), "dir", dir, "backend", backend)
}

func (h *logHooks) OnExtractComplete(_ context.Context, id, _ string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Backend failed", "extraction", shortID(id), "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("Backend finished", "extraction", shortID(id), "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnScanFile(_ context.Context, path string) {
	h.logger.Debug("Scanning", "file", path)
}

func (h *logHooks) OnScanComplete(_ context.Context, dir string, files, entries int, err error) {
	h.logger.Debug("Scan finished", "dir", dir, "files", files, "entries", entries, "err", err)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
