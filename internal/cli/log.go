package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/yieldpath/pkg/observability"
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
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Solved sample.txt (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports solve and cache events at debug level. It is installed
// by [CLI.SetLogLevel] when --verbose is given.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.SolveHooks = (*logHooks)(nil)
	_ observability.CacheHooks = (*logHooks)(nil)
)

func (h *logHooks) OnNetworkBuilt(_ context.Context, locations, relevant int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("network rejected", "locations", locations, "err", err)
		return
	}
	h.logger.Debug("network built", "locations", locations, "relevant", relevant, "took", dur.Round(time.Microsecond))
}

func (h *logHooks) OnSolveStart(_ context.Context, runID string, agents, relevant int) {
	h.logger.Debug("solve started", "run", runID, "agents", agents, "relevant", relevant)
}

func (h *logHooks) OnSolveComplete(_ context.Context, runID string, yield int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("solve failed", "run", runID, "err", err)
		return
	}
	h.logger.Debug("solve complete", "run", runID, "yield", yield, "took", dur.Round(time.Millisecond))
}

// OnPartitionProgress is left to the partition progress logger.
func (h *logHooks) OnPartitionProgress(context.Context, string, int, int) {}

func (h *logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}
