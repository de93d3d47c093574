package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger that writes to w at level, with
// "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stepTimer logs how long a command step took.
type stepTimer struct {
	logger *log.Logger
	start  time.Time
}

func startStep(l *log.Logger) *stepTimer {
	return &stepTimer{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time under "took".
func (s *stepTimer) done(msg string, keyvals ...any) {
	s.logger.Info(msg, append(keyvals, "took", time.Since(s.start).Round(time.Millisecond))...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
