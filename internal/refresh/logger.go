package refresh

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger routes cron's job logging, including recovered panics, to slog.
// A nil logger resolves to slog.Default at call time.
type cronLogger struct {
	logger *slog.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) get() *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return slog.Default()
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.get().Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.get().Error(msg, append(keysAndValues, "error", err)...)
}
