package refresh

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
)

func TestCronLoggerRecoversPanicsIntoSlog(t *testing.T) {
	var buf bytes.Buffer
	logger := cronLogger{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	job := cron.Recover(logger)(cron.FuncJob(func() { panic("refresh exploded") }))
	assert.NotPanics(t, job.Run)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "panic")
	assert.Contains(t, out, "refresh exploded")
}

func TestCronLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := cronLogger{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	logger.Info("schedule", "entry", 1)
	logger.Error(errors.New("boom"), "job failed", "entry", 2)

	out := buf.String()
	assert.Contains(t, out, `level=DEBUG msg=schedule entry=1`)
	assert.Contains(t, out, `level=ERROR msg="job failed" entry=2 error=boom`)
}
