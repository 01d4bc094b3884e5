// Package refresh re-runs the price refresh and reload on a fixed interval.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Veraticus/folio/internal/common"
)

// MinInterval is the shortest accepted refresh interval.
const MinInterval = time.Second

// Func is one refresh cycle. It reports its own failures.
type Func func(ctx context.Context)

// Scheduler runs a Func every interval and on demand. Runs are not serialized:
// a manual Trigger may overlap a scheduled run.
type Scheduler struct {
	ctx      context.Context
	cron     *cron.Cron
	cancel   context.CancelFunc
	run      Func
	runs     atomic.Int64
	interval time.Duration
}

// New creates a stopped scheduler.
func New(interval time.Duration, run Func) (*Scheduler, error) {
	if interval < MinInterval {
		return nil, fmt.Errorf("%w: refresh interval %s is shorter than %s", common.ErrInvalidConfig, interval, MinInterval)
	}
	if run == nil {
		return nil, fmt.Errorf("%w: refresh func", common.ErrMissingConfig)
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cronLogger{}), cron.WithChain(cron.Recover(cronLogger{}))),
		run:      run,
		interval: interval,
	}, nil
}

// Interval returns the configured interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Runs returns how many cycles have started.
func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}

// Start schedules the refresh. Cycles receive a context derived from ctx that
// is cancelled by Stop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() { s.cycle(s.ctx, "schedule") }); err != nil {
		s.cancel()
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}
	s.cron.Start()
	slog.Info("Auto-refresh started", "interval", s.interval)
	return nil
}

// Trigger runs one cycle now in the caller's goroutine.
func (s *Scheduler) Trigger(ctx context.Context) {
	s.cycle(ctx, "trigger")
}

// Stop halts scheduling, cancels running cycles and waits for them to return.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	done := s.cron.Stop()
	s.cancel()
	<-done.Done()
	slog.Info("Auto-refresh stopped", "runs", s.runs.Load())
}

func (s *Scheduler) cycle(ctx context.Context, source string) {
	n := s.runs.Add(1)
	started := time.Now()
	slog.Debug("Refresh cycle starting", "source", source, "run", n)
	s.run(ctx)
	slog.Debug("Refresh cycle finished", "source", source, "run", n, "duration", time.Since(started))
}
