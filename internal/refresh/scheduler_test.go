package refresh

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/folio/internal/common"
)

func TestNewValidates(t *testing.T) {
	_, err := New(500*time.Millisecond, func(context.Context) {})
	require.ErrorIs(t, err, common.ErrInvalidConfig)

	_, err = New(time.Minute, nil)
	require.ErrorIs(t, err, common.ErrMissingConfig)

	s, err := New(5*time.Minute, func(context.Context) {})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, s.Interval())
}

func TestSchedulerRunsOnInterval(t *testing.T) {
	var calls atomic.Int32
	s, err := New(time.Second, func(context.Context) { calls.Add(1) })
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	assert.GreaterOrEqual(t, s.Runs(), int64(1))
}

func TestTriggerRunsImmediately(t *testing.T) {
	var calls atomic.Int32
	s, err := New(time.Hour, func(context.Context) { calls.Add(1) })
	require.NoError(t, err)

	s.Trigger(context.Background())
	s.Trigger(context.Background())
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, int64(2), s.Runs())
}

func TestTriggersMayOverlap(t *testing.T) {
	var active, peak atomic.Int32
	release := make(chan struct{})
	s, err := New(time.Hour, func(context.Context) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-release
		active.Add(-1)
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Trigger(context.Background())
		}()
	}

	require.Eventually(t, func() bool { return active.Load() == 2 }, time.Second, 10*time.Millisecond)
	close(release)
	wg.Wait()
	assert.Equal(t, int32(2), peak.Load())
}

func TestStopCancelsCycleContext(t *testing.T) {
	started := make(chan struct{}, 1)
	var cancelled atomic.Bool
	s, err := New(time.Second, func(ctx context.Context) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		cancelled.Store(true)
	})
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled cycle never started")
	}
	s.Stop()
	assert.True(t, cancelled.Load())
}

func TestStopWithoutStart(t *testing.T) {
	s, err := New(time.Minute, func(context.Context) {})
	require.NoError(t, err)
	assert.NotPanics(t, s.Stop)
}
