package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/booklibrary/internal/reminder"
)

// blockingSweeper holds every run until release is closed.
type blockingSweeper struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	err     error
}

func newBlockingSweeper() *blockingSweeper {
	return &blockingSweeper{
		started: make(chan struct{}, 10),
		release: make(chan struct{}),
	}
}

func (b *blockingSweeper) Run(ctx context.Context) (reminder.Result, error) {
	n := b.calls.Add(1)
	b.started <- struct{}{}
	<-b.release
	return reminder.Result{RunID: "run", Sent: int(n)}, b.err
}

type instantSweeper struct {
	calls atomic.Int32
}

func (i *instantSweeper) Run(ctx context.Context) (reminder.Result, error) {
	i.calls.Add(1)
	return reminder.Result{RunID: "instant"}, nil
}

func waitStarted(t *testing.T, b *blockingSweeper) {
	t.Helper()
	select {
	case <-b.started:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep did not start")
	}
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("@every 24h"))
	assert.NoError(t, ValidateSchedule("0 8 * * *"))
	assert.NoError(t, ValidateSchedule("@daily"))
	assert.Error(t, ValidateSchedule("every day"))
	assert.Error(t, ValidateSchedule("0 0 8 * * *"))
}

func TestNextRunTime(t *testing.T) {
	from := time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)
	next, err := NextRunTime("0 8 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), *next)

	_, err = NextRunTime("nope", from)
	assert.Error(t, err)
}

func TestReminderScheduler_RunNowRejectsOverlap(t *testing.T) {
	sweeper := newBlockingSweeper()
	s := NewReminderScheduler(sweeper, "@every 24h", false)

	done := make(chan error, 1)
	go func() {
		_, err := s.RunNow(context.Background())
		done <- err
	}()
	waitStarted(t, sweeper)
	assert.True(t, s.IsSweeping())

	_, err := s.RunNow(context.Background())
	assert.ErrorIs(t, err, ErrSweepInProgress)

	close(sweeper.release)
	require.NoError(t, <-done)
	assert.False(t, s.IsSweeping())
	assert.Equal(t, int32(1), sweeper.calls.Load())
}

func TestReminderScheduler_ScheduledTickSkippedDuringSweep(t *testing.T) {
	sweeper := newBlockingSweeper()
	s := NewReminderScheduler(sweeper, "@every 24h", false)

	go func() { _, _ = s.RunNow(context.Background()) }()
	waitStarted(t, sweeper)

	s.runScheduled()
	assert.Equal(t, int32(1), sweeper.calls.Load())

	close(sweeper.release)
}

func TestReminderScheduler_RecordsLastResult(t *testing.T) {
	sweeper := newBlockingSweeper()
	sweeper.err = errors.New("db down")
	close(sweeper.release)
	s := NewReminderScheduler(sweeper, "@every 24h", false)

	last, lastErr := s.LastResult()
	assert.Nil(t, last)
	assert.Empty(t, lastErr)

	_, err := s.RunNow(context.Background())
	assert.Error(t, err)

	last, lastErr = s.LastResult()
	require.NotNil(t, last)
	assert.Equal(t, "run", last.RunID)
	assert.Equal(t, "db down", lastErr)
}

func TestReminderScheduler_StartRunOnStartAndStop(t *testing.T) {
	sweeper := &instantSweeper{}
	s := NewReminderScheduler(sweeper, "@every 24h", true)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.NotNil(t, s.NextRun())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())
	// Stop waits for the start-up sweep
	assert.Equal(t, int32(1), sweeper.calls.Load())

	status := s.Status()
	assert.False(t, status.Running)
	assert.Equal(t, "@every 24h", status.Schedule)
	require.NotNil(t, status.LastResult)
	assert.Equal(t, "instant", status.LastResult.RunID)
}

func TestReminderScheduler_StartInvalidSchedule(t *testing.T) {
	s := NewReminderScheduler(&instantSweeper{}, "whenever", false)
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestReminderScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewReminderScheduler(&instantSweeper{}, "@every 24h", false)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 5*time.Second, 10*time.Millisecond)
}

func TestReminderScheduler_StopWaitsForInflightSweep(t *testing.T) {
	sweeper := newBlockingSweeper()
	s := NewReminderScheduler(sweeper, "@every 24h", true)
	require.NoError(t, s.Start(context.Background()))
	waitStarted(t, sweeper)

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a sweep was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(sweeper.release)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestReminderScheduler_StopAfterCancelWaitsForInflightSweep(t *testing.T) {
	sweeper := newBlockingSweeper()
	s := NewReminderScheduler(sweeper, "@every 24h", true)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	waitStarted(t, sweeper)

	// the context watcher begins stopping first
	cancel()
	assert.Eventually(t, func() bool { return !s.IsRunning() }, 5*time.Second, 10*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a sweep was running")
	case <-time.After(50 * time.Millisecond):
	}
	assert.True(t, s.IsSweeping())

	close(sweeper.release)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
	assert.False(t, s.IsSweeping())
}

func TestReminderScheduler_StopWithoutStart(t *testing.T) {
	s := NewReminderScheduler(&instantSweeper{}, "@every 24h", false)

	done := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a scheduler that never started")
	}
}
