package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/booklibrary/internal/reminder"
)

// ErrSweepInProgress is returned by RunNow while another sweep is running.
var ErrSweepInProgress = errors.New("reminder sweep already in progress")

// sweepTimeout bounds a single sweep.
const sweepTimeout = 10 * time.Minute

// Sweeper runs one due-date sweep.
type Sweeper interface {
	Run(ctx context.Context) (reminder.Result, error)
}

// Status is a snapshot of the scheduler for the status endpoint.
type Status struct {
	Running    bool             `json:"running"`
	Sweeping   bool             `json:"sweeping"`
	Schedule   string           `json:"schedule"`
	NextRun    *time.Time       `json:"nextRun,omitempty"`
	LastResult *reminder.Result `json:"lastResult,omitempty"`
	LastError  string           `json:"lastError,omitempty"`
}

// ReminderScheduler runs the due-date sweep on a cron schedule. At most one
// sweep runs at a time; ticks that arrive during a sweep are dropped.
type ReminderScheduler struct {
	sweeper    Sweeper
	schedule   string
	runOnStart bool

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSweeping bool
	baseCtx    context.Context
	cancelFunc context.CancelFunc
	inflight   sync.WaitGroup
	stopped    chan struct{} // closed once the first Stop has drained in-flight work

	lastResult *reminder.Result
	lastError  string
}

// NewReminderScheduler creates a scheduler for sweeper. The schedule is
// validated in Start.
func NewReminderScheduler(sweeper Sweeper, schedule string, runOnStart bool) *ReminderScheduler {
	return &ReminderScheduler{
		sweeper:    sweeper,
		schedule:   schedule,
		runOnStart: runOnStart,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cron.PrintfLogger(log.Default())),
		),
	}
}

// Start registers the sweep and starts cron. The scheduler stops when ctx is
// cancelled.
func (s *ReminderScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid reminder schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runScheduled)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder sweep: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)
	// in-flight sweeps finish even after shutdown begins
	s.baseCtx = context.WithoutCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	s.stopped = make(chan struct{})

	nextRun, _ := NextRunTime(s.schedule, time.Now())
	log.Printf("Reminder scheduler: started with schedule '%s'. Next run: %v", s.schedule, nextRun)

	if s.runOnStart {
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			s.runScheduled()
		}()
	}

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops cron and waits for an in-flight sweep to finish. Concurrent
// callers all wait, whichever of them actually stops cron.
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	done := s.stopped
	if !s.isRunning {
		s.mu.Unlock()
		if done != nil {
			<-done
		}
		return
	}
	s.isRunning = false
	s.cron.Remove(s.entryID)
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.mu.Unlock()

	// the sweep's own bookkeeping takes the lock, so wait without holding it
	<-s.cron.Stop().Done()
	s.inflight.Wait()
	if cancel != nil {
		cancel()
	}
	close(done)

	log.Printf("Reminder scheduler: stopped")
}

// RunNow runs a sweep synchronously on the caller's goroutine.
func (s *ReminderScheduler) RunNow(ctx context.Context) (reminder.Result, error) {
	if !s.beginSweep() {
		return reminder.Result{}, ErrSweepInProgress
	}
	return s.sweep(ctx)
}

// IsRunning returns whether the scheduler is active
func (s *ReminderScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsSweeping returns whether a sweep is currently in progress
func (s *ReminderScheduler) IsSweeping() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSweeping
}

// NextRun returns when the next scheduled sweep will occur.
func (s *ReminderScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID && !entry.Next.IsZero() {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// LastResult returns the outcome of the most recent sweep, if any.
func (s *ReminderScheduler) LastResult() (*reminder.Result, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult, s.lastError
}

func (s *ReminderScheduler) Status() Status {
	last, lastErr := s.LastResult()
	return Status{
		Running:    s.IsRunning(),
		Sweeping:   s.IsSweeping(),
		Schedule:   s.schedule,
		NextRun:    s.NextRun(),
		LastResult: last,
		LastError:  lastErr,
	}
}

func (s *ReminderScheduler) runScheduled() {
	if !s.beginSweep() {
		log.Printf("Reminder sweep: skipped (already sweeping)")
		return
	}

	s.mu.RLock()
	base := s.baseCtx
	s.mu.RUnlock()
	if base == nil {
		base = context.Background()
	}

	ctx, cancel := context.WithTimeout(base, sweepTimeout)
	defer cancel()

	if _, err := s.sweep(ctx); err != nil {
		log.Printf("Reminder sweep: failed: %v", err)
	}
}

func (s *ReminderScheduler) beginSweep() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isSweeping {
		return false
	}
	s.isSweeping = true
	return true
}

// sweep runs the sweeper; the caller must have won beginSweep.
func (s *ReminderScheduler) sweep(ctx context.Context) (result reminder.Result, err error) {
	defer func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.isSweeping = false
		s.lastResult = &result
		s.lastError = ""
		if err != nil {
			s.lastError = err.Error()
		}
	}()
	return s.sweeper.Run(ctx)
}
