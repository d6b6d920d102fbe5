package verification

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner is the scan entry point the scheduler drives; satisfied by *Service.
type Runner interface {
	Scan(ctx context.Context, now time.Time) (*BatchReport, error)
}

// Scheduler fires one scan per day at a fixed UTC wall-clock time and exposes
// RunOnce for operational and test use. The periodic trigger is injected
// wiring, not hard-coded: tests call RunOnce directly with a controlled
// clock.
type Scheduler struct {
	runner Runner
	hour   int
	minute int
	logger *slog.Logger
	clock  func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets the scheduler logger.
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithClock sets the time source; used by tests.
func WithClock(clock func() time.Time) SchedulerOption {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// NewScheduler constructs a daily scheduler firing at hour:minute UTC.
func NewScheduler(runner Runner, hour, minute int, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		runner: runner,
		hour:   hour,
		minute: minute,
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the trigger loop. Calling Start on a running scheduler is a
// no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
}

// Stop halts the trigger loop and waits for an in-flight scan to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// RunOnce performs one synchronous scan. The caller's context is the
// cancellation signal: cancelling stops new per-organisation work and yields
// a partial report marked cancelled.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) (*BatchReport, error) {
	return s.runner.Scan(ctx, now)
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	for {
		now := s.clock()
		next := nextRunAfter(now, s.hour, s.minute)
		timer := time.NewTimer(next.Sub(now))

		s.logger.Info("verification scan scheduled", "next_run", next)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		report, err := s.runner.Scan(ctx, s.clock())
		if err != nil {
			s.logger.Error("scheduled verification scan failed", "error", err)
			continue
		}
		// The scanner logs the summary; surface every error entry here so
		// scheduled-run failures are never silently dropped.
		for _, e := range report.Errors {
			s.logger.Warn("scheduled scan organisation error",
				"organisation_id", e.OrganisationID, "message", e.Message)
		}
	}
}

// nextRunAfter returns the first hour:minute UTC instant strictly after now.
func nextRunAfter(now time.Time, hour, minute int) time.Time {
	now = now.UTC()
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !candidate.After(now) {
		candidate = candidate.Add(24 * time.Hour)
	}
	return candidate
}
