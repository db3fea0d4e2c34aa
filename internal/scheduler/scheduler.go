// Package scheduler provides a daily scheduler for fuel price notifications.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Runner performs one notification. The run command adapts
// pipeline.Pipeline.Run through RunnerFunc.
type Runner interface {
	Run(ctx context.Context, region string) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, region string) error

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, region string) error {
	return f(ctx, region)
}

// Scheduler manages the daily notification schedule.
type Scheduler struct {
	runner        Runner
	region        string
	notifyHour    int
	notifyOnStart bool
	logger        zerolog.Logger
	now           func() time.Time

	mu           sync.RWMutex
	nextNotifyAt time.Time
	lastNotifyAt *time.Time
	running      bool
}

// New creates a new Scheduler. region is passed to every run; empty means
// the stored or default region is used.
func New(runner Runner, region string, notifyHour int, notifyOnStart bool, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		runner:        runner,
		region:        region,
		notifyHour:    notifyHour,
		notifyOnStart: notifyOnStart,
		logger:        logger.With().Str("component", "scheduler").Logger(),
		now:           time.Now,
	}
}

// Start starts the scheduler and blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.logger.Info().Int("notifyHour", s.notifyHour).Msg("starting scheduler")

	if s.notifyOnStart {
		s.runNotify(ctx)
	}

	nextNotify := s.calculateNextNotifyTime()
	s.mu.Lock()
	s.nextNotifyAt = nextNotify
	s.mu.Unlock()

	s.logger.Info().
		Time("nextNotify", nextNotify).
		Dur("duration", time.Until(nextNotify)).
		Msg("next notification scheduled")

	timer := time.NewTimer(time.Until(nextNotify))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("scheduler stopped")
			return ctx.Err()
		case <-timer.C:
			s.runNotify(ctx)

			nextNotify = s.calculateNextNotifyTime()
			s.mu.Lock()
			s.nextNotifyAt = nextNotify
			s.mu.Unlock()

			s.logger.Info().
				Time("nextNotify", nextNotify).
				Msg("next notification scheduled")

			timer.Reset(time.Until(nextNotify))
		}
	}
}

// calculateNextNotifyTime returns the next occurrence of the notify hour.
func (s *Scheduler) calculateNextNotifyTime() time.Time {
	now := s.now()

	next := time.Date(now.Year(), now.Month(), now.Day(), s.notifyHour, 0, 0, 0, now.Location())

	// If the notify time has already passed today, schedule for tomorrow
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

// runNotify runs one notification.
func (s *Scheduler) runNotify(ctx context.Context) {
	s.logger.Info().Msg("running scheduled notification")

	now := s.now()
	s.mu.Lock()
	s.lastNotifyAt = &now
	s.mu.Unlock()

	if err := s.runner.Run(ctx, s.region); err != nil {
		s.logger.Error().Err(err).Msg("scheduled notification failed")
	} else {
		s.logger.Info().Msg("scheduled notification completed")
	}
}

// NextNotifyAt returns the time of the next scheduled notification.
func (s *Scheduler) NextNotifyAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextNotifyAt
}

// LastNotifyAt returns the time of the last notification.
func (s *Scheduler) LastNotifyAt() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastNotifyAt
}

// IsRunning returns whether the scheduler is currently running.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
