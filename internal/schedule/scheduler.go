package schedule

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
)

// FireFunc is invoked exactly once when the alarm time arrives.
type FireFunc func(ctx context.Context) error

// Scheduler polls a Clock until its Matcher reports a match.
type Scheduler struct {
	logger   *slog.Logger
	clock    Clock
	matcher  Matcher
	interval time.Duration

	// Identifies this run in log records
	runID ulid.ULID
}

// NewScheduler creates a scheduler sampling clock every interval.
func NewScheduler(matcher Matcher, interval time.Duration, clock Clock, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = RealClock{}
	}

	runID := ulid.Make()

	return &Scheduler{
		logger:   logger.With("run_id", runID.String()),
		clock:    clock,
		matcher:  matcher,
		interval: interval,
		runID:    runID,
	}
}

// RunID returns the identifier attached to this scheduler's log records.
func (s *Scheduler) RunID() string {
	return s.runID.String()
}

// Run blocks until the matcher fires, then calls fire once and returns its
// error. It returns ctx.Err() if the context is cancelled while waiting.
func (s *Scheduler) Run(ctx context.Context, fire FireFunc) error {
	if fire == nil {
		return errors.New("schedule: nil fire func")
	}

	s.logger.Debug("scheduler started", "interval", s.interval)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := s.clock.Now()
		if s.matcher.Match(now) {
			s.logger.Info("alarm time reached", "now", now.Format(time.TimeOnly))
			return fire(ctx)
		}

		s.logger.Debug("alarm not due", "now", now.Format(time.TimeOnly))

		select {
		case <-ctx.Done():
			s.logger.Debug("scheduler cancelled", "error", ctx.Err())
			return ctx.Err()
		case <-s.clock.After(s.interval):
		}
	}
}
