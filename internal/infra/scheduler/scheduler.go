package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorhill/cronexpr"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler runs a job on a cron schedule. Runs never overlap: the next
// fire time is computed after the previous run returns.
type Scheduler struct {
	name   string
	expr   *cronexpr.Expression
	job    Job
	logger *slog.Logger
	now    func() time.Time
	wait   func(ctx context.Context, d time.Duration) bool
}

// New parses schedule (standard five field cron, or @daily style macros).
func New(name, schedule string, job Job, logger *slog.Logger) (*Scheduler, error) {
	expr, err := cronexpr.Parse(schedule)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", schedule, err)
	}
	return &Scheduler{
		name:   name,
		expr:   expr,
		job:    job,
		logger: logger.With("component", "scheduler", "job", name),
		now:    time.Now,
		wait:   sleep,
	}, nil
}

// Next reports the first fire time strictly after from.
func (s *Scheduler) Next(from time.Time) time.Time {
	return s.expr.Next(from)
}

// Run blocks until ctx is cancelled, firing the job at every scheduled time.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		now := s.now()
		next := s.expr.Next(now)
		if next.IsZero() {
			s.logger.Warn("schedule has no future fire times")
			return
		}
		s.logger.Debug("next run scheduled", "at", next)
		if !s.wait(ctx, next.Sub(now)) {
			return
		}
		_ = s.RunOnce(ctx)
	}
}

// RunOnce fires the job immediately and logs the outcome.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	start := s.now()
	if err := s.job(ctx); err != nil {
		s.logger.Error("scheduled job failed", "error", err, "elapsed", s.now().Sub(start))
		return err
	}
	s.logger.Info("scheduled job finished", "elapsed", s.now().Sub(start))
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
