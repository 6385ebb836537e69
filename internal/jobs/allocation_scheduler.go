package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"logistics/internal/core/application/allocation"

	"github.com/robfig/cron/v3"
)

const sinkTimeout = 15 * time.Second

// ErrRunInProgress is returned by Trigger while another run holds the scheduler.
var ErrRunInProgress = errors.New("allocation run already in progress")

// ErrSchedulerStopped is returned by Trigger once the context passed to Run is done.
var ErrSchedulerStopped = errors.New("allocation scheduler is stopped")

// SchedulerComputationError means the next run time cannot be determined. The
// scheduler stops instead of retrying.
type SchedulerComputationError struct {
	Spec string
	Err  error
}

func NewSchedulerComputationError(spec string, err error) *SchedulerComputationError {
	return &SchedulerComputationError{Spec: spec, Err: err}
}

func (e *SchedulerComputationError) Error() string {
	return fmt.Sprintf("cannot compute next allocation run for %q: %v", e.Spec, e.Err)
}

func (e *SchedulerComputationError) Unwrap() error {
	return e.Err
}

// Runner executes one allocation pass.
type Runner interface {
	Run(ctx context.Context, trigger allocation.Trigger) allocation.Summary
}

// SummarySink receives every finished run summary. Sink failures are logged only.
type SummarySink interface {
	Publish(ctx context.Context, summary allocation.Summary) error
}

// ScheduleConfig is the daily run time in an IANA timezone.
type ScheduleConfig struct {
	Hour     int
	Minute   int
	Timezone string
}

// Spec renders the config as a robfig/cron expression.
func (c ScheduleConfig) Spec() string {
	return fmt.Sprintf("CRON_TZ=%s %d %d * * *", c.Timezone, c.Minute, c.Hour)
}

// AllocationScheduler fires the allocation engine once a day and on demand.
// At most one run is active at a time: a scheduled tick that finds a manual
// run in progress is skipped, and a manual trigger during any run fails fast.
type AllocationScheduler struct {
	runner   Runner
	clock    Clock
	schedule cron.Schedule
	spec     string
	sinks    []SummarySink
	logger   *slog.Logger

	running sync.Mutex

	mu   sync.RWMutex
	base context.Context
	last *allocation.Summary
}

// NewAllocationScheduler parses the schedule eagerly so a bad timezone or time
// fails at startup with a SchedulerComputationError.
func NewAllocationScheduler(
	runner Runner,
	clock Clock,
	cfg ScheduleConfig,
	sinks []SummarySink,
	logger *slog.Logger,
) (*AllocationScheduler, error) {
	spec := cfg.Spec()
	if cfg.Hour < 0 || cfg.Hour > 23 || cfg.Minute < 0 || cfg.Minute > 59 {
		return nil, NewSchedulerComputationError(spec, errors.New("hour must be 0-23 and minute 0-59"))
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, NewSchedulerComputationError(spec, err)
	}

	return &AllocationScheduler{
		runner:   runner,
		clock:    clock,
		schedule: schedule,
		spec:     spec,
		sinks:    sinks,
		logger:   logger.With("component", "allocation_scheduler"),
		base:     context.Background(),
	}, nil
}

// NextRun returns the first scheduled run strictly after t.
func (s *AllocationScheduler) NextRun(t time.Time) (time.Time, error) {
	next := s.schedule.Next(t)
	if next.IsZero() {
		return time.Time{}, NewSchedulerComputationError(s.spec, errors.New("schedule has no next occurrence"))
	}
	return next, nil
}

// Run waits for each scheduled time and runs the engine until ctx is cancelled.
// It returns nil on cancellation and a SchedulerComputationError if the schedule breaks.
// The next run time is always recomputed from the clock after a run.
func (s *AllocationScheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.base = ctx
	s.mu.Unlock()

	for {
		now := s.clock.Now()
		next, err := s.NextRun(now)
		if err != nil {
			s.logger.ErrorContext(ctx, "Allocation schedule failed", "error", err)
			return err
		}

		s.logger.InfoContext(ctx, "Next allocation run scheduled", "next_run", next, "in", next.Sub(now).String())

		if err = s.clock.Sleep(ctx, next.Sub(now)); err != nil {
			s.logger.InfoContext(ctx, "Allocation scheduler stopped")
			return nil
		}

		if !s.running.TryLock() {
			s.logger.WarnContext(ctx, "Scheduled allocation run skipped: a run is already in progress")
			continue
		}
		s.execute(ctx, allocation.TriggerScheduled)
		s.running.Unlock()
	}
}

// Trigger runs the engine immediately. The run is bound to the scheduler's lifetime,
// not to ctx, so a dropped client does not abort it. After shutdown it returns
// ErrSchedulerStopped without running.
func (s *AllocationScheduler) Trigger(_ context.Context) (allocation.Summary, error) {
	s.mu.RLock()
	base := s.base
	s.mu.RUnlock()

	if base.Err() != nil {
		return allocation.Summary{}, ErrSchedulerStopped
	}

	if !s.running.TryLock() {
		return allocation.Summary{}, ErrRunInProgress
	}
	defer s.running.Unlock()

	return s.execute(base, allocation.TriggerManual), nil
}

// LastSummary returns the summary of the most recent finished run.
func (s *AllocationScheduler) LastSummary() (allocation.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last == nil {
		return allocation.Summary{}, false
	}
	return *s.last, true
}

func (s *AllocationScheduler) execute(ctx context.Context, trigger allocation.Trigger) allocation.Summary {
	summary := s.runner.Run(ctx, trigger)

	s.mu.Lock()
	s.last = &summary
	s.mu.Unlock()

	s.log(ctx, summary)
	s.publish(ctx, summary)
	return summary
}

func (s *AllocationScheduler) log(ctx context.Context, summary allocation.Summary) {
	level := slog.LevelInfo
	if summary.TimedOut || summary.Interrupted || len(summary.Errors) > 0 ||
		summary.FetchFailures > 0 || summary.PersistFailures > 0 {
		level = slog.LevelWarn
	}

	s.logger.Log(ctx, level, summary.Message,
		"run_id", summary.RunID,
		"trigger", string(summary.Trigger),
		"duration", summary.Duration().String(),
		"assignments_created", summary.AssignmentsCreated,
		"total_cost", summary.TotalCost,
		"deferred_orders", summary.DeferredOrders,
		"agent_utilization", summary.AgentUtilization,
		"fetch_failures", summary.FetchFailures,
		"persist_failures", summary.PersistFailures,
		"unprocessed_warehouses", summary.UnprocessedWarehouses,
		"timed_out", summary.TimedOut,
	)
}

func (s *AllocationScheduler) publish(ctx context.Context, summary allocation.Summary) {
	if len(s.sinks) == 0 {
		return
	}

	sinkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkTimeout)
	defer cancel()

	for _, sink := range s.sinks {
		if err := sink.Publish(sinkCtx, summary); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish allocation summary",
				"run_id", summary.RunID, "sink", fmt.Sprintf("%T", sink), "error", err)
		}
	}
}
