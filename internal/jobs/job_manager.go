package jobs

import (
	"context"
	"log/slog"
)

// JobManager owns the lifetime of the background jobs.
// Provides a unified interface to start and stop them.
type JobManager struct {
	scheduler *AllocationScheduler
	logger    *slog.Logger

	cancel context.CancelFunc
	done   chan error
}

func NewJobManager(scheduler *AllocationScheduler, logger *slog.Logger) *JobManager {
	return &JobManager{
		scheduler: scheduler,
		logger:    logger.With("component", "job_manager"),
	}
}

// StartAll starts the allocation scheduler in the background. The returned channel
// yields the scheduler's exit error once, which is non-nil only when the schedule
// could not be computed.
func (jm *JobManager) StartAll(ctx context.Context) <-chan error {
	runCtx, cancel := context.WithCancel(ctx)
	jm.cancel = cancel
	jm.done = make(chan error, 1)

	go func() {
		jm.done <- jm.scheduler.Run(runCtx)
		close(jm.done)
	}()

	jm.logger.InfoContext(ctx, "Background jobs started")
	return jm.done
}

// StopAll stops the scheduler and waits for a running allocation to finish.
func (jm *JobManager) StopAll() {
	if jm.cancel == nil {
		return
	}

	jm.cancel()
	jm.scheduler.running.Lock()
	jm.scheduler.running.Unlock() //nolint:staticcheck // waits for the in-flight run

	jm.logger.Info("Background jobs stopped")
}
