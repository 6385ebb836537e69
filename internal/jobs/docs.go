// Package jobs provides scheduled background tasks for the logistics service.
//
// # Available Jobs
//
// AllocationScheduler runs the allocation engine once a day at a configured
// local time. The next run time is computed with a github.com/robfig/cron/v3
// schedule ("CRON_TZ=<tz> <minute> <hour> * * *") and recomputed from the clock
// after every run, so a long run never shifts later runs.
//
// # Usage
//
//	scheduler, err := jobs.NewAllocationScheduler(engine, jobs.SystemClock{}, cfg, sinks, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	jobManager := jobs.NewJobManager(scheduler, logger)
//	errCh := jobManager.StartAll(ctx)
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A manual Trigger during a run returns ErrRunInProgress
//   - A scheduled tick during a manual run is skipped with a warning
//   - A SchedulerComputationError ends the loop and is reported on the StartAll channel
//   - Summary sink failures are logged and never fail the run
package jobs
