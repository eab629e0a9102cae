// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch service.
//
// # Available Jobs
//
// 1. OverdueSweepJob - Runs every minute to flag active deliveries whose deadline has passed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(flagOverdueHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses the cron expression "0 * * * * *", running at the top of
// every minute. Each overdue assignment is flagged exactly once, so a sweep
// that finds nothing new is a cheap no-op.
//
// # Error Handling
//
// - Sweep errors are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
