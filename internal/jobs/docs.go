// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the dispatch core depends on.
//
// # Available Jobs
//
// 1. OrderDispatchJob - Retries matching for orders still waiting for a driver,
// including scheduled trips that have come due
// 2. AssignmentExpiryJob - Cancels assignments the driver never confirmed and
// returns those orders to the matching queue
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers and schedules
//	jobManager := jobs.NewJobManager(dispatchHandler, expiryHandler, dispatchSpec, expirySpec, logger)
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
// Both jobs accept a six-field cron expression with a seconds column. The
// dispatch job typically runs every few seconds so waiting passengers see a
// driver quickly; the expiry job runs less often since the acceptance window
// is measured in minutes.
//
// # Error Handling
//
// Both handlers treat an empty work queue as a successful no-op, so every
// error a job sees is logged. A failed job start stops any already running
// jobs.
package jobs
