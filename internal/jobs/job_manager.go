package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderDispatchJob    *OrderDispatchJob
	assignmentExpiryJob *AssignmentExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers and cron specs as dependencies to wire up the job
// execution.
func NewJobManager(
	dispatchHandler commands.DispatchPendingOrdersCommandHandler,
	expiryHandler commands.ExpireAssignmentsCommandHandler,
	dispatchSpec string,
	expirySpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderDispatchJob:    NewOrderDispatchJob(dispatchHandler, dispatchSpec, logger),
		assignmentExpiryJob: NewAssignmentExpiryJob(expiryHandler, expirySpec, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start order dispatch job: %w", err)
	}

	if err := jm.assignmentExpiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.orderDispatchJob.Stop()
		return fmt.Errorf("failed to start assignment expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.assignmentExpiryJob.Stop()
	jm.orderDispatchJob.Stop()
}
