package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AssignmentExpiryJob periodically cancels assignments the driver never
// confirmed, releasing the driver and returning the order to the matching
// queue.
type AssignmentExpiryJob struct {
	handler commands.ExpireAssignmentsCommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAssignmentExpiryJob creates a new job for expiring stale assignments.
// The schedule is a six-field cron expression with a seconds column.
func NewAssignmentExpiryJob(
	handler commands.ExpireAssignmentsCommandHandler,
	spec string,
	logger *slog.Logger,
) *AssignmentExpiryJob {
	return &AssignmentExpiryJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "assignment_expiry_job"),
	}
}

// Start schedules the expiry sweeps.
func (j *AssignmentExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireAssignmentsCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Assignment expiry command construction failed", "error", err)
			return
		}

		if err = j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Assignment expiry job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment expiry job started", "spec", j.spec)
	return nil
}

// Stop stops the expiry job.
func (j *AssignmentExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment expiry job stopped")
}
