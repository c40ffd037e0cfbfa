package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderDispatchJob periodically retries matching for orders that are still
// waiting for a driver. Each tick handles at most one order.
type OrderDispatchJob struct {
	handler commands.DispatchPendingOrdersCommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderDispatchJob creates a new job for background order matching.
// The schedule is a six-field cron expression with a seconds column.
func NewOrderDispatchJob(
	handler commands.DispatchPendingOrdersCommandHandler,
	spec string,
	logger *slog.Logger,
) *OrderDispatchJob {
	return &OrderDispatchJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_dispatch_job"),
	}
}

// Start schedules the dispatch passes.
func (j *OrderDispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		cmd, err := commands.NewDispatchPendingOrdersCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Order dispatch command construction failed", "error", err)
			return
		}

		// A pass with nothing to dispatch returns nil, so every error is
		// worth logging.
		if err = j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Order dispatch job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order dispatch job started", "spec", j.spec)
	return nil
}

// Stop stops the dispatch job.
func (j *OrderDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order dispatch job stopped")
}
