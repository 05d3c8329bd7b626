package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"takeout/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReconcileOrdersJob runs the stale-order sweeps on a fixed interval:
// canceling orders that were never paid, dispatching couriers for settled
// orders stuck in the pickup hall and expiring orders nobody took.
type ReconcileOrdersJob struct {
	handler  commands.ReconcileOrdersCommandHandler
	cron     *cron.Cron
	interval int
	logger   *slog.Logger
}

// NewReconcileOrdersJob creates a job running the reconciliation sweeps
// every intervalSeconds seconds.
func NewReconcileOrdersJob(
	handler commands.ReconcileOrdersCommandHandler,
	intervalSeconds int,
	logger *slog.Logger,
) *ReconcileOrdersJob {
	return &ReconcileOrdersJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		interval: intervalSeconds,
		logger:   logger.With("component", "reconcile_orders_job"),
	}
}

// Start schedules the reconciliation sweeps.
func (j *ReconcileOrdersJob) Start() error {
	spec := fmt.Sprintf("@every %ds", j.interval)
	_, err := j.cron.AddFunc(spec, func() {
		ctx := context.Background()
		cmd := commands.NewReconcileOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Order reconciliation run failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Order reconciliation job started", "intervalSeconds", j.interval)
	return nil
}

// Stop stops the reconciliation job.
func (j *ReconcileOrdersJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order reconciliation job stopped")
}
