package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OverdueSweepJob manages the scheduled deadline sweep.
// Runs every minute to flag active deliveries whose deadline has passed.
type OverdueSweepJob struct {
	handler commands.FlagOverdueAssignmentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueSweepJob creates a new job for flagging overdue assignments.
// Uses FlagOverdueAssignmentsCommandHandler to process the sweep every minute.
func NewOverdueSweepJob(handler commands.FlagOverdueAssignmentsCommandHandler, logger *slog.Logger) *OverdueSweepJob {
	return &OverdueSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "overdue_sweep_job"),
	}
}

// Start begins the overdue sweep job to run every minute.
func (j *OverdueSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewFlagOverdueAssignmentsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Overdue sweep job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue sweep job started (running every minute)")
	return nil
}

// Stop stops the overdue sweep job.
func (j *OverdueSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue sweep job stopped")
}
