package jobs

import (
	"context"
	"log/slog"
	"time"

	"shop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleCartPurgeJob removes abandoned carts on a fixed schedule. A cart
// counts as abandoned when it has not been touched for the configured
// retention window.
type StaleCartPurgeJob struct {
	handler  commands.PurgeStaleCartsCommandHandler
	schedule string
	maxAge   time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleCartPurgeJob creates a purge job with the given cron schedule and
// retention window.
func NewStaleCartPurgeJob(
	handler commands.PurgeStaleCartsCommandHandler,
	schedule string,
	maxAge time.Duration,
	logger *slog.Logger,
) *StaleCartPurgeJob {
	return &StaleCartPurgeJob{
		handler:  handler,
		schedule: schedule,
		maxAge:   maxAge,
		cron:     cron.New(),
		logger:   logger.With("component", "stale_cart_purge_job"),
	}
}

// Start schedules the purge job.
func (j *StaleCartPurgeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewPurgeStaleCartsCommand(j.maxAge)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale cart purge misconfigured", "error", err)
			return
		}

		purged, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale cart purge failed", "error", err)
			return
		}

		if purged > 0 {
			j.logger.InfoContext(ctx, "Stale carts purged", "count", purged, "max_age", j.maxAge)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale cart purge job started", "schedule", j.schedule)
	return nil
}

// Stop stops the purge job.
func (j *StaleCartPurgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale cart purge job stopped")
}
