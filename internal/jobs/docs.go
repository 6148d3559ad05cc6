// Package jobs provides scheduled background tasks for the shop system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping required by the shop service.
//
// # Available Jobs
//
// 1. StaleCartPurgeJob - Periodically removes carts untouched for longer than the configured window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(purgeStaleCartsHandler, config.CartPurgeSchedule, config.CartMaxAge, logger)
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
// The purge job takes a standard cron expression from configuration, hourly by
// default. Abandoned carts hold no business value past the retention window
// and only grow the tables the checkout path reads.
//
// # Error Handling
//
// - Purge failures are logged and retried on the next tick; a failing purge never affects foreground traffic
// - Failed job starts will stop any already running jobs
package jobs
