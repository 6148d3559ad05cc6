package cmd

import "time"

// Config carries every environment-driven setting the application needs.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// CartMaxAge is how long an untouched cart survives before the purge
	// job removes it.
	CartMaxAge time.Duration

	// CartPurgeSchedule is the cron expression driving the purge job.
	CartPurgeSchedule string
}
