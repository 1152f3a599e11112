// Package jobs provides scheduled background tasks for the order wizard.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order intake service.
//
// # Available Jobs
//
// 1. SessionExpiryJob - Runs every minute to expire wizard sessions idle
// longer than the configured TTL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireSessionsHandler, sessionTTL, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Expiry failures are logged and retried on the next tick; a failed job
// start aborts application startup.
package jobs
