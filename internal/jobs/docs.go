// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. PayoutSettlementJob - Runs every Monday at 02:00 to settle the previous
// week's completed orders into payout records for every seller and rider
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(settlePayoutHandler, uowFactory, clock, logger)
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
// The settlement job uses the cron expression "0 0 2 * * MON". Each sweep
// covers the seven days before the sweep's start, and orders already
// referenced by a payout record are excluded, so a re-run never double-pays.
//
// # Error Handling
//
// - The settlement job ignores the expected no-op case (nothing to settle)
// - All other settlement errors are logged and the sweep moves to the next payee
// - Failed job starts are reported to the caller
package jobs
