package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	payoutSettlementJob *PayoutSettlementJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	settlePayoutHandler commands.SettlePayoutCommandHandler,
	uowFactory ports.UnitOfWorkFactory,
	clock ports.Clock,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		payoutSettlementJob: NewPayoutSettlementJob(settlePayoutHandler, uowFactory, clock, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.payoutSettlementJob.Start(); err != nil {
		return fmt.Errorf("failed to start payout settlement job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.payoutSettlementJob.Stop()
}
