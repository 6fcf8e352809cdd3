package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// settlementLookback is the period each sweep covers. The job runs weekly,
// so every sweep settles the week that just ended.
const settlementLookback = 7 * 24 * time.Hour

// PayoutSettlementJob manages the scheduled settlement of completed orders.
// Runs every Monday at 02:00 to settle the previous week for every seller
// and rider with completed orders that are not yet part of a payout record.
type PayoutSettlementJob struct {
	handler    commands.SettlePayoutCommandHandler
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewPayoutSettlementJob creates a new job for weekly payout settlement.
// Uses SettlePayoutCommandHandler to settle each payee found by the sweep.
func NewPayoutSettlementJob(
	handler commands.SettlePayoutCommandHandler,
	uowFactory ports.UnitOfWorkFactory,
	clock ports.Clock,
	logger *slog.Logger,
) *PayoutSettlementJob {
	return &PayoutSettlementJob{
		handler:    handler,
		uowFactory: uowFactory,
		clock:      clock,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "payout_settlement_job"),
	}
}

// Start begins the payout settlement job to run every Monday at 02:00.
func (j *PayoutSettlementJob) Start() error {
	_, err := j.cron.AddFunc("0 0 2 * * MON", func() {
		ctx := context.Background()
		j.Run(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payout settlement job started (running weekly)")
	return nil
}

// Run executes one settlement sweep over the past week for both payee kinds.
// Exposed so an operator can trigger an out-of-schedule sweep.
func (j *PayoutSettlementJob) Run(ctx context.Context) {
	now := j.clock.Now()
	period := payout.Period{
		From: now.Add(-settlementLookback),
		To:   now,
	}

	for _, kind := range []payout.PayeeKind{payout.PayeeSeller, payout.PayeeRider} {
		if err := j.settleKind(ctx, kind, period); err != nil {
			j.logger.ErrorContext(ctx, "Payout settlement sweep failed",
				"kind", kind.String(), "error", err)
		}
	}
}

func (j *PayoutSettlementJob) settleKind(
	ctx context.Context,
	kind payout.PayeeKind,
	period payout.Period,
) error {
	payees, err := j.uowFactory.Create().OrderRepository().GetSettleablePayees(ctx, kind, period)
	if err != nil {
		return err
	}

	for _, payeeID := range payees {
		cmd, cmdErr := commands.NewSettlePayoutCommand(payeeID, kind, period)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build settlement command",
				"payee", payeeID.String(), "kind", kind.String(), "error", cmdErr)
			continue
		}

		record, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			// Another sweep may have settled the payee between the payee scan
			// and the settlement itself; that is not a failure.
			if !errors.Is(handleErr, commands.ErrNothingToSettle) {
				j.logger.ErrorContext(ctx, "Payout settlement failed",
					"payee", payeeID.String(), "kind", kind.String(), "error", handleErr)
			}
			continue
		}

		j.logger.InfoContext(ctx, "Payout settled",
			"payee", payeeID.String(),
			"kind", kind.String(),
			"payout", record.ID().String(),
			"net", record.NetAmount().String())
	}

	return nil
}

// Stop stops the payout settlement job.
func (j *PayoutSettlementJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payout settlement job stopped")
}
