package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/core/ports"
)

// MarkPayoutPaidCommandHandler disburses a pending payout with its receipt
// image. The transition is irreversible.
type MarkPayoutPaidCommandHandler struct {
	uowFactory PayoutUoWFactory
	clock      ports.Clock
}

// NewMarkPayoutPaidCommandHandler creates a handler for payout disbursement.
func NewMarkPayoutPaidCommandHandler(
	uowFactory PayoutUoWFactory,
	clock ports.Clock,
) MarkPayoutPaidCommandHandler {
	return MarkPayoutPaidCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle marks the payout paid and returns the updated record.
// Fails with payout.ErrRecordImmutable when the record is already paid.
func (h MarkPayoutPaidCommandHandler) Handle(
	ctx context.Context,
	command MarkPayoutPaidCommand,
) (*payout.Record, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	payoutsRepo := uow.PayoutRepository()

	record, err := payoutsRepo.Get(ctx, command.PayoutID())
	if err != nil {
		return nil, err
	}

	if err = record.MarkPaid(command.ReceiptRef(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = payoutsRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
