package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/payout"
)

// DeletePayoutCommandHandler deletes pending payout records, returning their
// payment lines to the settleable pool. Paid records are ledger data and
// refuse deletion.
type DeletePayoutCommandHandler struct {
	uowFactory PayoutUoWFactory
}

// NewDeletePayoutCommandHandler creates a handler for payout deletion.
func NewDeletePayoutCommandHandler(uowFactory PayoutUoWFactory) DeletePayoutCommandHandler {
	return DeletePayoutCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes the payout record and its payment lines.
func (h DeletePayoutCommandHandler) Handle(ctx context.Context, command DeletePayoutCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	payoutsRepo := uow.PayoutRepository()

	record, err := payoutsRepo.Get(ctx, command.PayoutID())
	if err != nil {
		return err
	}

	if !record.CanDelete() {
		return fmt.Errorf("%w: record %s cannot be deleted", payout.ErrRecordImmutable, record.ID())
	}

	if err = payoutsRepo.Delete(ctx, record.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
