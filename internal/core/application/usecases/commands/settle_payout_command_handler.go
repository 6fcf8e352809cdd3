package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payout"
)

// ErrNothingToSettle is returned when the payee has no completed-but-unsettled
// orders within the requested period.
var ErrNothingToSettle = errors.New("no settleable orders in period")

// SettlePayoutCommandHandler aggregates a payee's completed-but-unsettled
// orders in a period into one pending payout record. The tax withholding and
// net amount are computed by the payout aggregate.
type SettlePayoutCommandHandler struct {
	uowFactory SettlementUoWFactory
}

// NewSettlePayoutCommandHandler creates a handler for payout settlement.
func NewSettlePayoutCommandHandler(uowFactory SettlementUoWFactory) SettlePayoutCommandHandler {
	return SettlePayoutCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle settles the payee's payout and returns the created record.
// Orders already referenced by an existing payout record are excluded by the
// repository, so re-settling the same period cannot double-pay.
func (h SettlePayoutCommandHandler) Handle(
	ctx context.Context,
	command SettlePayoutCommand,
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

	settleable, err := uow.OrderRepository().GetAllSettleable(
		ctx, command.PayeeID(), command.Kind(), command.Period(),
	)
	if err != nil {
		return nil, err
	}
	if len(settleable) == 0 {
		return nil, fmt.Errorf("%w: payee %s", ErrNothingToSettle, command.PayeeID())
	}

	lines := make([]payout.Line, 0, len(settleable))
	for _, line := range settleable {
		lines = append(lines, payout.Line{
			OrderID: line.OrderID,
			Gross:   line.Gross,
		})
	}

	record, err := payout.NewRecord(
		kernel.NewUUID(),
		command.PayeeID(),
		command.Kind(),
		command.Period(),
		lines,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.PayoutRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
