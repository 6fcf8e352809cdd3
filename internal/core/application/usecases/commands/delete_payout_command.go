package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDeletePayoutCommandIsNotConstructed = errors.New(
	"DeletePayoutCommand must be created via NewDeletePayoutCommand constructor",
)

// DeletePayoutCommand removes a pending payout record and its payment lines,
// returning the underlying orders to the settleable pool. Paid records are
// ledger data and refuse deletion.
type DeletePayoutCommand struct { //nolint:recvcheck //using for validation
	payoutID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeletePayoutCommand creates a command to delete a pending payout.
func NewDeletePayoutCommand(payoutID kernel.UUID) (DeletePayoutCommand, error) {
	cmd := DeletePayoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPayoutID(payoutID); err != nil {
		return DeletePayoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeletePayoutCommand) Validate() error {
	return c.guard.Validate(ErrDeletePayoutCommandIsNotConstructed)
}

// PayoutID returns the payout record to delete.
func (c DeletePayoutCommand) PayoutID() kernel.UUID {
	return c.payoutID
}

func (c *DeletePayoutCommand) setPayoutID(payoutID kernel.UUID) error {
	if err := payoutID.Validate(); err != nil {
		return err
	}
	c.payoutID = payoutID
	return nil
}
