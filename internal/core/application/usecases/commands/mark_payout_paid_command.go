package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkPayoutPaidCommandIsNotConstructed = errors.New(
	"MarkPayoutPaidCommand must be created via NewMarkPayoutPaidCommand constructor",
)

// MarkPayoutPaidCommand disburses a pending payout. The receipt image
// reference is mandatory and the transition is irreversible.
type MarkPayoutPaidCommand struct { //nolint:recvcheck //using for validation
	payoutID   kernel.UUID
	receiptRef string

	guard guard.ConstructorGuard
}

// NewMarkPayoutPaidCommand creates a command to mark a payout as paid.
func NewMarkPayoutPaidCommand(payoutID kernel.UUID, receiptRef string) (MarkPayoutPaidCommand, error) {
	cmd := MarkPayoutPaidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPayoutID(payoutID),
		cmd.setReceiptRef(receiptRef),
	); err != nil {
		return MarkPayoutPaidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPayoutPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkPayoutPaidCommandIsNotConstructed)
}

// PayoutID returns the payout record being disbursed.
func (c MarkPayoutPaidCommand) PayoutID() kernel.UUID {
	return c.payoutID
}

// ReceiptRef returns the file-store reference of the disbursement receipt.
func (c MarkPayoutPaidCommand) ReceiptRef() string {
	return c.receiptRef
}

func (c *MarkPayoutPaidCommand) setPayoutID(payoutID kernel.UUID) error {
	if err := payoutID.Validate(); err != nil {
		return err
	}
	c.payoutID = payoutID
	return nil
}

func (c *MarkPayoutPaidCommand) setReceiptRef(receiptRef string) error {
	if receiptRef == "" {
		return payout.ErrMissingReceipt
	}
	c.receiptRef = receiptRef
	return nil
}
