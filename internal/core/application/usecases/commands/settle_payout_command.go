package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/pkg/guard"
)

var ErrSettlePayoutCommandIsNotConstructed = errors.New(
	"SettlePayoutCommand must be created via NewSettlePayoutCommand constructor",
)

// SettlePayoutCommand aggregates a payee's completed-but-unsettled orders in a
// period into one pending payout record with the tax withholding computed.
type SettlePayoutCommand struct { //nolint:recvcheck //using for validation
	payeeID kernel.UUID
	kind    payout.PayeeKind
	period  payout.Period

	guard guard.ConstructorGuard
}

// NewSettlePayoutCommand creates a command to settle a payee's payout.
func NewSettlePayoutCommand(
	payeeID kernel.UUID,
	kind payout.PayeeKind,
	period payout.Period,
) (SettlePayoutCommand, error) {
	cmd := SettlePayoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPayeeID(payeeID),
		cmd.setKind(kind),
		cmd.setPeriod(period),
	); err != nil {
		return SettlePayoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SettlePayoutCommand) Validate() error {
	return c.guard.Validate(ErrSettlePayoutCommandIsNotConstructed)
}

// PayeeID returns the seller or rider being settled.
func (c SettlePayoutCommand) PayeeID() kernel.UUID {
	return c.payeeID
}

// Kind returns whether the payee is a seller or a rider.
func (c SettlePayoutCommand) Kind() payout.PayeeKind {
	return c.kind
}

// Period returns the settlement window.
func (c SettlePayoutCommand) Period() payout.Period {
	return c.period
}

func (c *SettlePayoutCommand) setPayeeID(payeeID kernel.UUID) error {
	if err := payeeID.Validate(); err != nil {
		return err
	}
	c.payeeID = payeeID
	return nil
}

func (c *SettlePayoutCommand) setKind(kind payout.PayeeKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *SettlePayoutCommand) setPeriod(period payout.Period) error {
	if err := period.Validate(); err != nil {
		return err
	}
	c.period = period
	return nil
}
