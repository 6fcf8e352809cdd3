package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectRefundCommandIsNotConstructed = errors.New(
	"RejectRefundCommand must be created via NewRejectRefundCommand constructor",
)

// RejectRefundCommand terminates a refund that has not yet completed.
// A reason is mandatory so the buyer always learns why.
type RejectRefundCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewRejectRefundCommand creates a command to reject a refund.
func NewRejectRefundCommand(orderID kernel.UUID, reason string) (RejectRefundCommand, error) {
	cmd := RejectRefundCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return RejectRefundCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectRefundCommand) Validate() error {
	return c.guard.Validate(ErrRejectRefundCommandIsNotConstructed)
}

// OrderID returns the order whose refund is rejected.
func (c RejectRefundCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the mandatory rejection reason.
func (c RejectRefundCommand) Reason() string {
	return c.reason
}

func (c *RejectRefundCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RejectRefundCommand) setReason(reason string) error {
	if reason == "" {
		return order.ErrMissingReason
	}
	c.reason = reason
	return nil
}
