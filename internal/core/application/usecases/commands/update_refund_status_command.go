package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateRefundStatusCommandIsNotConstructed = errors.New(
	"UpdateRefundStatusCommand must be created via NewUpdateRefundStatusCommand constructor",
)

// UpdateRefundStatusCommand advances a cancelled order's refund one step
// forward: pending to processing, or processing to completed. Completing a
// refund requires the transfer receipt reference.
type UpdateRefundStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	target     order.RefundStatus
	receiptRef string

	guard guard.ConstructorGuard
}

// NewUpdateRefundStatusCommand creates a command to advance a refund.
func NewUpdateRefundStatusCommand(
	orderID kernel.UUID,
	target order.RefundStatus,
	receiptRef string,
) (UpdateRefundStatusCommand, error) {
	cmd := UpdateRefundStatusCommand{
		receiptRef: receiptRef,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return UpdateRefundStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRefundStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRefundStatusCommandIsNotConstructed)
}

// OrderID returns the cancelled order whose refund is advanced.
func (c UpdateRefundStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the refund status to advance to.
func (c UpdateRefundStatusCommand) Target() order.RefundStatus {
	return c.target
}

// ReceiptRef returns the transfer receipt reference, required for completion.
func (c UpdateRefundStatusCommand) ReceiptRef() string {
	return c.receiptRef
}

func (c *UpdateRefundStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateRefundStatusCommand) setTarget(target order.RefundStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
