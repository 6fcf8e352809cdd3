package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand requests moving an order to the next status in its
// flow, optionally binding a rider as part of the transition.
//
// Example:
//
//	cmd, err := NewAdvanceOrderStatusCommand(orderID, order.StatusReadyToDeliver, &riderID)
//	if err != nil {
//	    return fmt.Errorf("invalid advance request: %w", err)
//	}
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrMissingRider) {
//	    // A rider must be assigned before "ready to deliver"
//	}
type AdvanceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	riderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceOrderStatusCommand creates a command to advance an order's status.
// Validates the order ID, target status, and rider ID when supplied.
func NewAdvanceOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	riderID *kernel.UUID,
) (AdvanceOrderStatusCommand, error) {
	cmd := AdvanceOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setRiderID(riderID),
	); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested next status.
func (c AdvanceOrderStatusCommand) Target() order.Status {
	return c.target
}

// RiderID returns the rider to bind, nil when no binding is requested.
func (c AdvanceOrderStatusCommand) RiderID() *kernel.UUID {
	return c.riderID
}

func (c *AdvanceOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *AdvanceOrderStatusCommand) setRiderID(riderID *kernel.UUID) error {
	if riderID == nil {
		return nil
	}
	if err := riderID.Validate(); err != nil {
		return err
	}
	c.riderID = riderID
	return nil
}
