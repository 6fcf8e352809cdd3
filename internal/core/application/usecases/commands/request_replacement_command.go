package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRequestReplacementCommandIsNotConstructed = errors.New(
	"RequestReplacementCommand must be created via NewRequestReplacementCommand constructor",
)

// RequestReplacementCommand files the buyer's per-item replacement requests
// against a delivered order. Each selected item carries its own reason,
// optional description, and evidence images.
type RequestReplacementCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	requests []order.ReplacementRequest

	guard guard.ConstructorGuard
}

// NewRequestReplacementCommand creates a command to request replacements.
// Requires at least one item and a non-empty reason on every item.
func NewRequestReplacementCommand(
	orderID kernel.UUID,
	requests []order.ReplacementRequest,
) (RequestReplacementCommand, error) {
	cmd := RequestReplacementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequests(requests),
	); err != nil {
		return RequestReplacementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestReplacementCommand) Validate() error {
	return c.guard.Validate(ErrRequestReplacementCommandIsNotConstructed)
}

// OrderID returns the delivered order the requests target.
func (c RequestReplacementCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Requests returns the per-item replacement requests.
func (c RequestReplacementCommand) Requests() []order.ReplacementRequest {
	return c.requests
}

func (c *RequestReplacementCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RequestReplacementCommand) setRequests(requests []order.ReplacementRequest) error {
	if len(requests) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, req := range requests {
		if err := req.ItemID.Validate(); err != nil {
			return err
		}
		if req.Reason == "" {
			return order.ErrMissingReason
		}
	}
	c.requests = requests
	return nil
}
