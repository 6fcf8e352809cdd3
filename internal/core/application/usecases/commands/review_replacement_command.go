package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReviewReplacementCommandIsNotConstructed = errors.New(
	"ReviewReplacementCommand must be created via NewReviewReplacementCommand constructor",
)

// ReviewReplacementCommand carries the admin's verdict for every pending
// replacement on an order. The review is all-or-nothing: a decision is
// required for each pending item and the whole batch commits atomically.
type ReviewReplacementCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	decisions []order.ReviewDecision

	guard guard.ConstructorGuard
}

// NewReviewReplacementCommand creates a command to review pending replacements.
func NewReviewReplacementCommand(
	orderID kernel.UUID,
	decisions []order.ReviewDecision,
) (ReviewReplacementCommand, error) {
	cmd := ReviewReplacementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDecisions(decisions),
	); err != nil {
		return ReviewReplacementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewReplacementCommand) Validate() error {
	return c.guard.Validate(ErrReviewReplacementCommandIsNotConstructed)
}

// OrderID returns the order under review.
func (c ReviewReplacementCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Decisions returns the per-item verdicts.
func (c ReviewReplacementCommand) Decisions() []order.ReviewDecision {
	return c.decisions
}

func (c *ReviewReplacementCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ReviewReplacementCommand) setDecisions(decisions []order.ReviewDecision) error {
	if len(decisions) == 0 {
		return errs.NewValueIsRequiredError("decisions")
	}
	for _, decision := range decisions {
		if err := decision.ItemID.Validate(); err != nil {
			return err
		}
	}
	c.decisions = decisions
	return nil
}
