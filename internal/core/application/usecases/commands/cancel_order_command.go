package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
)

// RefundDetails carries the refund installed on an eligible cancellation.
// Eligibility itself is decided by an external trigger at cancellation time;
// the command only transports its outcome.
type RefundDetails struct {
	Amount        kernel.Money
	Method        string
	AccountName   string
	AccountNumber string
	QRRef         string
}

// CancelOrderCommand requests cancellation of a pending order with a
// mandatory reason, optional proof image, and the externally decided
// refund eligibility outcome.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	reason        string
	proofImageRef string
	refund        *RefundDetails

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// The reason must be non-empty; refund may be nil when the cancellation is
// not refund-eligible.
func NewCancelOrderCommand(
	orderID kernel.UUID,
	reason, proofImageRef string,
	refund *RefundDetails,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		proofImageRef: proofImageRef,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
		cmd.setRefund(refund),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the cancellation justification.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

// ProofImageRef returns the file-store reference of the optional proof image.
func (c CancelOrderCommand) ProofImageRef() string {
	return c.proofImageRef
}

// Refund returns the refund details, nil when the cancellation is not eligible.
func (c CancelOrderCommand) Refund() *RefundDetails {
	return c.refund
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	if reason == "" {
		return order.ErrMissingReason
	}
	c.reason = reason
	return nil
}

func (c *CancelOrderCommand) setRefund(refund *RefundDetails) error {
	if refund == nil {
		return nil
	}
	if err := refund.Amount.Validate(); err != nil {
		return err
	}
	c.refund = refund
	return nil
}
