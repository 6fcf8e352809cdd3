package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler cancels a pending order, records the cancellation
// with its reason and optional proof, and installs the refund record when the
// cancellation was judged refund-eligible.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	notifier   ports.NotificationDispatcher
}

// NewCancelOrderCommandHandler creates a handler for order cancellations.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	notifier ports.NotificationDispatcher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

// Handle processes the cancellation and returns the updated order.
// Fails with order.ErrInvalidTransition unless the order is still pending.
func (h CancelOrderCommandHandler) Handle(
	ctx context.Context,
	command CancelOrderCommand,
) (*order.Order, error) {
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

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Cancel(command.Reason(), command.ProofImageRef(), h.clock.Now()); err != nil {
		return nil, err
	}

	if refund := command.Refund(); refund != nil {
		if err = aggregate.MarkRefundEligible(
			refund.Amount, refund.Method, refund.AccountName, refund.AccountNumber, refund.QRRef,
		); err != nil {
			return nil, err
		}
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.notifier != nil {
		orderID := aggregate.ID()
		h.notifier.Dispatch(ctx, ports.Notification{
			Kind:    "order.cancelled",
			OrderID: &orderID,
			Payload: map[string]string{"reason": command.Reason()},
		})
	}

	return aggregate, nil
}
