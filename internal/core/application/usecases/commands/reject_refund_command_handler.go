package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// RejectRefundCommandHandler rejects a pending or processing refund with a
// mandatory reason.
type RejectRefundCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationDispatcher
}

// NewRejectRefundCommandHandler creates a handler for refund rejections.
func NewRejectRefundCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationDispatcher,
) RejectRefundCommandHandler {
	return RejectRefundCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle rejects the refund and returns the updated order.
// Completed and already-rejected refunds cannot be rejected again.
func (h RejectRefundCommandHandler) Handle(
	ctx context.Context,
	command RejectRefundCommand,
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

	if err = aggregate.RejectRefund(command.Reason()); err != nil {
		return nil, err
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
			Kind:    "order.refund_rejected",
			OrderID: &orderID,
			Payload: map[string]string{"reason": command.Reason()},
		})
	}

	return aggregate, nil
}
