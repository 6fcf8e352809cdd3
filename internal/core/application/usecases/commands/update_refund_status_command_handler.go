package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateRefundStatusCommandHandler steps a cancelled order's refund forward
// through its lifecycle.
type UpdateRefundStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationDispatcher
}

// NewUpdateRefundStatusCommandHandler creates a handler for refund advancement.
func NewUpdateRefundStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationDispatcher,
) UpdateRefundStatusCommandHandler {
	return UpdateRefundStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle advances the refund and returns the updated order.
// Completing a refund requires the transfer receipt reference; skipping a
// step fails with order.ErrInvalidTransition.
func (h UpdateRefundStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdateRefundStatusCommand,
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

	if err = aggregate.AdvanceRefund(command.Target(), command.ReceiptRef()); err != nil {
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
			Kind:    "order.refund_updated",
			OrderID: &orderID,
			Payload: map[string]string{"refund_status": command.Target().String()},
		})
	}

	return aggregate, nil
}
