package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// RequestReplacementCommandHandler files the buyer's replacement requests on a
// delivered order. The clock supplies the single trusted reading the 24-hour
// eligibility window is measured against.
type RequestReplacementCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	notifier   ports.NotificationDispatcher
}

// NewRequestReplacementCommandHandler creates a handler for replacement requests.
func NewRequestReplacementCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	notifier ports.NotificationDispatcher,
) RequestReplacementCommandHandler {
	return RequestReplacementCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

// Handle processes the replacement request and returns the updated order.
// Fails with order.ErrWindowExpired when the request arrives more than 24
// hours after delivery, and records either all requests or none.
func (h RequestReplacementCommandHandler) Handle(
	ctx context.Context,
	command RequestReplacementCommand,
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

	if err = aggregate.RequestReplacement(command.Requests(), h.clock.Now()); err != nil {
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
			Kind:    "order.replacement_requested",
			OrderID: &orderID,
			Payload: map[string]string{"status": aggregate.Status().String()},
		})
	}

	return aggregate, nil
}
