package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// AdvanceOrderStatusCommandHandler applies a status transition to one order.
// Loads the aggregate, validates the transition through the domain state
// machine, and persists the result with an optimistic version check so two
// actors can never race the same order to different next states.
//
// When a rider binding is part of the transition the rider is resolved through
// the directory first, so an unknown rider never reaches the aggregate.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	riders     ports.RiderDirectory
	clock      ports.Clock
	notifier   ports.NotificationDispatcher
}

// NewAdvanceOrderStatusCommandHandler creates a handler for status transitions.
func NewAdvanceOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	riders ports.RiderDirectory,
	clock ports.Clock,
	notifier ports.NotificationDispatcher,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		riders:     riders,
		clock:      clock,
		notifier:   notifier,
	}
}

// Handle processes the advance command and returns the updated order.
// Re-applying the already-current status is a no-op success, which lets
// callers retry safely after a network failure.
func (h AdvanceOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command AdvanceOrderStatusCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	if rider := command.RiderID(); rider != nil && h.riders != nil {
		if _, err := h.riders.Lookup(ctx, *rider); err != nil {
			return nil, err
		}
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

	before := aggregate.Status()
	if err = aggregate.Advance(command.Target(), command.RiderID(), h.clock.Now()); err != nil {
		return nil, err
	}

	if aggregate.Status() == before {
		// Idempotent re-application: nothing changed, nothing to persist.
		return aggregate, nil
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
			Kind:    "order.status_changed",
			OrderID: &orderID,
			Payload: map[string]string{"status": aggregate.Status().String()},
		})
	}

	return aggregate, nil
}
