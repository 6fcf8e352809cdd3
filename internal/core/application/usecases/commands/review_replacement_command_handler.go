package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ReviewReplacementCommandHandler finalizes the admin review of an order's
// pending replacements. The order mutation and the refund ledger appends
// commit in a single transaction: a partially monetized review never persists.
type ReviewReplacementCommandHandler struct {
	uowFactory ReviewUoWFactory
	calculator services.FaultCalculator
	clock      ports.Clock
	notifier   ports.NotificationDispatcher
}

// NewReviewReplacementCommandHandler creates a handler for replacement reviews.
func NewReviewReplacementCommandHandler(
	uowFactory ReviewUoWFactory,
	calculator services.FaultCalculator,
	clock ports.Clock,
	notifier ports.NotificationDispatcher,
) ReviewReplacementCommandHandler {
	return ReviewReplacementCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		clock:      clock,
		notifier:   notifier,
	}
}

// Handle applies the admin's verdicts and returns the updated order.
// Approved items judged seller or rider fault produce refund ledger entries;
// a "none" fault moves no money and leaves no ledger trace.
func (h ReviewReplacementCommandHandler) Handle(
	ctx context.Context,
	command ReviewReplacementCommand,
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

	now := h.clock.Now()

	approved, err := aggregate.ReviewReplacement(command.Decisions(), now)
	if err != nil {
		return nil, err
	}

	for _, item := range approved {
		fault := item.Replacement().Fault()
		if fault == order.FaultNone {
			continue
		}

		assessment, err := h.calculator.Assess(fault, item.UnitPrice(), item.Quantity())
		if err != nil {
			return nil, err
		}

		entry, err := ledger.NewEntry(
			kernel.NewUUID(),
			aggregate.ID(),
			item.ID(),
			item.ProdID(),
			assessment.RefundAmount,
			fault,
			assessment.RiderLiability,
			now,
		)
		if err != nil {
			return nil, err
		}

		if err = uow.RefundLedger().Append(ctx, entry); err != nil {
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
			Kind:    "order.replacement_reviewed",
			OrderID: &orderID,
			Payload: map[string]string{"status": aggregate.Status().String()},
		})
	}

	return aggregate, nil
}
