// Package queries contains read operations that bypass the domain aggregates
// and read the database directly. Queries never mutate state; they exist to
// serve tracking screens and reports without the cost of aggregate hydration.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderProgressQueryIsNotConstructed = errors.New(
		"GetOrderProgressQuery must be created via NewGetOrderProgressQuery constructor",
	)
)

// GetOrderProgressQuery retrieves an order's position within its status flow
// for rendering a progress stepper.
//
// Example:
//
//	query, err := NewGetOrderProgressQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	progress, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order progress: %w", err)
//	}
//
//	fmt.Printf("Order is at step %d of %d\n", progress.StepIndex+1, len(progress.Steps))
type GetOrderProgressQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderProgressQuery creates a query for the given order.
func NewGetOrderProgressQuery(orderID kernel.UUID) (GetOrderProgressQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderProgressQuery{}, err
	}

	return GetOrderProgressQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderProgressQueryIsNotConstructed)
}

// OrderID returns the identifier of the order being queried.
func (q GetOrderProgressQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderProgressQueryResponse describes where an order stands in its flow.
// For orders in the secondary replacement pipeline, Steps and StepIndex are
// derived from the replacement flow and Replacement is true. StepIndex is -1
// for divergent statuses such as cancelled that belong to neither flow.
type GetOrderProgressQueryResponse struct {
	OrderID     kernel.UUID
	Method      order.Method
	Status      order.Status
	StepIndex   int
	Steps       []order.Status
	Replacement bool
}
