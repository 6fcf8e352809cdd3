package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetRefundLedgerQueryIsNotConstructed = errors.New(
		"GetRefundLedgerQuery must be created via NewGetRefundLedgerQuery constructor",
	)
)

// GetRefundLedgerQuery retrieves the refund ledger entries written for an
// order during replacement reviews, oldest first.
type GetRefundLedgerQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRefundLedgerQuery creates a query for the given order.
func NewGetRefundLedgerQuery(orderID kernel.UUID) (GetRefundLedgerQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetRefundLedgerQuery{}, err
	}

	return GetRefundLedgerQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRefundLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetRefundLedgerQueryIsNotConstructed)
}

// OrderID returns the identifier of the order being queried.
func (q GetRefundLedgerQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetRefundLedgerQueryResponse is one monetized liability entry.
type GetRefundLedgerQueryResponse struct {
	ID             kernel.UUID
	ItemID         kernel.UUID
	ProdID         kernel.UUID
	Amount         kernel.Money
	FaultParty     order.FaultParty
	RiderLiability kernel.Money
	CreatedAt      time.Time
}
