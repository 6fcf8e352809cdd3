// Package ports defines repository and collaborator interfaces for the
// fulfillment domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payout"
)

// SettleableLine is one completed order's contribution to a payee's settlement.
type SettleableLine struct {
	OrderID     kernel.UUID
	Gross       kernel.Money
	CompletedAt time.Time
}

// OrderRepository defines the persistence contract for order aggregates.
// Updates are versioned: writing a stale aggregate fails with a version
// conflict so two actors can never race the same order to different states.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Fails with errs.ErrVersionIsInvalid when the stored version no longer
	// matches the aggregate's version (optimistic concurrency conflict).
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier with its
	// complete state: items, replacement sub-records, history, cancellation.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllSettleable returns one line per completed-but-unsettled order for
	// the payee within the period. For sellers the payee is the order's seller;
	// for riders it is the bound rider. Orders already referenced by a payout
	// record are excluded.
	GetAllSettleable(
		ctx context.Context,
		payeeID kernel.UUID,
		kind payout.PayeeKind,
		period payout.Period,
	) ([]SettleableLine, error)

	// GetSettleablePayees returns the distinct payees of the given kind that
	// have at least one completed-but-unsettled order within the period.
	// Used by the settlement job to sweep all payees.
	GetSettleablePayees(
		ctx context.Context,
		kind payout.PayeeKind,
		period payout.Period,
	) ([]kernel.UUID, error)
}
