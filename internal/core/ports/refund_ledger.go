package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
)

// RefundLedger defines the persistence contract for the refund history ledger.
// The ledger is append-only: entries are written once when a replacement
// review monetizes liability and never updated or deleted.
type RefundLedger interface {
	// Append persists a new ledger entry.
	Append(ctx context.Context, entry *ledger.Entry) error

	// GetByOrder retrieves all entries written for an order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*ledger.Entry, error)
}
