package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payout"
)

// PayoutRepository defines the persistence contract for payout records.
// Deletion is only ever issued for pending records; the caller checks
// Record.CanDelete before calling Delete.
type PayoutRepository interface {
	// Add persists a new payout record with its payment lines.
	Add(ctx context.Context, record *payout.Record) error

	// Update persists changes to an existing payout record.
	// Fails with errs.ErrVersionIsInvalid on a version conflict.
	Update(ctx context.Context, record *payout.Record) error

	// Get retrieves a payout record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payout.Record, error)

	// Delete removes a pending payout record and its payment lines.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetAllForPayee retrieves all payout records for a payee, newest first.
	GetAllForPayee(ctx context.Context, payeeID kernel.UUID) ([]*payout.Record, error)
}
