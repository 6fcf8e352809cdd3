package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// GetStatusHistoryQueryHandler reads an order's status history from the database.
type GetStatusHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusHistoryQueryHandler creates a handler for status history queries.
func NewGetStatusHistoryQueryHandler(db *gorm.DB) GetStatusHistoryQueryHandler {
	return GetStatusHistoryQueryHandler{db: db}
}

// Handle executes the query. Every existing order has at least its initial
// pending entry, so an empty result means the order does not exist and is
// reported as errs.ErrObjectNotFound.
func (h GetStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetStatusHistoryQuery,
) ([]GetStatusHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, occurred_at, description, location, image_ref
		FROM order_history
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetStatusHistoryQueryResponse, 0)
	for rows.Next() {
		var entry GetStatusHistoryQueryResponse
		var statusStr string
		var occurredAt time.Time

		err = rows.Scan(
			&statusStr, &occurredAt, &entry.Description, &entry.Location, &entry.ImageRef,
		)
		if err != nil {
			return nil, err
		}

		status, statusErr := order.StatusFromString(statusStr)
		if statusErr != nil {
			return nil, statusErr
		}
		entry.Status = status
		entry.OccurredAt = occurredAt

		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return entries, nil
}
