package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// GetRefundLedgerQueryHandler reads refund ledger entries from the database.
type GetRefundLedgerQueryHandler struct {
	db *gorm.DB
}

// NewGetRefundLedgerQueryHandler creates a handler for refund ledger queries.
func NewGetRefundLedgerQueryHandler(db *gorm.DB) GetRefundLedgerQueryHandler {
	return GetRefundLedgerQueryHandler{db: db}
}

// Handle executes the query. An order with no monetized liability yields an
// empty slice; absence of entries is not an error.
func (h GetRefundLedgerQueryHandler) Handle(
	ctx context.Context,
	query GetRefundLedgerQuery,
) ([]GetRefundLedgerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, item_id, prod_id, amount, fault_party, rider_liability, created_at
		FROM refund_ledger
		WHERE order_id = ?
		ORDER BY created_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetRefundLedgerQueryResponse, 0)
	for rows.Next() {
		var entry GetRefundLedgerQueryResponse
		var id, itemID, prodID uuid.UUID
		var faultStr string
		var amount, liability decimal.Decimal

		err = rows.Scan(
			&id, &itemID, &prodID, &amount, &faultStr, &liability, &entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.ItemID, err = kernel.UUIDFromBytes(itemID[:]); err != nil {
			return nil, err
		}
		if entry.ProdID, err = kernel.UUIDFromBytes(prodID[:]); err != nil {
			return nil, err
		}
		if entry.FaultParty, err = order.FaultPartyFromString(faultStr); err != nil {
			return nil, err
		}
		if entry.Amount, err = kernel.NewMoney(amount); err != nil {
			return nil, err
		}
		if entry.RiderLiability, err = kernel.NewMoney(liability); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
