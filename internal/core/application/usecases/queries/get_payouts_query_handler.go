package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payout"
)

// GetPayoutsQueryHandler reads payout record summaries from the database.
type GetPayoutsQueryHandler struct {
	db *gorm.DB
}

// NewGetPayoutsQueryHandler creates a handler for payout listing queries.
func NewGetPayoutsQueryHandler(db *gorm.DB) GetPayoutsQueryHandler {
	return GetPayoutsQueryHandler{db: db}
}

// Handle executes the query. A payee with no payouts yields an empty slice.
func (h GetPayoutsQueryHandler) Handle(
	ctx context.Context,
	query GetPayoutsQuery,
) ([]GetPayoutsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.payee_id,
			p.payee_kind,
			p.period_from,
			p.period_to,
			p.total_amount,
			p.tax_amount,
			p.net_amount,
			p.status,
			p.receipt_ref,
			p.paid_at,
			(SELECT COUNT(*) FROM payout_lines pl WHERE pl.payout_id = p.id) AS line_count
		FROM payouts p
		WHERE p.payee_id = ?
		ORDER BY p.period_from DESC
	`, query.PayeeID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]GetPayoutsQueryResponse, 0)
	for rows.Next() {
		var record GetPayoutsQueryResponse
		var id, payeeID uuid.UUID
		var kindStr, statusStr string
		var total, tax, net decimal.Decimal
		var paidAt *time.Time

		err = rows.Scan(
			&id, &payeeID, &kindStr,
			&record.PeriodFrom, &record.PeriodTo,
			&total, &tax, &net,
			&statusStr, &record.ReceiptRef, &paidAt,
			&record.LineCount,
		)
		if err != nil {
			return nil, err
		}

		if record.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if record.PayeeID, err = kernel.UUIDFromBytes(payeeID[:]); err != nil {
			return nil, err
		}
		if record.PayeeKind, err = payout.PayeeKindFromString(kindStr); err != nil {
			return nil, err
		}
		if record.Status, err = payout.StatusFromString(statusStr); err != nil {
			return nil, err
		}
		if record.TotalAmount, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		if record.TaxAmount, err = kernel.NewMoney(tax); err != nil {
			return nil, err
		}
		if record.NetAmount, err = kernel.NewMoney(net); err != nil {
			return nil, err
		}
		record.PaidAt = paidAt

		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
