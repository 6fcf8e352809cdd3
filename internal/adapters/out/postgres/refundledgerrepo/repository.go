package refundledgerrepo

import (
	"context"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
)

// GormRefundLedger implements RefundLedger using GORM. Entries are written
// once and never updated, so the repository has no tracking or versioning.
type GormRefundLedger struct {
	db *gorm.DB
}

// NewGormRefundLedger creates a new GORM refund ledger repository.
func NewGormRefundLedger(db *gorm.DB) *GormRefundLedger {
	return &GormRefundLedger{db: db}
}

// Append persists a new ledger entry.
func (r *GormRefundLedger) Append(ctx context.Context, entry *ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOrder retrieves all entries written for an order, oldest first.
func (r *GormRefundLedger) GetByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*ledger.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, restoreErr := toDomain(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
