package payoutrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/pkg/errs"
)

// GormPayoutRepository implements PayoutRepository using GORM.
type GormPayoutRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPayoutRepository creates a new GORM payout repository.
func NewGormPayoutRepository(db *gorm.DB, tracker aggregateTracker) *GormPayoutRepository {
	return &GormPayoutRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new payout record with its payment lines.
func (r *GormPayoutRepository) Add(ctx context.Context, record *payout.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Update saves an existing payout record with a version check on the root
// row. Payment lines are immutable after settlement and are not rewritten.
func (r *GormPayoutRepository) Update(ctx context.Context, record *payout.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	dto.Version = record.Version() + 1

	result := r.db.WithContext(ctx).Model(&RecordDTO{}).
		Where("id = ? AND version = ?", dto.ID, record.Version()).
		Select("*").Omit("Lines").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause(
			fmt.Sprintf("payout %s version %d", record.ID(), record.Version()),
		)
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Get retrieves a payout record by ID with its payment lines.
func (r *GormPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*payout.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payout", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a payout record and its payment lines. Deleting the lines
// releases the settled orders back into the settleable pool.
func (r *GormPayoutRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Where("payout_id = ?", id.Bytes()).Delete(&LineDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&RecordDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payout", id.String())
	}

	return nil
}

// GetAllForPayee retrieves all payout records for a payee, newest first.
func (r *GormPayoutRepository) GetAllForPayee(
	ctx context.Context,
	payeeID kernel.UUID,
) ([]*payout.Record, error) {
	if err := payeeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RecordDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("payee_id = ?", payeeID.Bytes()).
		Order("period_from DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*payout.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, restoreErr := toDomain(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		records = append(records, record)
	}

	return records, nil
}
