package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order aggregate with its lines and initial history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order aggregate. The root row is written with a
// version check: a stale aggregate affects zero rows and the update fails
// with a version conflict instead of silently overwriting newer state.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").Omit("Items", "History").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause(
			fmt.Sprintf("order %s version %d", aggregate.ID(), aggregate.Version()),
		)
	}

	// Lines and history are rewritten with the root so the aggregate stays
	// consistent as one serialization unit.
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&dto.Items).Error; err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).Delete(&HistoryEntryDTO{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&dto.History).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its complete state.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("order_history.id ASC") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// completedStatuses are the history statuses that mark an order as finished
// and therefore settleable.
func completedStatuses() []string {
	return []string{order.StatusCompleted.String(), order.StatusReplacementCompleted.String()}
}

func payeeColumn(kind payout.PayeeKind) (string, error) {
	switch kind {
	case payout.PayeeSeller:
		return "seller_id", nil
	case payout.PayeeRider:
		return "rider_id", nil
	default:
		return "", kind.Validate()
	}
}

// GetAllSettleable returns one line per completed-but-unsettled order for the
// payee within the period. Orders already referenced by a payout record of the
// same payee kind are excluded, so re-settling a period cannot double-pay.
func (r *GormOrderRepository) GetAllSettleable(
	ctx context.Context,
	payeeID kernel.UUID,
	kind payout.PayeeKind,
	period payout.Period,
) ([]ports.SettleableLine, error) {
	if err := payeeID.Validate(); err != nil {
		return nil, err
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	column, err := payeeColumn(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT o.id, o.total_price, h.occurred_at
		FROM orders o
		JOIN order_history h ON h.order_id = o.id AND h.status IN ?
		WHERE o.%s = ?
			AND o.status IN ?
			AND h.occurred_at >= ? AND h.occurred_at < ?
			AND NOT EXISTS (
				SELECT 1 FROM payout_lines pl
				JOIN payouts p ON p.id = pl.payout_id
				WHERE pl.order_id = o.id AND p.payee_kind = ?
			)
		ORDER BY h.occurred_at
	`, column),
		completedStatuses(), payeeID.Bytes(), completedStatuses(),
		period.From, period.To, kind.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]ports.SettleableLine, 0)
	for rows.Next() {
		var line ports.SettleableLine
		var id uuid.UUID
		var gross decimal.Decimal

		if err = rows.Scan(&id, &gross, &line.CompletedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		line.OrderID = orderID

		money, moneyErr := kernel.NewMoney(gross)
		if moneyErr != nil {
			return nil, moneyErr
		}
		line.Gross = money

		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// GetSettleablePayees returns the distinct payees of the given kind that have
// at least one completed-but-unsettled order within the period.
func (r *GormOrderRepository) GetSettleablePayees(
	ctx context.Context,
	kind payout.PayeeKind,
	period payout.Period,
) ([]kernel.UUID, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	column, err := payeeColumn(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT DISTINCT o.%[1]s
		FROM orders o
		JOIN order_history h ON h.order_id = o.id AND h.status IN ?
		WHERE o.%[1]s IS NOT NULL
			AND o.status IN ?
			AND h.occurred_at >= ? AND h.occurred_at < ?
			AND NOT EXISTS (
				SELECT 1 FROM payout_lines pl
				JOIN payouts p ON p.id = pl.payout_id
				WHERE pl.order_id = o.id AND p.payee_kind = ?
			)
	`, column),
		completedStatuses(), completedStatuses(), period.From, period.To, kind.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payees := make([]kernel.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}

		payeeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		payees = append(payees, payeeID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payees, nil
}
