// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The whole aggregate is serialized together: order lines, their replacement
// sub-records, the status history, and the cancellation/refund columns all
// load and save with the root.
type OrderDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SellerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	RiderID    *uuid.UUID      `gorm:"type:uuid;index"`
	Method     string          `gorm:"type:varchar(32);not null"`
	Status     string          `gorm:"type:varchar(64);not null;index"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Version    int             `gorm:"not null"`

	Cancellation CancellationDTO `gorm:"embedded;embeddedPrefix:cancellation_"`

	Items   []ItemDTO         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []HistoryEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CancellationDTO represents the cancellation and refund columns embedded in
// the order table. Reason is empty while the order is active; RefundStatus is
// empty while no refund is installed.
type CancellationDTO struct {
	Reason              string          `gorm:"type:text"`
	ProofImageRef       string          `gorm:"type:text"`
	RefundAmount        decimal.Decimal `gorm:"type:numeric(14,2)"`
	RefundMethod        string          `gorm:"type:varchar(64)"`
	RefundAccountName   string          `gorm:"type:varchar(255)"`
	RefundAccountNumber string          `gorm:"type:varchar(64)"`
	RefundStatus        string          `gorm:"type:varchar(32)"`
	RefundNotes         string          `gorm:"type:text"`
	RefundReceiptRef    string          `gorm:"type:text"`
	RefundQRRef         string          `gorm:"type:text"`
}

// ItemDTO represents the database structure for persisting order lines.
// Replacement columns are empty until the buyer files a request.
type ItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdID     uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   int             `gorm:"type:int;not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IsReviewed bool            `gorm:"not null"`

	ReplacementStatus       string         `gorm:"type:varchar(32)"`
	ReplacementReason       string         `gorm:"type:text"`
	ReplacementDescription  string         `gorm:"type:text"`
	ReplacementImageRefs    pq.StringArray `gorm:"type:text[]"`
	ReplacementRequestedAt  *time.Time
	ReplacementFault        string `gorm:"type:varchar(32)"`
	ReplacementFaultDetails string `gorm:"type:text"`
	ReplacementNotes        string `gorm:"type:text"`
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryEntryDTO represents one row of the append-only status history.
// The autoincrement key preserves insertion order within an order.
type HistoryEntryDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(64);not null"`
	OccurredAt  time.Time `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Location    string    `gorm:"type:text"`
	ImageRef    string    `gorm:"type:text"`
}

// TableName specifies the database table name for status history entities.
func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var riderID *uuid.UUID
	if id := aggregate.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemFromDomain(orderID, item))
	}

	history := make([]HistoryEntryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, HistoryEntryDTO{
			OrderID:     orderID,
			Status:      entry.Status().String(),
			OccurredAt:  entry.OccurredAt(),
			Description: entry.Description(),
			Location:    entry.Location(),
			ImageRef:    entry.ImageRef(),
		})
	}

	return OrderDTO{
		ID:           orderID,
		SellerID:     aggregate.Seller().Bytes(),
		RiderID:      riderID,
		Method:       aggregate.Method().String(),
		Status:       aggregate.Status().String(),
		TotalPrice:   aggregate.TotalPrice().Decimal(),
		Version:      aggregate.Version(),
		Cancellation: cancellationFromDomain(aggregate.Cancellation()),
		Items:        items,
		History:      history,
	}
}

func itemFromDomain(orderID uuid.UUID, item *order.Item) ItemDTO {
	dto := ItemDTO{
		ID:         item.ID().Bytes(),
		OrderID:    orderID,
		ProdID:     item.ProdID().Bytes(),
		Quantity:   item.Quantity(),
		UnitPrice:  item.UnitPrice().Decimal(),
		IsReviewed: item.IsReviewed(),
	}

	if r := item.Replacement(); r != nil {
		requestedAt := r.RequestedAt()
		dto.ReplacementStatus = r.Status().String()
		dto.ReplacementReason = r.Reason()
		dto.ReplacementDescription = r.Description()
		dto.ReplacementImageRefs = r.ImageRefs()
		dto.ReplacementRequestedAt = &requestedAt
		dto.ReplacementFaultDetails = r.FaultDetails()
		dto.ReplacementNotes = r.Notes()
		if r.Fault() != order.FaultUnknown {
			dto.ReplacementFault = r.Fault().String()
		}
	}

	return dto
}

func cancellationFromDomain(cancellation *order.Cancellation) CancellationDTO {
	if cancellation == nil {
		return CancellationDTO{}
	}

	dto := CancellationDTO{
		Reason:        cancellation.Reason(),
		ProofImageRef: cancellation.ProofImageRef(),
	}

	if refund := cancellation.Refund(); refund != nil {
		dto.RefundAmount = refund.Amount().Decimal()
		dto.RefundMethod = refund.PayoutMethod()
		dto.RefundAccountName = refund.AccountName()
		dto.RefundAccountNumber = refund.AccountNumber()
		dto.RefundStatus = refund.Status().String()
		dto.RefundNotes = refund.Notes()
		dto.RefundReceiptRef = refund.ReceiptRef()
		dto.RefundQRRef = refund.QRRef()
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines, replacement
// sub-records, history, and cancellation using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	method, err := order.MethodFromString(dto.Method)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	totalPrice, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entryDto := range dto.History {
		entryStatus, entryErr := order.StatusFromString(entryDto.Status)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, order.NewHistoryEntry(
			entryStatus, entryDto.OccurredAt, entryDto.Description, entryDto.Location, entryDto.ImageRef,
		))
	}

	cancellation, err := cancellationToDomain(dto.Cancellation)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, sellerID, method, status, items, totalPrice, riderID, history, cancellation, dto.Version,
	)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	prodID, err := kernel.UUIDFromBytes(dto.ProdID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	var replacement *order.Replacement
	if dto.ReplacementStatus != "" {
		replacement, err = replacementToDomain(dto)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreItem(id, prodID, dto.Quantity, unitPrice, dto.IsReviewed, replacement)
}

func replacementToDomain(dto ItemDTO) (*order.Replacement, error) {
	status, err := replacementStatusFromString(dto.ReplacementStatus)
	if err != nil {
		return nil, err
	}

	fault := order.FaultUnknown
	if dto.ReplacementFault != "" {
		fault, err = order.FaultPartyFromString(dto.ReplacementFault)
		if err != nil {
			return nil, err
		}
	}

	var requestedAt time.Time
	if dto.ReplacementRequestedAt != nil {
		requestedAt = *dto.ReplacementRequestedAt
	}

	return order.RestoreReplacement(
		dto.ReplacementReason,
		dto.ReplacementDescription,
		dto.ReplacementImageRefs,
		requestedAt,
		status,
		fault,
		dto.ReplacementFaultDetails,
		dto.ReplacementNotes,
	)
}

func replacementStatusFromString(s string) (order.ReplacementStatus, error) {
	for _, status := range []order.ReplacementStatus{
		order.ReplacementPending, order.ReplacementApproved, order.ReplacementRejected,
	} {
		if status.String() == s {
			return status, nil
		}
	}
	return order.ReplacementUnknown, order.ReplacementUnknown.Validate()
}

func cancellationToDomain(dto CancellationDTO) (*order.Cancellation, error) {
	if dto.Reason == "" {
		return nil, nil
	}

	var refund *order.Refund
	if dto.RefundStatus != "" {
		amount, err := kernel.NewMoney(dto.RefundAmount)
		if err != nil {
			return nil, err
		}

		status, err := order.RefundStatusFromString(dto.RefundStatus)
		if err != nil {
			return nil, err
		}

		refund, err = order.RestoreRefund(
			amount, dto.RefundMethod, dto.RefundAccountName, dto.RefundAccountNumber,
			status, dto.RefundNotes, dto.RefundReceiptRef, dto.RefundQRRef,
		)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreCancellation(dto.Reason, dto.ProofImageRef, refund), nil
}
