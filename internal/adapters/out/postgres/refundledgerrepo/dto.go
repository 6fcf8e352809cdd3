// Package refundledgerrepo provides data transfer objects and mapping
// functions for the append-only refund history ledger.
package refundledgerrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
)

// EntryDTO represents the database structure for persisting refund ledger entries.
type EntryDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID         uuid.UUID       `gorm:"type:uuid;not null"`
	ProdID         uuid.UUID       `gorm:"type:uuid;not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	FaultParty     string          `gorm:"type:varchar(32);not null"`
	RiderLiability decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for refund ledger entities.
func (EntryDTO) TableName() string {
	return "refund_ledger"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(entry *ledger.Entry) EntryDTO {
	return EntryDTO{
		ID:             entry.ID().Bytes(),
		OrderID:        entry.OrderID().Bytes(),
		ItemID:         entry.ItemID().Bytes(),
		ProdID:         entry.ProdID().Bytes(),
		Amount:         entry.Amount().Decimal(),
		FaultParty:     entry.FaultParty().String(),
		RiderLiability: entry.RiderLiability().Decimal(),
		CreatedAt:      entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to a ledger entry.
func toDomain(dto EntryDTO) (*ledger.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	prodID, err := kernel.UUIDFromBytes(dto.ProdID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	faultParty, err := order.FaultPartyFromString(dto.FaultParty)
	if err != nil {
		return nil, err
	}

	riderLiability, err := kernel.NewMoney(dto.RiderLiability)
	if err != nil {
		return nil, err
	}

	return ledger.RestoreEntry(
		id, orderID, itemID, prodID, amount, faultParty, riderLiability, dto.CreatedAt,
	)
}
