// Package payoutrepo provides data transfer objects and mapping functions for
// payout persistence. A payout record and its payment lines are serialized
// together as one aggregate.
package payoutrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payout"
)

// RecordDTO represents the database structure for persisting payout records.
type RecordDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PayeeID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PayeeKind   string          `gorm:"type:varchar(32);not null"`
	PeriodFrom  time.Time       `gorm:"not null"`
	PeriodTo    time.Time       `gorm:"not null"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TaxAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	NetAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status      string          `gorm:"type:varchar(32);not null;index"`
	ReceiptRef  string          `gorm:"type:text"`
	PaidAt      *time.Time
	Version     int `gorm:"not null"`

	Lines []LineDTO `gorm:"foreignKey:PayoutID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for payout record entities.
func (RecordDTO) TableName() string {
	return "payouts"
}

// LineDTO represents one settled order within a payout record. The order_id
// column is what the settlement query joins against to keep an order from
// being paid out twice.
type LineDTO struct {
	ID       uint            `gorm:"primaryKey;autoIncrement"`
	PayoutID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Gross    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName specifies the database table name for payout line entities.
func (LineDTO) TableName() string {
	return "payout_lines"
}

// fromDomain converts a payout record domain aggregate to its database representation.
func fromDomain(record *payout.Record) RecordDTO {
	recordID := record.ID().Bytes()

	lines := make([]LineDTO, 0, len(record.Lines()))
	for _, line := range record.Lines() {
		lines = append(lines, LineDTO{
			PayoutID: recordID,
			OrderID:  line.OrderID.Bytes(),
			Gross:    line.Gross.Decimal(),
		})
	}

	return RecordDTO{
		ID:          recordID,
		PayeeID:     record.PayeeID().Bytes(),
		PayeeKind:   record.PayeeKind().String(),
		PeriodFrom:  record.Period().From,
		PeriodTo:    record.Period().To,
		TotalAmount: record.TotalAmount().Decimal(),
		TaxAmount:   record.TaxAmount().Decimal(),
		NetAmount:   record.NetAmount().Decimal(),
		Status:      record.Status().String(),
		ReceiptRef:  record.ReceiptRef(),
		PaidAt:      record.PaidAt(),
		Version:     record.Version(),
		Lines:       lines,
	}
}

// toDomain converts a database DTO to a payout record domain aggregate.
func toDomain(dto RecordDTO) (*payout.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	payeeID, err := kernel.UUIDFromBytes(dto.PayeeID[:])
	if err != nil {
		return nil, err
	}

	payeeKind, err := payout.PayeeKindFromString(dto.PayeeKind)
	if err != nil {
		return nil, err
	}

	status, err := payout.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	totalAmount, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	taxAmount, err := kernel.NewMoney(dto.TaxAmount)
	if err != nil {
		return nil, err
	}

	netAmount, err := kernel.NewMoney(dto.NetAmount)
	if err != nil {
		return nil, err
	}

	lines := make([]payout.Line, 0, len(dto.Lines))
	for _, lineDto := range dto.Lines {
		orderID, lineErr := kernel.UUIDFromBytes(lineDto.OrderID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		gross, lineErr := kernel.NewMoney(lineDto.Gross)
		if lineErr != nil {
			return nil, lineErr
		}

		lines = append(lines, payout.Line{OrderID: orderID, Gross: gross})
	}

	return payout.RestoreRecord(
		id, payeeID, payeeKind,
		payout.Period{From: dto.PeriodFrom, To: dto.PeriodTo},
		lines,
		totalAmount, taxAmount, netAmount,
		status, dto.ReceiptRef, dto.PaidAt, dto.Version,
	)
}
