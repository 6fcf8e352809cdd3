package riderrepo

import (
	"github.com/google/uuid"
)

// RiderDTO represents the database model for riders. The fulfillment service
// only reads this table; rider onboarding writes it from another service.
type RiderDTO struct {
	ID      uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Contact string    `gorm:"type:varchar(255)"`
}

// TableName returns the database table name for riders.
func (RiderDTO) TableName() string {
	return "riders"
}
