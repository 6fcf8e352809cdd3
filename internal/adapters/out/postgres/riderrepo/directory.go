// Package riderrepo implements the rider directory against the shared
// riders table.
package riderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRiderDirectory resolves rider identifiers using GORM.
type GormRiderDirectory struct {
	db *gorm.DB
}

// NewGormRiderDirectory creates a directory backed by the riders table.
func NewGormRiderDirectory(db *gorm.DB) *GormRiderDirectory {
	return &GormRiderDirectory{db: db}
}

// Lookup returns the rider's profile.
// Fails with errs.ErrObjectNotFound when no rider carries the identifier.
func (d *GormRiderDirectory) Lookup(ctx context.Context, id kernel.UUID) (ports.RiderProfile, error) {
	var dto RiderDTO

	err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RiderProfile{}, errs.NewObjectNotFoundError("rider", id.String())
		}
		return ports.RiderProfile{}, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.RiderProfile{}, err
	}

	return ports.RiderProfile{
		ID:      riderID,
		Name:    dto.Name,
		Contact: dto.Contact,
	}, nil
}
