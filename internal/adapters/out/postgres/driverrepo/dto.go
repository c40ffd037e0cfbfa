// Package driverrepo provides data transfer objects and mapping functions for
// driver availability persistence.
package driverrepo

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver
// availability records. The status column carries the AVAILABLE/BUSY/OFFLINE
// machine state and is the target of the conditional occupancy update.
type DriverDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string
	Phone           string `gorm:"uniqueIndex"`
	Verified        bool
	Status          string    `gorm:"index"`
	StatusChangedAt time.Time `gorm:"index"`
	LastLat         *float64
	LastLng         *float64
	TotalTrips      int
	CompletedTrips  int
	CancelledTrips  int
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver availability aggregate to its database
// representation.
func fromDomain(d *driver.DriverAvailability) DriverDTO {
	var lastLat, lastLng *float64
	if p := d.LastKnownAt(); p != nil {
		lat, lng := p.Lat(), p.Lng()
		lastLat, lastLng = &lat, &lng
	}

	return DriverDTO{
		ID:              d.DriverID().Bytes(),
		Name:            d.Name(),
		Phone:           d.Phone(),
		Verified:        d.IsVerified(),
		Status:          d.Status().String(),
		StatusChangedAt: d.StatusChangedAt(),
		LastLat:         lastLat,
		LastLng:         lastLng,
		TotalTrips:      d.TotalTrips(),
		CompletedTrips:  d.CompletedTrips(),
		CancelledTrips:  d.CancelledTrips(),
	}
}

// toDomain converts a database row to a driver availability aggregate.
func toDomain(dto DriverDTO) (*driver.DriverAvailability, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var lastKnownAt *kernel.GeoPoint
	if dto.LastLat != nil && dto.LastLng != nil {
		p, geoErr := kernel.NewGeoPoint(*dto.LastLat, *dto.LastLng)
		if geoErr != nil {
			return nil, geoErr
		}
		lastKnownAt = &p
	}

	return driver.RestoreDriverAvailability(
		id,
		dto.Name,
		dto.Phone,
		dto.Verified,
		driver.AvailabilityStatus(dto.Status),
		dto.StatusChangedAt,
		lastKnownAt,
		dto.TotalTrips,
		dto.CompletedTrips,
		dto.CancelledTrips,
	)
}
