// Package fleetrepo provides data transfer objects and mapping functions for
// the vehicle registry: vehicles and driver/vehicle assignments.
package fleetrepo

import (
	"time"

	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// VehicleDTO represents the database structure for persisting vehicles.
type VehicleDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Class  string    `gorm:"index"`
	Plate  string    `gorm:"uniqueIndex"`
	Model  string
	Active bool
}

// TableName specifies the database table name for vehicle entities.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// VehicleAssignmentDTO represents the database structure for persisting
// driver/vehicle assignments.
type VehicleAssignmentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	VehicleID uuid.UUID `gorm:"type:uuid;index"`
	DriverID  uuid.UUID `gorm:"type:uuid;index"`
	Active    bool
	StartedAt time.Time
	EndedAt   *time.Time
}

// TableName specifies the database table name for assignment entities.
func (VehicleAssignmentDTO) TableName() string {
	return "vehicle_assignments"
}

func vehicleFromDomain(v *fleet.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:     v.ID().Bytes(),
		Class:  string(v.Class()),
		Plate:  v.Plate(),
		Model:  v.Model(),
		Active: v.IsActive(),
	}
}

func vehicleToDomain(dto VehicleDTO) (*fleet.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return fleet.RestoreVehicle(id, order.VehicleClass(dto.Class), dto.Plate, dto.Model, dto.Active)
}

func assignmentFromDomain(a *fleet.VehicleAssignment) VehicleAssignmentDTO {
	return VehicleAssignmentDTO{
		ID:        a.ID().Bytes(),
		VehicleID: a.VehicleID().Bytes(),
		DriverID:  a.DriverID().Bytes(),
		Active:    a.IsActive(),
		StartedAt: a.StartedAt(),
		EndedAt:   a.EndedAt(),
	}
}

func assignmentToDomain(dto VehicleAssignmentDTO) (*fleet.VehicleAssignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	return fleet.RestoreVehicleAssignment(id, vehicleID, driverID, dto.Active, dto.StartedAt, dto.EndedAt)
}
