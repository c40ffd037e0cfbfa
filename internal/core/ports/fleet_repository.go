package ports

import (
	"context"

	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// FleetRepository defines the read contract over the vehicle registry.
type FleetRepository interface {
	// GetVehicle retrieves a vehicle by its unique identifier.
	// Returns an errs.ObjectNotFoundError when no such vehicle exists.
	GetVehicle(ctx context.Context, id kernel.UUID) (*fleet.Vehicle, error)

	// GetActiveAssignmentForDriver retrieves the driver's current vehicle
	// assignment. Returns an errs.ObjectNotFoundError when the driver has
	// no active assignment.
	GetActiveAssignmentForDriver(ctx context.Context, driverID kernel.UUID) (*fleet.VehicleAssignment, error)

	// FindAvailablePairs retrieves candidate driver/vehicle pairs for the
	// requested class: active vehicle of that class, active assignment,
	// verified AVAILABLE driver. Ordered longest driver idle time first.
	FindAvailablePairs(ctx context.Context, class order.VehicleClass) ([]services.Candidate, error)
}
