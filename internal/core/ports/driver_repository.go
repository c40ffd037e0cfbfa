package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver availability
// aggregates.
type DriverRepository interface {
	// Add persists a new driver availability record.
	Add(ctx context.Context, aggregate *driver.DriverAvailability) error

	// Update persists changes to a driver availability record.
	//
	// When the update carries a transition to BUSY the implementation must
	// apply it conditionally on the stored status still being AVAILABLE and
	// return an errs.ConflictError when the condition fails. This is the
	// commit-time guard against two orders occupying the same driver.
	Update(ctx context.Context, aggregate *driver.DriverAvailability) error

	// Get retrieves a driver availability record by driver ID.
	// Returns an errs.ObjectNotFoundError when no such driver exists.
	Get(ctx context.Context, driverID kernel.UUID) (*driver.DriverAvailability, error)

	// GetAllAvailable retrieves every verified driver currently AVAILABLE,
	// longest idle first.
	GetAllAvailable(ctx context.Context) ([]*driver.DriverAvailability, error)
}
