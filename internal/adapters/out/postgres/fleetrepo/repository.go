package fleetrepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFleetRepository implements ports.FleetRepository using GORM.
type GormFleetRepository struct {
	db      *gorm.DB
	drivers *driverrepo.GormDriverRepository
}

// NewGormFleetRepository creates a new GORM fleet repository.
func NewGormFleetRepository(db *gorm.DB) *GormFleetRepository {
	return &GormFleetRepository{
		db:      db,
		drivers: driverrepo.NewGormDriverRepository(db),
	}
}

// AddVehicle saves a new vehicle to the registry.
func (r *GormFleetRepository) AddVehicle(ctx context.Context, vehicle *fleet.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	dto := vehicleFromDomain(vehicle)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddAssignment saves a new driver/vehicle assignment.
func (r *GormFleetRepository) AddAssignment(ctx context.Context, assignment *fleet.VehicleAssignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}

	dto := assignmentFromDomain(assignment)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetVehicle retrieves a vehicle by ID.
func (r *GormFleetRepository) GetVehicle(ctx context.Context, id kernel.UUID) (*fleet.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, err
	}

	return vehicleToDomain(dto)
}

// GetActiveAssignmentForDriver retrieves the driver's current vehicle
// assignment.
func (r *GormFleetRepository) GetActiveAssignmentForDriver(
	ctx context.Context,
	driverID kernel.UUID,
) (*fleet.VehicleAssignment, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleAssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "driver_id = ? AND active", driverID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", driverID.String())
		}
		return nil, err
	}

	return assignmentToDomain(dto)
}

// FindAvailablePairs retrieves the driver/vehicle candidates eligible for the
// requested class: active vehicle of that class with an active assignment
// operated by a verified AVAILABLE driver. Candidates come back longest
// driver idle time first.
func (r *GormFleetRepository) FindAvailablePairs(
	ctx context.Context,
	class order.VehicleClass,
) ([]services.Candidate, error) {
	if err := class.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT a.driver_id, a.vehicle_id
		FROM vehicle_assignments a
		JOIN vehicles v ON v.id = a.vehicle_id
		JOIN drivers d ON d.id = a.driver_id
		WHERE a.active
		  AND v.active
		  AND v.class = ?
		  AND d.verified
		  AND d.status = ?
		ORDER BY d.status_changed_at ASC
	`, string(class), driver.StatusAvailable.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type pair struct {
		driverID  kernel.UUID
		vehicleID kernel.UUID
	}
	pairs := make([]pair, 0)

	for rows.Next() {
		var rawDriverID, rawVehicleID uuid.UUID
		if err = rows.Scan(&rawDriverID, &rawVehicleID); err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(rawDriverID[:])
		if idErr != nil {
			return nil, idErr
		}
		vehicleID, idErr := kernel.UUIDFromBytes(rawVehicleID[:])
		if idErr != nil {
			return nil, idErr
		}
		pairs = append(pairs, pair{driverID: driverID, vehicleID: vehicleID})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	candidates := make([]services.Candidate, 0, len(pairs))
	for _, p := range pairs {
		d, loadErr := r.drivers.Get(ctx, p.driverID)
		if loadErr != nil {
			return nil, loadErr
		}
		v, loadErr := r.GetVehicle(ctx, p.vehicleID)
		if loadErr != nil {
			return nil, loadErr
		}
		candidates = append(candidates, services.Candidate{Driver: d, Vehicle: v})
	}

	return candidates, nil
}
