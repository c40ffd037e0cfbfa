package fleet

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrVehicleIsNotConstructed is returned when a Vehicle instance was not
	// created through a constructor.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

	// ErrVehicleInactive is returned when an inactive vehicle is offered for
	// a trip.
	ErrVehicleInactive = errors.New("vehicle is inactive")
)

// Vehicle is one registered car of the fleet.
type Vehicle struct {
	id     kernel.UUID
	class  order.VehicleClass
	plate  string
	model  string
	active bool

	isConstructed bool
}

// NewVehicle creates an active Vehicle with validation.
func NewVehicle(id kernel.UUID, class order.VehicleClass, plate, model string) (*Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := class.Validate(); err != nil {
		return nil, err
	}
	if plate == "" {
		return nil, errs.NewValueIsRequiredError("plateNumber")
	}

	return &Vehicle{
		id:            id,
		class:         class,
		plate:         plate,
		model:         model,
		active:        true,
		isConstructed: true,
	}, nil
}

// RestoreVehicle reconstructs a Vehicle from persistence.
func RestoreVehicle(id kernel.UUID, class order.VehicleClass, plate, model string, active bool) (*Vehicle, error) {
	v, err := NewVehicle(id, class, plate, model)
	if err != nil {
		return nil, err
	}
	v.active = active
	return v, nil
}

// Validate ensures the Vehicle was created through a constructor.
func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}
	return nil
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID { return v.id }

// Class returns the vehicle's service class.
func (v *Vehicle) Class() order.VehicleClass { return v.class }

// Plate returns the registration plate number.
func (v *Vehicle) Plate() string { return v.plate }

// Model returns the vehicle's make and model description.
func (v *Vehicle) Model() string { return v.model }

// IsActive reports whether the vehicle may serve trips.
func (v *Vehicle) IsActive() bool { return v.active }

// CanServe reports whether the vehicle is active and of the requested class.
func (v *Vehicle) CanServe(class order.VehicleClass) bool {
	return v.active && v.class == class
}

// Deactivate removes the vehicle from service.
func (v *Vehicle) Deactivate() {
	v.active = false
}

// Activate returns the vehicle to service.
func (v *Vehicle) Activate() {
	v.active = true
}

// ErrAssignmentIsNotConstructed is returned when a VehicleAssignment instance
// was not created through a constructor.
var ErrAssignmentIsNotConstructed = errors.New("VehicleAssignment must be created via NewVehicleAssignment constructor")

// VehicleAssignment links a driver to the vehicle they currently operate.
// Only active assignments participate in matching. Exclusivity across rows
// is maintained by the fleet management flow, not enforced here.
type VehicleAssignment struct {
	id        kernel.UUID
	vehicleID kernel.UUID
	driverID  kernel.UUID
	active    bool
	startedAt time.Time
	endedAt   *time.Time

	isConstructed bool
}

// NewVehicleAssignment creates an active assignment starting at the given time.
func NewVehicleAssignment(vehicleID, driverID kernel.UUID, startedAt time.Time) (*VehicleAssignment, error) {
	if err := errors.Join(vehicleID.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}

	return &VehicleAssignment{
		id:            kernel.NewUUID(),
		vehicleID:     vehicleID,
		driverID:      driverID,
		active:        true,
		startedAt:     startedAt,
		isConstructed: true,
	}, nil
}

// RestoreVehicleAssignment reconstructs an assignment from persistence.
func RestoreVehicleAssignment(
	id, vehicleID, driverID kernel.UUID,
	active bool,
	startedAt time.Time,
	endedAt *time.Time,
) (*VehicleAssignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	a, err := NewVehicleAssignment(vehicleID, driverID, startedAt)
	if err != nil {
		return nil, err
	}
	a.id = id
	a.active = active
	a.endedAt = endedAt
	return a, nil
}

// Validate ensures the assignment was created through a constructor.
func (a *VehicleAssignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID returns the assignment's unique identifier.
func (a *VehicleAssignment) ID() kernel.UUID { return a.id }

// VehicleID returns the assigned vehicle's identifier.
func (a *VehicleAssignment) VehicleID() kernel.UUID { return a.vehicleID }

// DriverID returns the operating driver's identifier.
func (a *VehicleAssignment) DriverID() kernel.UUID { return a.driverID }

// IsActive reports whether the assignment is current.
func (a *VehicleAssignment) IsActive() bool { return a.active }

// StartedAt returns when the assignment began.
func (a *VehicleAssignment) StartedAt() time.Time { return a.startedAt }

// EndedAt returns when the assignment ended, or nil while active.
func (a *VehicleAssignment) EndedAt() *time.Time { return a.endedAt }

// End closes the assignment at the given time. Ending an already ended
// assignment is a no-op.
func (a *VehicleAssignment) End(at time.Time) {
	if !a.active {
		return
	}
	a.active = false
	a.endedAt = &at
}
