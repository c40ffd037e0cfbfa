package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrAssignDriverCommandIsNotConstructed is returned when an
// AssignDriverCommand was not created through its constructor.
var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand represents a request to manually attach a specific
// driver/vehicle pair to a waiting order, bypassing the matcher.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	driverID  kernel.UUID
	vehicleID kernel.UUID
	reason    string
	actorID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a validated assignment command. reason and
// actorID are optional audit fields.
func NewAssignDriverCommand(orderID, driverID, vehicleID kernel.UUID, reason string, actorID *kernel.UUID) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverID(driverID),
		cmd.setVehicleID(vehicleID),
		cmd.setActorID(actorID),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c AssignDriverCommand) OrderID() kernel.UUID { return c.orderID }

// DriverID returns the driver to attach.
func (c AssignDriverCommand) DriverID() kernel.UUID { return c.driverID }

// VehicleID returns the vehicle to attach.
func (c AssignDriverCommand) VehicleID() kernel.UUID { return c.vehicleID }

// Reason returns the optional audit reason.
func (c AssignDriverCommand) Reason() string { return c.reason }

// ActorID returns the optional reference to who requested the assignment.
func (c AssignDriverCommand) ActorID() *kernel.UUID { return c.actorID }

func (c *AssignDriverCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *AssignDriverCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	c.vehicleID = vehicleID
	return nil
}

func (c *AssignDriverCommand) setActorID(actorID *kernel.UUID) error {
	if actorID == nil {
		return nil
	}
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
