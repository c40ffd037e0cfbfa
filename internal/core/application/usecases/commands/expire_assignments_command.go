package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

// ErrExpireAssignmentsCommandIsNotConstructed is returned when an
// ExpireAssignmentsCommand was not created through its constructor.
var ErrExpireAssignmentsCommandIsNotConstructed = errors.New(
	"ExpireAssignmentsCommand must be created via NewExpireAssignmentsCommand constructor",
)

// ExpireAssignmentsCommand triggers one housekeeping pass over assignments
// the driver never answered: orders stuck in DRIVER_ASSIGNED past the
// acceptance window move to EXPIRED and their drivers are released.
type ExpireAssignmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireAssignmentsCommand creates the command.
func NewExpireAssignmentsCommand() (ExpireAssignmentsCommand, error) {
	return ExpireAssignmentsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrExpireAssignmentsCommandIsNotConstructed)
}
