package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

// ErrDispatchPendingOrdersCommandIsNotConstructed is returned when a
// DispatchPendingOrdersCommand was not created through its constructor.
var ErrDispatchPendingOrdersCommandIsNotConstructed = errors.New(
	"DispatchPendingOrdersCommand must be created via NewDispatchPendingOrdersCommand constructor",
)

// DispatchPendingOrdersCommand triggers one pass of background matching:
// take the oldest order still waiting for a driver and try to assign one.
// Carries no parameters; the handler owns the selection policy.
type DispatchPendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchPendingOrdersCommand creates the command.
func NewDispatchPendingOrdersCommand() (DispatchPendingOrdersCommand, error) {
	return DispatchPendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchPendingOrdersCommandIsNotConstructed)
}
