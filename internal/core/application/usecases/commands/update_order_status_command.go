package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

// ErrUpdateOrderStatusCommandIsNotConstructed is returned when an
// UpdateOrderStatusCommand was not created through its constructor.
var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order to a new
// lifecycle status. Whether the move is legal is the transition table's
// decision, made by the handler against the order's current status.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	newStatus order.Status
	reason    string
	actorID   *kernel.UUID
	metadata  map[string]string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a validated status change command.
// Metadata is free-form context recorded on the resulting history row; it
// may be nil.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	reason string,
	actorID *kernel.UUID,
	metadata map[string]string,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		reason:   reason,
		metadata: metadata,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
		cmd.setActorID(actorID),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// NewStatus returns the requested status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status { return c.newStatus }

// Reason returns the optional reason for the change.
func (c UpdateOrderStatusCommand) Reason() string { return c.reason }

// ActorID returns the optional reference to who requested the change.
func (c UpdateOrderStatusCommand) ActorID() *kernel.UUID { return c.actorID }

// Metadata returns the optional context attached to the history row.
func (c UpdateOrderStatusCommand) Metadata() map[string]string { return c.metadata }

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}

func (c *UpdateOrderStatusCommand) setActorID(actorID *kernel.UUID) error {
	if actorID == nil {
		return nil
	}
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
