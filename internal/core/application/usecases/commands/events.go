package commands

import (
	"time"

	"dispatch/internal/core/application/views"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// Event payload builders shared by the command handlers. One event per state
// change, built from the committed aggregate state. Every payload carries the
// full client-facing view of its subject plus a server timestamp.

func newOrderCreatedEvent(o *order.Order, at time.Time) ports.OrderCreatedEvent {
	return ports.OrderCreatedEvent{
		Order:      views.NewOrderView(o, nil, nil),
		OccurredAt: at,
	}
}

func newOrderAssignedEvent(
	o *order.Order,
	d *driver.DriverAvailability,
	v *fleet.Vehicle,
	assignedAt time.Time,
) ports.OrderAssignedEvent {
	return ports.OrderAssignedEvent{
		Order:      views.NewOrderView(o, views.NewDriverSummaryView(d), views.NewVehicleSummaryView(v)),
		DriverID:   d.DriverID().String(),
		VehicleID:  v.ID().String(),
		AssignedAt: assignedAt,
	}
}

func newOrderStatusChangedEvent(o *order.Order, from order.Status, reason string, at time.Time) ports.OrderStatusChangedEvent {
	return ports.OrderStatusChangedEvent{
		Order:     views.NewOrderView(o, nil, nil),
		From:      from.String(),
		To:        o.Status().String(),
		Reason:    reason,
		ChangedAt: at,
	}
}

func newDriverAvailabilityChangedEvent(
	d *driver.DriverAvailability,
	from driver.AvailabilityStatus,
	orderID string,
	at time.Time,
) ports.DriverAvailabilityChangedEvent {
	return ports.DriverAvailabilityChangedEvent{
		Driver:    views.NewDriverView(d),
		From:      from.String(),
		To:        d.Status().String(),
		OrderID:   orderID,
		ChangedAt: at,
	}
}
