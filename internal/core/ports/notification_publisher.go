package ports

import (
	"context"
	"time"

	"dispatch/internal/core/application/views"
)

// OrderCreatedEvent is emitted once per successfully created order. It
// carries the full client-facing order view plus the server-side time the
// event was produced.
type OrderCreatedEvent struct {
	Order      views.OrderView `json:"order"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// OrderAssignedEvent is emitted when a driver/vehicle pair is attached to
// an order. The view already includes the driver and vehicle summaries; the
// flat IDs are kept for routing and consumer convenience.
type OrderAssignedEvent struct {
	Order      views.OrderView `json:"order"`
	DriverID   string          `json:"driver_id"`
	VehicleID  string          `json:"vehicle_id"`
	AssignedAt time.Time       `json:"assigned_at"`
}

// OrderStatusChangedEvent is emitted for every order status transition.
type OrderStatusChangedEvent struct {
	Order     views.OrderView `json:"order"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Reason    string          `json:"reason,omitempty"`
	ChangedAt time.Time       `json:"changed_at"`
}

// DriverAvailabilityChangedEvent is emitted when a driver's availability
// actually changed as part of the dispatch flow.
type DriverAvailabilityChangedEvent struct {
	Driver    views.DriverView `json:"driver"`
	From      string           `json:"from"`
	To        string           `json:"to"`
	OrderID   string           `json:"order_id,omitempty"`
	ChangedAt time.Time        `json:"changed_at"`
}

// NotificationPublisher is the outbound event contract of the dispatch flow.
//
// Emission is fire-and-forget: publishers run after the owning transaction
// commits, and a failed publish is logged by the caller and never surfaced
// to the client. Exactly one event is emitted per state change.
type NotificationPublisher interface {
	// PublishOrderCreated announces a new order.
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error

	// PublishOrderAssigned announces a driver assignment.
	PublishOrderAssigned(ctx context.Context, event OrderAssignedEvent) error

	// PublishOrderStatusChanged announces an order status transition.
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error

	// PublishDriverAvailabilityChanged announces a driver availability change.
	PublishDriverAvailabilityChanged(ctx context.Context, event DriverAvailabilityChangedEvent) error

	// NotifyDriverAssigned targets the assigned driver with their new trip.
	NotifyDriverAssigned(ctx context.Context, driverID string, event OrderAssignedEvent) error

	// BroadcastToIdleDrivers offers an unmatched order to every idle driver.
	BroadcastToIdleDrivers(ctx context.Context, event OrderCreatedEvent) error
}
