package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstDispatchable retrieves the oldest order still waiting for a
	// driver (PENDING or NO_DRIVER_AVAILABLE) whose pickup is due, meaning
	// an immediate trip or a scheduled trip within the dispatch horizon.
	// Returns an errs.ObjectNotFoundError when nothing is waiting.
	GetFirstDispatchable(ctx context.Context, due time.Time) (*order.Order, error)

	// GetAssignedBefore retrieves orders stuck in DRIVER_ASSIGNED whose
	// assignment happened before the cutoff.
	GetAssignedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
