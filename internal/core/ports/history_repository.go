package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderHistoryRepository defines the append-only audit trail of order status
// changes. Exactly one record is appended per change, in the transaction
// that applied the change.
type OrderHistoryRepository interface {
	// Append persists one order status change record.
	Append(ctx context.Context, record *order.StatusHistory) error

	// GetByOrder retrieves an order's records, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.StatusHistory, error)
}

// DriverHistoryRepository defines the append-only audit trail of driver
// availability changes.
type DriverHistoryRepository interface {
	// Append persists one driver availability change record.
	Append(ctx context.Context, record *driver.StatusHistory) error

	// GetByDriver retrieves a driver's records, oldest first.
	GetByDriver(ctx context.Context, driverID kernel.UUID) ([]*driver.StatusHistory, error)
}
