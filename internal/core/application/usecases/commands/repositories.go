// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, persistence, then post-commit notification.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DriverRepoFactory provides access to the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// FleetRepoFactory provides access to the fleet repository within a transaction.
	FleetRepoFactory interface {
		FleetRepository() ports.FleetRepository
	}

	// HistoryRepoFactory provides access to both audit trails within a transaction.
	HistoryRepoFactory interface {
		OrderHistoryRepository() ports.OrderHistoryRepository
		DriverHistoryRepository() ports.DriverHistoryRepository
	}

	// DispatchUoW manages transactions spanning the order, driver, fleet and
	// history aggregates. Every dispatch flow writes the order together with
	// its side effects, so all handlers share this one unit of work shape.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
		FleetRepoFactory
		HistoryRepoFactory
	}

	// DispatchUoWFactory creates new unit of work instances, one per command.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}
)
