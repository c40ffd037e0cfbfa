package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and repositories bound to that
// transaction, so an order change and its side effects (driver state,
// history records) commit or roll back as one.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// DriverRepository returns a DriverRepository bound to the current transaction.
	DriverRepository() DriverRepository

	// FleetRepository returns a FleetRepository bound to the current transaction.
	FleetRepository() FleetRepository

	// OrderHistoryRepository returns an OrderHistoryRepository bound to the current transaction.
	OrderHistoryRepository() OrderHistoryRepository

	// DriverHistoryRepository returns a DriverHistoryRepository bound to the current transaction.
	DriverHistoryRepository() DriverHistoryRepository
}
