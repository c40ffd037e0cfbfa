// Package services contains stateless domain services that coordinate
// multiple aggregates without owning persistence. The dispatcher selects a
// driver/vehicle pair for an order; writing the assignment back is the
// caller's transaction.
package services
