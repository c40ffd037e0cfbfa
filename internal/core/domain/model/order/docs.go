// Package order contains the Order aggregate and its supporting value objects.
// The aggregate manages one requested or in-progress trip from creation through
// assignment to a terminal state.
//
// The package includes:
//   - Order: the aggregate root; mutated only through validated methods
//   - Status: the order lifecycle state machine with its transition table
//   - Fare: fare components in integer minor currency units with consistency checks
//   - StatusHistory: append-only audit records of every status change
//
// Orders are never deleted; a finished order is moved to one of the terminal
// statuses (COMPLETED, the CANCELLED_* family, or EXPIRED) and kept.
package order
