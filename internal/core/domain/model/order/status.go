package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct dispatch workflow.
//
// State transitions:
//
//	PENDING ──┬──> DRIVER_ASSIGNED ──> DRIVER_ACCEPTED ──> DRIVER_ARRIVING ──> IN_PROGRESS ──> COMPLETED
//	          │         │    ^
//	          │         v    │
//	          └──> NO_DRIVER_AVAILABLE
//
// with cancellation and expiry branches as defined by the transition table.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status string

const (
	// StatusPending is the initial status of an order that has no driver yet.
	StatusPending Status = "PENDING"

	// StatusDriverAssigned indicates a driver/vehicle pair has been attached
	// and the driver has not yet responded.
	StatusDriverAssigned Status = "DRIVER_ASSIGNED"

	// StatusDriverAccepted indicates the assigned driver confirmed the trip.
	StatusDriverAccepted Status = "DRIVER_ACCEPTED"

	// StatusDriverArriving indicates the driver is en route to the pickup point.
	StatusDriverArriving Status = "DRIVER_ARRIVING"

	// StatusInProgress indicates the passenger is on board.
	StatusInProgress Status = "IN_PROGRESS"

	// StatusNoDriverAvailable indicates matching found no eligible candidate.
	// The order can still be assigned later.
	StatusNoDriverAvailable Status = "NO_DRIVER_AVAILABLE"

	// StatusCompleted is the terminal status of a finished trip.
	StatusCompleted Status = "COMPLETED"

	// StatusCancelledByCustomer is a terminal status set on passenger request.
	StatusCancelledByCustomer Status = "CANCELLED_BY_CUSTOMER"

	// StatusCancelledByDriver is a terminal status set on driver request.
	StatusCancelledByDriver Status = "CANCELLED_BY_DRIVER"

	// StatusCancelledBySystem is a terminal status set by housekeeping.
	StatusCancelledBySystem Status = "CANCELLED_BY_SYSTEM"

	// StatusExpired is a terminal status for assignments the driver never
	// answered within the acceptance window.
	StatusExpired Status = "EXPIRED"
)

// ErrInvalidTransition is the sentinel unwrapped by InvalidTransitionError,
// enabling errors.Is classification across layers.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a requested transition that the table does
// not allow. It always carries both the current and the requested status.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NewInvalidTransitionError creates an error for a disallowed transition
// from one status to another.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// transitions is the authoritative table of legal status changes.
// Every status has an entry; terminal statuses map to an empty set.
var transitions = map[Status][]Status{
	StatusPending:             {StatusDriverAssigned, StatusNoDriverAvailable, StatusCancelledBySystem},
	StatusDriverAssigned:      {StatusDriverAccepted, StatusCancelledByDriver, StatusExpired},
	StatusDriverAccepted:      {StatusDriverArriving, StatusCancelledByDriver, StatusCancelledByCustomer},
	StatusDriverArriving:      {StatusInProgress, StatusCancelledByDriver, StatusCancelledByCustomer},
	StatusInProgress:          {StatusCompleted, StatusCancelledByDriver},
	StatusNoDriverAvailable:   {StatusDriverAssigned, StatusCancelledBySystem},
	StatusCompleted:           {},
	StatusCancelledByCustomer: {},
	StatusCancelledByDriver:   {},
	StatusCancelledBySystem:   {},
	StatusExpired:             {},
}

// AllStatuses returns every member of the status enumeration.
func AllStatuses() []Status {
	all := make([]Status, 0, len(transitions))
	for s := range transitions {
		all = append(all, s)
	}
	return all
}

// Validate checks if the Status value is a member of the fixed enumeration.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the persisted name of the status.
func (s Status) String() string {
	return string(s)
}

// AllowedNext returns the set of statuses this status may transition to.
// The function is total: an unknown or terminal status yields an empty set.
func (s Status) AllowedNext() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether the transition to next is in the table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the requested transition against the table.
//
// Returns:
//   - (next, nil) on a legal transition
//   - ("", *InvalidTransitionError) carrying both statuses otherwise
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(next) {
		return "", NewInvalidTransitionError(s, next)
	}
	return next, nil
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.Validate() == nil
}

// IsCancelled reports whether the status is one of the CANCELLED_* family.
func (s Status) IsCancelled() bool {
	return s == StatusCancelledByCustomer || s == StatusCancelledByDriver || s == StatusCancelledBySystem
}

// IsDispatchable reports whether an order in this status may still receive
// a driver assignment.
func (s Status) IsDispatchable() bool {
	return s == StatusPending || s == StatusNoDriverAvailable
}
