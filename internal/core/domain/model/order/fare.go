package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// FareTolerance is the maximum accepted difference, in minor currency units,
// between the claimed total and the sum of the fare components. It absorbs
// client-side rounding of display amounts.
const FareTolerance int64 = 100

// ErrFareMismatch is the sentinel unwrapped by FareMismatchError.
var ErrFareMismatch = errors.New("fare mismatch")

// ErrFareIsNotConstructed is returned when validating a zero-value Fare.
var ErrFareIsNotConstructed = errors.New("Fare must be created via NewFare constructor")

// FareMismatchError reports an inconsistent fare breakdown. It carries both
// the total computed from the components and the total the client claimed,
// so callers can log and surface the discrepancy.
type FareMismatchError struct {
	Computed int64
	Claimed  int64
}

func (e *FareMismatchError) Error() string {
	return fmt.Sprintf("%s: computed total %d, claimed total %d", ErrFareMismatch, e.Computed, e.Claimed)
}

func (e *FareMismatchError) Unwrap() error {
	return ErrFareMismatch
}

// Fare holds the fare breakdown of an order in integer minor currency units.
// Fare is an immutable value object; construction enforces the consistency
// invariants, so any constructed Fare is internally consistent.
//
// Invariants:
//   - all components are non-negative
//   - |base + distance + airport - total| <= FareTolerance
//   - total >= base
type Fare struct { //nolint:recvcheck //using for validation
	base     int64
	distance int64
	airport  int64
	total    int64

	guard guard.ConstructorGuard
}

// NewFare creates a Fare from its components and the claimed total.
// A violation of the consistency invariants yields a FareMismatchError;
// this is a data-integrity gate, not a warning, and must block order creation.
func NewFare(base, distance, airport, total int64) (Fare, error) {
	if base < 0 {
		return Fare{}, errs.NewValueIsInvalidError("baseFare")
	}
	if distance < 0 {
		return Fare{}, errs.NewValueIsInvalidError("distanceFare")
	}
	if airport < 0 {
		return Fare{}, errs.NewValueIsInvalidError("airportFare")
	}
	if total < 0 {
		return Fare{}, errs.NewValueIsInvalidError("totalFare")
	}

	computed := base + distance + airport
	if diff := computed - total; diff > FareTolerance || diff < -FareTolerance {
		return Fare{}, &FareMismatchError{Computed: computed, Claimed: total}
	}

	// A total inside the tolerance band can still undercut the base fare
	// when distance and airport components are zero.
	if total < base {
		return Fare{}, &FareMismatchError{Computed: computed, Claimed: total}
	}

	return Fare{
		base:     base,
		distance: distance,
		airport:  airport,
		total:    total,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Base returns the base fare in minor units.
func (f Fare) Base() int64 {
	return f.base
}

// Distance returns the distance fare in minor units.
func (f Fare) Distance() int64 {
	return f.distance
}

// Airport returns the airport surcharge in minor units.
func (f Fare) Airport() int64 {
	return f.airport
}

// Total returns the claimed total fare in minor units.
func (f Fare) Total() int64 {
	return f.total
}

// Validate ensures the Fare was created through NewFare.
func (f Fare) Validate() error {
	return f.guard.Validate(ErrFareIsNotConstructed)
}
