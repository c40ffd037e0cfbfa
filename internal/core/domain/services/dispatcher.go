package services

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/order"
)

// ErrNoDriverAvailable is returned when no eligible driver/vehicle pair
// exists for an order. Callers translate this into the order's
// NO_DRIVER_AVAILABLE status rather than failing the operation.
var ErrNoDriverAvailable = errors.New("no driver available")

// Candidate is one driver/vehicle pair eligible for an order.
type Candidate struct {
	Driver  *driver.DriverAvailability
	Vehicle *fleet.Vehicle
}

// Validate ensures both halves of the pair were properly constructed.
func (c Candidate) Validate() error {
	return errors.Join(c.Driver.Validate(), c.Vehicle.Validate())
}

// CandidateRanker orders candidates by desirability for a given order.
// Best returns the index of the winning candidate. The slice is never empty.
//
// The ranking strategy is pluggable so proximity or rating based selection
// can replace the default without touching the dispatch flow.
type CandidateRanker interface {
	Best(o *order.Order, candidates []Candidate) int
}

// FirstEligibleRanker picks the first candidate in storage order. With the
// repository returning pairs ordered by driver idle time, this yields
// longest-idle-first assignment.
type FirstEligibleRanker struct{}

// NewFirstEligibleRanker creates the default ranker.
func NewFirstEligibleRanker() FirstEligibleRanker {
	return FirstEligibleRanker{}
}

// Best returns the index of the first candidate.
func (FirstEligibleRanker) Best(_ *order.Order, _ []Candidate) int {
	return 0
}

// Dispatcher selects a driver/vehicle pair for an order.
//
// Dispatch is read-only with respect to availability: it filters and ranks
// but never marks the driver BUSY. Occupying the winner happens inside the
// caller's transaction, where the availability re-check is authoritative.
type Dispatcher struct {
	ranker CandidateRanker
}

// NewDispatcher creates a Dispatcher with the given ranking strategy.
func NewDispatcher(ranker CandidateRanker) (Dispatcher, error) {
	if ranker == nil {
		return Dispatcher{}, errors.New("ranker must not be nil")
	}
	return Dispatcher{ranker: ranker}, nil
}

// Dispatch picks the best eligible candidate for the order.
//
// A candidate is eligible when the driver is verified and AVAILABLE and the
// vehicle is active and of the order's requested class. Returns
// ErrNoDriverAvailable when nothing passes the filter.
func (d Dispatcher) Dispatch(o *order.Order, candidates []Candidate) (Candidate, error) {
	if err := o.Validate(); err != nil {
		return Candidate{}, err
	}
	if !o.Status().IsDispatchable() {
		return Candidate{}, order.NewInvalidTransitionError(o.Status(), order.StatusDriverAssigned)
	}

	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return Candidate{}, err
		}
		if !c.Driver.IsVerified() || !c.Driver.IsAvailable() {
			continue
		}
		if !c.Vehicle.CanServe(o.VehicleClass()) {
			continue
		}
		eligible = append(eligible, c)
	}

	if len(eligible) == 0 {
		return Candidate{}, ErrNoDriverAvailable
	}

	best := d.ranker.Best(o, eligible)
	if best < 0 || best >= len(eligible) {
		return Candidate{}, errors.New("ranker returned an out of range index")
	}
	return eligible[best], nil
}
