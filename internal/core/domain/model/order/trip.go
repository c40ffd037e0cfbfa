package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// TripType distinguishes trips requested for immediate dispatch from trips
// scheduled for a future time.
type TripType string

const (
	// TripImmediate is matched against available drivers at creation time.
	TripImmediate TripType = "IMMEDIATE"
	// TripScheduled carries a future pickup time and is dispatched later.
	TripScheduled TripType = "SCHEDULED"
)

// Validate checks the trip type against the fixed enumeration.
func (t TripType) Validate() error {
	switch t {
	case TripImmediate, TripScheduled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("tripType", fmt.Errorf("%q is not a valid trip type", string(t)))
	}
}

// VehicleClass is the class of vehicle a passenger requests.
type VehicleClass string

const (
	ClassEconomy VehicleClass = "ECONOMY"
	ClassPremium VehicleClass = "PREMIUM"
	ClassXL      VehicleClass = "XL"
)

// Validate checks the vehicle class against the fixed enumeration.
func (c VehicleClass) Validate() error {
	switch c {
	case ClassEconomy, ClassPremium, ClassXL:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicleClass", fmt.Errorf("%q is not a valid vehicle class", string(c)))
	}
}

// PaymentMethod is how the passenger intends to pay for the trip.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

// Validate checks the payment method against the fixed enumeration.
func (p PaymentMethod) Validate() error {
	switch p {
	case PaymentCash, PaymentCard:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not a valid payment method", string(p)))
	}
}
