package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when a CreateOrderCommand
// was not created through its constructor.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new trip order.
// The fare breakdown is validated at construction, so a command that exists
// always carries a consistent fare; an inconsistent breakdown surfaces as a
// FareMismatchError before any state is touched.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	tripType        order.TripType
	scheduledAt     *time.Time
	passengerName   string
	passengerPhone  string
	pickupAddress   string
	pickup          kernel.GeoPoint
	dropoffAddress  string
	dropoff         kernel.GeoPoint
	vehicleClass    order.VehicleClass
	distanceMeters  int64
	durationMinutes int
	fare            order.Fare
	paymentMethod   order.PaymentMethod
	specialRequests string

	guard guard.ConstructorGuard
}

// CreateOrderParams bundles the raw request fields of a new order.
type CreateOrderParams struct {
	TripType        order.TripType
	ScheduledAt     *time.Time
	PassengerName   string
	PassengerPhone  string
	PickupAddress   string
	PickupLat       float64
	PickupLng       float64
	DropoffAddress  string
	DropoffLat      float64
	DropoffLng      float64
	VehicleClass    order.VehicleClass
	DistanceMeters  int64
	DurationMinutes int
	BaseFare        int64
	DistanceFare    int64
	AirportFare     int64
	TotalFare       int64
	PaymentMethod   order.PaymentMethod
	SpecialRequests string
}

// NewCreateOrderCommand creates a validated command to create an order.
// Coordinate bounds, enum membership and fare consistency are all checked
// here; the returned error carries every violation joined together, except
// the fare which is checked on its own so FareMismatchError stays matchable.
func NewCreateOrderCommand(orderID kernel.UUID, p CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		specialRequests: p.SpecialRequests,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTrip(p.TripType, p.ScheduledAt),
		cmd.setPassenger(p.PassengerName, p.PassengerPhone),
		cmd.setRoute(p),
		cmd.setVehicleClass(p.VehicleClass),
		cmd.setEstimates(p.DistanceMeters, p.DurationMinutes),
		cmd.setPaymentMethod(p.PaymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	fare, err := order.NewFare(p.BaseFare, p.DistanceFare, p.AirportFare, p.TotalFare)
	if err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.fare = fare

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// TripType returns whether the trip is immediate or scheduled.
func (c CreateOrderCommand) TripType() order.TripType { return c.tripType }

// ScheduledAt returns the requested pickup time for scheduled trips.
func (c CreateOrderCommand) ScheduledAt() *time.Time { return c.scheduledAt }

// PassengerName returns the passenger's display name.
func (c CreateOrderCommand) PassengerName() string { return c.passengerName }

// PassengerPhone returns the passenger's contact phone.
func (c CreateOrderCommand) PassengerPhone() string { return c.passengerPhone }

// PickupAddress returns the pickup street address.
func (c CreateOrderCommand) PickupAddress() string { return c.pickupAddress }

// Pickup returns the pickup coordinates.
func (c CreateOrderCommand) Pickup() kernel.GeoPoint { return c.pickup }

// DropoffAddress returns the dropoff street address.
func (c CreateOrderCommand) DropoffAddress() string { return c.dropoffAddress }

// Dropoff returns the dropoff coordinates.
func (c CreateOrderCommand) Dropoff() kernel.GeoPoint { return c.dropoff }

// VehicleClass returns the requested vehicle class.
func (c CreateOrderCommand) VehicleClass() order.VehicleClass { return c.vehicleClass }

// DistanceMeters returns the estimated trip distance.
func (c CreateOrderCommand) DistanceMeters() int64 { return c.distanceMeters }

// DurationMinutes returns the estimated trip duration.
func (c CreateOrderCommand) DurationMinutes() int { return c.durationMinutes }

// Fare returns the validated fare breakdown.
func (c CreateOrderCommand) Fare() order.Fare { return c.fare }

// PaymentMethod returns how the passenger intends to pay.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

// SpecialRequests returns the optional passenger notes.
func (c CreateOrderCommand) SpecialRequests() string { return c.specialRequests }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTrip(tripType order.TripType, scheduledAt *time.Time) error {
	if err := tripType.Validate(); err != nil {
		return err
	}
	if tripType == order.TripScheduled && scheduledAt == nil {
		return errs.NewValueIsRequiredError("scheduledAt")
	}
	c.tripType = tripType
	c.scheduledAt = scheduledAt
	return nil
}

func (c *CreateOrderCommand) setPassenger(name, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("passengerName")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("passengerPhone")
	}
	c.passengerName = name
	c.passengerPhone = phone
	return nil
}

func (c *CreateOrderCommand) setRoute(p CreateOrderParams) error {
	if p.PickupAddress == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if p.DropoffAddress == "" {
		return errs.NewValueIsRequiredError("dropoffAddress")
	}

	pickup, err := kernel.NewGeoPoint(p.PickupLat, p.PickupLng)
	if err != nil {
		return err
	}
	dropoff, err := kernel.NewGeoPoint(p.DropoffLat, p.DropoffLng)
	if err != nil {
		return err
	}

	c.pickupAddress = p.PickupAddress
	c.pickup = pickup
	c.dropoffAddress = p.DropoffAddress
	c.dropoff = dropoff
	return nil
}

func (c *CreateOrderCommand) setVehicleClass(class order.VehicleClass) error {
	if err := class.Validate(); err != nil {
		return err
	}
	c.vehicleClass = class
	return nil
}

func (c *CreateOrderCommand) setEstimates(distanceMeters int64, durationMinutes int) error {
	if distanceMeters < 0 {
		return errs.NewValueIsInvalidError("distanceMeters")
	}
	if durationMinutes < 0 {
		return errs.NewValueIsInvalidError("durationMinutes")
	}
	c.distanceMeters = distanceMeters
	c.durationMinutes = durationMinutes
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}
