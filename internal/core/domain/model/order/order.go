package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrScheduledTimeRequired is returned when a scheduled trip carries no
	// scheduled time.
	ErrScheduledTimeRequired = errs.NewValueIsRequiredError("scheduledAt")
)

// Order represents one requested or in-progress trip. It is the aggregate
// root that manages the order lifecycle from creation through assignment to
// a terminal status.
//
// Order follows these invariants:
//   - Status is always a member of the fixed status enumeration
//   - Status changes follow the transition table in this package
//   - Fare components are consistent (enforced by the Fare value object)
//   - Driver and vehicle references are set and cleared together
//   - Can only be created through NewOrder or RestoreOrder
//
// Orders are mutated only through validated methods and are never deleted;
// finished orders stay in a terminal status.
type Order struct {
	id     kernel.UUID
	number string

	tripType    TripType
	scheduledAt *time.Time

	passengerName  string
	passengerPhone string

	pickupAddress  string
	pickup         kernel.GeoPoint
	dropoffAddress string
	dropoff        kernel.GeoPoint

	vehicleClass    VehicleClass
	distanceMeters  int64
	durationMinutes int

	fare            Fare
	paymentMethod   PaymentMethod
	specialRequests string

	status    Status
	driverID  *kernel.UUID
	vehicleID *kernel.UUID

	createdAt   time.Time
	assignedAt  *time.Time
	acceptedAt  *time.Time
	arrivedAt   *time.Time
	startedAt   *time.Time
	completedAt *time.Time
	cancelledAt *time.Time

	cancellationReason string

	isConstructed bool
}

// Params bundles the validated inputs of a new order. Identity, status and
// lifecycle timestamps are owned by the aggregate and are not part of Params.
type Params struct {
	Number          string
	TripType        TripType
	ScheduledAt     *time.Time
	PassengerName   string
	PassengerPhone  string
	PickupAddress   string
	Pickup          kernel.GeoPoint
	DropoffAddress  string
	Dropoff         kernel.GeoPoint
	VehicleClass    VehicleClass
	DistanceMeters  int64
	DurationMinutes int
	Fare            Fare
	PaymentMethod   PaymentMethod
	SpecialRequests string
	CreatedAt       time.Time
}

// NewOrder creates an Order in PENDING status with validation. This is the
// only way to create a valid new Order; persistence restores existing ones
// via RestoreOrder.
func NewOrder(id kernel.UUID, p Params) (*Order, error) {
	o := &Order{
		status:          StatusPending,
		specialRequests: p.SpecialRequests,
		createdAt:       p.CreatedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(p.Number),
		o.setTrip(p.TripType, p.ScheduledAt),
		o.setPassenger(p.PassengerName, p.PassengerPhone),
		o.setRoute(p.PickupAddress, p.Pickup, p.DropoffAddress, p.Dropoff),
		o.setVehicleClass(p.VehicleClass),
		o.setEstimates(p.DistanceMeters, p.DurationMinutes),
		o.setFare(p.Fare),
		o.setPaymentMethod(p.PaymentMethod),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoredState carries the lifecycle fields of a persisted order that are
// not part of Params.
type RestoredState struct {
	Status             Status
	DriverID           *kernel.UUID
	VehicleID          *kernel.UUID
	AssignedAt         *time.Time
	AcceptedAt         *time.Time
	ArrivedAt          *time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
}

// RestoreOrder reconstructs an Order from persistence, including its current
// status, assignment references and lifecycle timestamps.
func RestoreOrder(id kernel.UUID, p Params, s RestoredState) (*Order, error) {
	o, err := NewOrder(id, p)
	if err != nil {
		return nil, err
	}

	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	if s.DriverID != nil {
		if err = s.DriverID.Validate(); err != nil {
			return nil, err
		}
	}
	if s.VehicleID != nil {
		if err = s.VehicleID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = s.Status
	o.driverID = s.DriverID
	o.vehicleID = s.VehicleID
	o.assignedAt = s.AssignedAt
	o.acceptedAt = s.AcceptedAt
	o.arrivedAt = s.ArrivedAt
	o.startedAt = s.StartedAt
	o.completedAt = s.CompletedAt
	o.cancelledAt = s.CancelledAt
	o.cancellationReason = s.CancellationReason
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the human-readable order number.
func (o *Order) Number() string { return o.number }

// TripType returns whether the trip is immediate or scheduled.
func (o *Order) TripType() TripType { return o.tripType }

// ScheduledAt returns the scheduled pickup time; nil for immediate trips.
func (o *Order) ScheduledAt() *time.Time { return o.scheduledAt }

// PassengerName returns the passenger's display name.
func (o *Order) PassengerName() string { return o.passengerName }

// PassengerPhone returns the passenger's contact phone.
func (o *Order) PassengerPhone() string { return o.passengerPhone }

// PickupAddress returns the pickup street address.
func (o *Order) PickupAddress() string { return o.pickupAddress }

// Pickup returns the pickup coordinates.
func (o *Order) Pickup() kernel.GeoPoint { return o.pickup }

// DropoffAddress returns the dropoff street address.
func (o *Order) DropoffAddress() string { return o.dropoffAddress }

// Dropoff returns the dropoff coordinates.
func (o *Order) Dropoff() kernel.GeoPoint { return o.dropoff }

// VehicleClass returns the requested vehicle class.
func (o *Order) VehicleClass() VehicleClass { return o.vehicleClass }

// DistanceMeters returns the estimated trip distance in meters.
func (o *Order) DistanceMeters() int64 { return o.distanceMeters }

// DurationMinutes returns the estimated trip duration in minutes.
func (o *Order) DurationMinutes() int { return o.durationMinutes }

// Fare returns the fare breakdown.
func (o *Order) Fare() Fare { return o.fare }

// PaymentMethod returns how the passenger intends to pay.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// SpecialRequests returns the optional passenger notes.
func (o *Order) SpecialRequests() string { return o.specialRequests }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// DriverID returns the assigned driver's ID, or nil if unassigned.
func (o *Order) DriverID() *kernel.UUID { return o.driverID }

// VehicleID returns the assigned vehicle's ID, or nil if unassigned.
func (o *Order) VehicleID() *kernel.UUID { return o.vehicleID }

// HasDriver reports whether a driver is currently assigned.
func (o *Order) HasDriver() bool { return o.driverID != nil }

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// AssignedAt returns when a driver was last assigned.
func (o *Order) AssignedAt() *time.Time { return o.assignedAt }

// AcceptedAt returns when the driver accepted the trip.
func (o *Order) AcceptedAt() *time.Time { return o.acceptedAt }

// ArrivedAt returns when the driver arrived at the pickup point.
func (o *Order) ArrivedAt() *time.Time { return o.arrivedAt }

// StartedAt returns when the trip started.
func (o *Order) StartedAt() *time.Time { return o.startedAt }

// CompletedAt returns when the trip completed.
func (o *Order) CompletedAt() *time.Time { return o.completedAt }

// CancelledAt returns when the order was cancelled or expired.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// CancellationReason returns the optional cancellation reason.
func (o *Order) CancellationReason() string { return o.cancellationReason }

// AssignDriver attaches a driver/vehicle pair and moves the order to
// DRIVER_ASSIGNED. Allowed only from PENDING or NO_DRIVER_AVAILABLE per the
// transition table; other statuses yield an InvalidTransitionError.
func (o *Order) AssignDriver(driverID, vehicleID kernel.UUID, at time.Time) error {
	if err := errors.Join(driverID.Validate(), vehicleID.Validate()); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(StatusDriverAssigned)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	o.vehicleID = &vehicleID
	o.assignedAt = &at
	return nil
}

// MarkNoDriverAvailable records that matching found no eligible candidate.
func (o *Order) MarkNoDriverAvailable() error {
	newStatus, err := o.status.TransitionTo(StatusNoDriverAvailable)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// statusTimestamp maps each target status to the single lifecycle timestamp
// field it sets. Statuses absent from the map touch no timestamp.
var statusTimestamp = map[Status]func(*Order, time.Time){
	StatusDriverAssigned:      func(o *Order, t time.Time) { o.assignedAt = &t },
	StatusDriverAccepted:      func(o *Order, t time.Time) { o.acceptedAt = &t },
	StatusDriverArriving:      func(o *Order, t time.Time) { o.arrivedAt = &t },
	StatusInProgress:          func(o *Order, t time.Time) { o.startedAt = &t },
	StatusCompleted:           func(o *Order, t time.Time) { o.completedAt = &t },
	StatusCancelledByCustomer: func(o *Order, t time.Time) { o.cancelledAt = &t },
	StatusCancelledByDriver:   func(o *Order, t time.Time) { o.cancelledAt = &t },
	StatusCancelledBySystem:   func(o *Order, t time.Time) { o.cancelledAt = &t },
	StatusExpired:             func(o *Order, t time.Time) { o.cancelledAt = &t },
}

// ChangeStatus moves the order to next if the transition table allows it,
// stamping the status-specific lifecycle timestamp. For cancellations and
// expiry the reason is recorded on the order.
//
// Returns an InvalidTransitionError carrying both statuses when the
// transition is disallowed; the order is left untouched in that case.
func (o *Order) ChangeStatus(next Status, reason string, at time.Time) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	if stamp, ok := statusTimestamp[newStatus]; ok {
		stamp(o, at)
	}
	if newStatus.IsCancelled() || newStatus == StatusExpired {
		o.cancellationReason = reason
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.number = number
	return nil
}

func (o *Order) setTrip(tripType TripType, scheduledAt *time.Time) error {
	if err := tripType.Validate(); err != nil {
		return err
	}
	if tripType == TripScheduled && scheduledAt == nil {
		return ErrScheduledTimeRequired
	}
	o.tripType = tripType
	o.scheduledAt = scheduledAt
	return nil
}

func (o *Order) setPassenger(name, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("passengerName")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("passengerPhone")
	}
	o.passengerName = name
	o.passengerPhone = phone
	return nil
}

func (o *Order) setRoute(pickupAddress string, pickup kernel.GeoPoint, dropoffAddress string, dropoff kernel.GeoPoint) error {
	if pickupAddress == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if dropoffAddress == "" {
		return errs.NewValueIsRequiredError("dropoffAddress")
	}
	if err := errors.Join(pickup.Validate(), dropoff.Validate()); err != nil {
		return err
	}
	o.pickupAddress = pickupAddress
	o.pickup = pickup
	o.dropoffAddress = dropoffAddress
	o.dropoff = dropoff
	return nil
}

func (o *Order) setVehicleClass(class VehicleClass) error {
	if err := class.Validate(); err != nil {
		return err
	}
	o.vehicleClass = class
	return nil
}

func (o *Order) setEstimates(distanceMeters int64, durationMinutes int) error {
	if distanceMeters < 0 {
		return errs.NewValueIsInvalidError("distanceMeters")
	}
	if durationMinutes < 0 {
		return errs.NewValueIsInvalidError("durationMinutes")
	}
	o.distanceMeters = distanceMeters
	o.durationMinutes = durationMinutes
	return nil
}

func (o *Order) setFare(fare Fare) error {
	if err := fare.Validate(); err != nil {
		return err
	}
	o.fare = fare
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}
