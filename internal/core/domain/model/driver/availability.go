package driver

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// AvailabilityStatus is the dispatch-relevant state of a driver.
type AvailabilityStatus string

const (
	// StatusAvailable means the driver is online and may receive trips.
	StatusAvailable AvailabilityStatus = "AVAILABLE"
	// StatusBusy means the driver is attached to an active trip.
	StatusBusy AvailabilityStatus = "BUSY"
	// StatusOffline means the driver is not accepting trips.
	StatusOffline AvailabilityStatus = "OFFLINE"
)

// Validate checks the status against the fixed enumeration.
func (s AvailabilityStatus) Validate() error {
	switch s {
	case StatusAvailable, StatusBusy, StatusOffline:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("availabilityStatus",
			fmt.Errorf("%q is not a valid availability status", string(s)))
	}
}

// String returns the persisted name of the status.
func (s AvailabilityStatus) String() string {
	return string(s)
}

var (
	// ErrDriverUnavailable is the sentinel unwrapped by UnavailableError.
	ErrDriverUnavailable = errors.New("driver is not available")

	// ErrDriverNotBusy is returned when releasing a driver that holds no trip.
	ErrDriverNotBusy = errors.New("driver is not busy")

	// ErrDriverAvailabilityIsNotConstructed is returned when a
	// DriverAvailability instance was not created through a constructor.
	ErrDriverAvailabilityIsNotConstructed = errors.New(
		"DriverAvailability must be created via NewDriverAvailability or RestoreDriverAvailability constructor")
)

// UnavailableError reports an attempt to occupy a driver that is not
// AVAILABLE. It carries the driver's current status so the losing side of an
// assignment race can be told apart from an offline driver.
type UnavailableError struct {
	DriverID kernel.UUID
	Status   AvailabilityStatus
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: driver %s is %s", ErrDriverUnavailable, e.DriverID, e.Status)
}

func (e *UnavailableError) Unwrap() error {
	return ErrDriverUnavailable
}

// DriverAvailability is the aggregate the matcher reads and the assignment
// flow mutates. It owns the AVAILABLE/BUSY/OFFLINE state machine and the
// per-driver trip counters.
//
// Invariants:
//   - a driver becomes BUSY only from AVAILABLE
//   - a driver is released only from BUSY, back to AVAILABLE
//   - counters only grow, and grow only on release
type DriverAvailability struct {
	driverID        kernel.UUID
	name            string
	phone           string
	verified        bool
	status          AvailabilityStatus
	statusChangedAt time.Time
	lastKnownAt     *kernel.GeoPoint
	totalTrips      int
	completedTrips  int
	cancelledTrips  int

	isConstructed bool
}

// NewDriverAvailability creates the availability record of a newly
// registered driver. Drivers start OFFLINE and unverified.
func NewDriverAvailability(driverID kernel.UUID, name, phone string, at time.Time) (*DriverAvailability, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("driverName")
	}
	if phone == "" {
		return nil, errs.NewValueIsRequiredError("driverPhone")
	}

	return &DriverAvailability{
		driverID:        driverID,
		name:            name,
		phone:           phone,
		status:          StatusOffline,
		statusChangedAt: at,
		isConstructed:   true,
	}, nil
}

// RestoreDriverAvailability reconstructs the aggregate from persistence.
func RestoreDriverAvailability(
	driverID kernel.UUID,
	name, phone string,
	verified bool,
	status AvailabilityStatus,
	statusChangedAt time.Time,
	lastKnownAt *kernel.GeoPoint,
	totalTrips, completedTrips, cancelledTrips int,
) (*DriverAvailability, error) {
	d, err := NewDriverAvailability(driverID, name, phone, statusChangedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if lastKnownAt != nil {
		if err = lastKnownAt.Validate(); err != nil {
			return nil, err
		}
	}
	if totalTrips < 0 || completedTrips < 0 || cancelledTrips < 0 {
		return nil, errs.NewValueIsInvalidError("tripCounters")
	}

	d.verified = verified
	d.status = status
	d.lastKnownAt = lastKnownAt
	d.totalTrips = totalTrips
	d.completedTrips = completedTrips
	d.cancelledTrips = cancelledTrips
	return d, nil
}

// Validate ensures the aggregate was created through a constructor.
func (d *DriverAvailability) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverAvailabilityIsNotConstructed
	}
	return nil
}

// DriverID returns the driver's unique identifier.
func (d *DriverAvailability) DriverID() kernel.UUID { return d.driverID }

// Name returns the driver's display name.
func (d *DriverAvailability) Name() string { return d.name }

// Phone returns the driver's contact phone.
func (d *DriverAvailability) Phone() string { return d.phone }

// IsVerified reports whether the driver passed verification. Only verified
// drivers are eligible for matching.
func (d *DriverAvailability) IsVerified() bool { return d.verified }

// Status returns the current availability status.
func (d *DriverAvailability) Status() AvailabilityStatus { return d.status }

// StatusChangedAt returns when the status last changed.
func (d *DriverAvailability) StatusChangedAt() time.Time { return d.statusChangedAt }

// LastKnownAt returns the driver's last reported coordinates, or nil.
func (d *DriverAvailability) LastKnownAt() *kernel.GeoPoint { return d.lastKnownAt }

// TotalTrips returns the number of trips the driver has finished, in any way.
func (d *DriverAvailability) TotalTrips() int { return d.totalTrips }

// CompletedTrips returns the number of trips completed successfully.
func (d *DriverAvailability) CompletedTrips() int { return d.completedTrips }

// CancelledTrips returns the number of trips that ended in cancellation.
func (d *DriverAvailability) CancelledTrips() int { return d.cancelledTrips }

// IsAvailable reports whether the driver may receive a trip right now.
func (d *DriverAvailability) IsAvailable() bool {
	return d.status == StatusAvailable
}

// MarkVerified flags the driver as having passed verification.
func (d *DriverAvailability) MarkVerified() {
	d.verified = true
}

// MarkBusy occupies the driver for a trip. Only an AVAILABLE driver can be
// occupied; any other status yields an UnavailableError. This check runs
// again inside the assignment transaction, where it is the last line of
// defense against two orders taking the same driver.
func (d *DriverAvailability) MarkBusy(at time.Time) error {
	if d.status != StatusAvailable {
		return &UnavailableError{DriverID: d.driverID, Status: d.status}
	}
	d.status = StatusBusy
	d.statusChangedAt = at
	return nil
}

// Release frees a BUSY driver after their trip reached a terminal status,
// incrementing the trip counters. completed selects which outcome counter
// grows.
func (d *DriverAvailability) Release(completed bool, at time.Time) error {
	if d.status != StatusBusy {
		return ErrDriverNotBusy
	}
	d.status = StatusAvailable
	d.statusChangedAt = at
	d.totalTrips++
	if completed {
		d.completedTrips++
	} else {
		d.cancelledTrips++
	}
	return nil
}

// GoOnline moves an OFFLINE driver to AVAILABLE. A BUSY driver cannot go
// online; AVAILABLE is a no-op.
func (d *DriverAvailability) GoOnline(at time.Time) error {
	if d.status == StatusBusy {
		return &UnavailableError{DriverID: d.driverID, Status: d.status}
	}
	if d.status == StatusAvailable {
		return nil
	}
	d.status = StatusAvailable
	d.statusChangedAt = at
	return nil
}

// GoOffline takes the driver out of matching. A BUSY driver must finish or
// cancel the trip first.
func (d *DriverAvailability) GoOffline(at time.Time) error {
	if d.status == StatusBusy {
		return &UnavailableError{DriverID: d.driverID, Status: d.status}
	}
	if d.status == StatusOffline {
		return nil
	}
	d.status = StatusOffline
	d.statusChangedAt = at
	return nil
}

// ReportLocation records the driver's latest coordinates.
func (d *DriverAvailability) ReportLocation(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.lastKnownAt = &p
	return nil
}
