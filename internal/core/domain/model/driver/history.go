package driver

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrStatusHistoryIsNotConstructed is returned when a StatusHistory instance
// was not created through NewStatusHistory.
var ErrStatusHistoryIsNotConstructed = errors.New("StatusHistory must be created via NewStatusHistory constructor")

// StatusHistory is one append-only audit record of a driver availability
// change, written in the same transaction as the change. orderID links the
// record to the trip that caused it, when there is one.
type StatusHistory struct {
	id        kernel.UUID
	driverID  kernel.UUID
	from      AvailabilityStatus
	to        AvailabilityStatus
	orderID   *kernel.UUID
	reason    string
	createdAt time.Time

	isConstructed bool
}

// NewStatusHistory creates an audit record for one availability change.
func NewStatusHistory(
	driverID kernel.UUID,
	from AvailabilityStatus,
	to AvailabilityStatus,
	orderID *kernel.UUID,
	reason string,
	createdAt time.Time,
) (*StatusHistory, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}
	if err := from.Validate(); err != nil {
		return nil, err
	}
	if err := to.Validate(); err != nil {
		return nil, err
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	return &StatusHistory{
		id:            kernel.NewUUID(),
		driverID:      driverID,
		from:          from,
		to:            to,
		orderID:       orderID,
		reason:        reason,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreStatusHistory reconstructs a persisted audit record.
func RestoreStatusHistory(
	id kernel.UUID,
	driverID kernel.UUID,
	from AvailabilityStatus,
	to AvailabilityStatus,
	orderID *kernel.UUID,
	reason string,
	createdAt time.Time,
) (*StatusHistory, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	h, err := NewStatusHistory(driverID, from, to, orderID, reason, createdAt)
	if err != nil {
		return nil, err
	}
	h.id = id
	return h, nil
}

// Validate ensures the record was created through a constructor.
func (h *StatusHistory) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrStatusHistoryIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (h *StatusHistory) ID() kernel.UUID { return h.id }

// DriverID returns the subject driver's identifier.
func (h *StatusHistory) DriverID() kernel.UUID { return h.driverID }

// From returns the status before the change.
func (h *StatusHistory) From() AvailabilityStatus { return h.from }

// To returns the status after the change.
func (h *StatusHistory) To() AvailabilityStatus { return h.to }

// OrderID returns the trip that caused the change, or nil.
func (h *StatusHistory) OrderID() *kernel.UUID { return h.orderID }

// Reason returns the optional free-form reason for the change.
func (h *StatusHistory) Reason() string { return h.reason }

// CreatedAt returns when the record was written.
func (h *StatusHistory) CreatedAt() time.Time { return h.createdAt }
