package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrStatusHistoryIsNotConstructed is returned when a StatusHistory instance
// was not created through NewStatusHistory.
var ErrStatusHistoryIsNotConstructed = errors.New("StatusHistory must be created via NewStatusHistory constructor")

// StatusHistory is one append-only audit record of an order status change.
// Exactly one record is written per status change, in the same transaction
// as the change itself. Records are never mutated or deleted.
//
// From is empty for the record of the initial transition out of the implicit
// "no status" state at order creation.
type StatusHistory struct {
	id        kernel.UUID
	orderID   kernel.UUID
	from      Status
	to        Status
	reason    string
	actorID   *kernel.UUID
	metadata  map[string]string
	createdAt time.Time

	isConstructed bool
}

// NewStatusHistory creates an audit record for one status change.
// from may be the empty Status for the creation record; to must be a member
// of the status enumeration. actorID and metadata are optional.
func NewStatusHistory(
	orderID kernel.UUID,
	from Status,
	to Status,
	reason string,
	actorID *kernel.UUID,
	metadata map[string]string,
	createdAt time.Time,
) (*StatusHistory, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if from != "" {
		if err := from.Validate(); err != nil {
			return nil, err
		}
	}
	if err := to.Validate(); err != nil {
		return nil, err
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return nil, err
		}
	}

	return &StatusHistory{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		from:          from,
		to:            to,
		reason:        reason,
		actorID:       actorID,
		metadata:      metadata,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreStatusHistory reconstructs a persisted audit record.
func RestoreStatusHistory(
	id kernel.UUID,
	orderID kernel.UUID,
	from Status,
	to Status,
	reason string,
	actorID *kernel.UUID,
	metadata map[string]string,
	createdAt time.Time,
) (*StatusHistory, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	h, err := NewStatusHistory(orderID, from, to, reason, actorID, metadata, createdAt)
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
func (h *StatusHistory) ID() kernel.UUID {
	return h.id
}

// OrderID returns the subject order's identifier.
func (h *StatusHistory) OrderID() kernel.UUID {
	return h.orderID
}

// From returns the status before the change; empty for the creation record.
func (h *StatusHistory) From() Status {
	return h.from
}

// To returns the status after the change.
func (h *StatusHistory) To() Status {
	return h.to
}

// Reason returns the optional free-form reason for the change.
func (h *StatusHistory) Reason() string {
	return h.reason
}

// ActorID returns the optional reference to who requested the change.
func (h *StatusHistory) ActorID() *kernel.UUID {
	return h.actorID
}

// Metadata returns the optional free-form metadata of the change.
func (h *StatusHistory) Metadata() map[string]string {
	return h.metadata
}

// CreatedAt returns when the record was written.
func (h *StatusHistory) CreatedAt() time.Time {
	return h.createdAt
}
