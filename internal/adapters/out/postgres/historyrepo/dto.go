// Package historyrepo provides data transfer objects and mapping functions
// for the append-only audit trails: order status changes and driver
// availability changes.
package historyrepo

import (
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderHistoryDTO represents one persisted order status change record.
// Metadata is stored as a JSON document.
type OrderHistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string
	ToStatus   string
	Reason     string
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	Metadata   []byte     `gorm:"type:jsonb"`
	CreatedAt  time.Time  `gorm:"index"`
}

// TableName specifies the database table name for order history records.
func (OrderHistoryDTO) TableName() string {
	return "order_status_history"
}

// DriverHistoryDTO represents one persisted driver availability change record.
type DriverHistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID   uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string
	ToStatus   string
	OrderID    *uuid.UUID `gorm:"type:uuid"`
	Reason     string
	CreatedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for driver history records.
func (DriverHistoryDTO) TableName() string {
	return "driver_status_history"
}

func orderHistoryFromDomain(h *order.StatusHistory) (OrderHistoryDTO, error) {
	var actorID *uuid.UUID
	if id := h.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	var metadata []byte
	if h.Metadata() != nil {
		raw, err := json.Marshal(h.Metadata())
		if err != nil {
			return OrderHistoryDTO{}, err
		}
		metadata = raw
	}

	return OrderHistoryDTO{
		ID:         h.ID().Bytes(),
		OrderID:    h.OrderID().Bytes(),
		FromStatus: h.From().String(),
		ToStatus:   h.To().String(),
		Reason:     h.Reason(),
		ActorID:    actorID,
		Metadata:   metadata,
		CreatedAt:  h.CreatedAt(),
	}, nil
}

func orderHistoryToDomain(dto OrderHistoryDTO) (*order.StatusHistory, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		aID, idErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if idErr != nil {
			return nil, idErr
		}
		actorID = &aID
	}

	var metadata map[string]string
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return order.RestoreStatusHistory(
		id,
		orderID,
		order.Status(dto.FromStatus),
		order.Status(dto.ToStatus),
		dto.Reason,
		actorID,
		metadata,
		dto.CreatedAt,
	)
}

func driverHistoryFromDomain(h *driver.StatusHistory) DriverHistoryDTO {
	var orderID *uuid.UUID
	if id := h.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return DriverHistoryDTO{
		ID:         h.ID().Bytes(),
		DriverID:   h.DriverID().Bytes(),
		FromStatus: h.From().String(),
		ToStatus:   h.To().String(),
		OrderID:    orderID,
		Reason:     h.Reason(),
		CreatedAt:  h.CreatedAt(),
	}
}

func driverHistoryToDomain(dto DriverHistoryDTO) (*driver.StatusHistory, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, idErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if idErr != nil {
			return nil, idErr
		}
		orderID = &oID
	}

	return driver.RestoreStatusHistory(
		id,
		driverID,
		driver.AvailabilityStatus(dto.FromStatus),
		driver.AvailabilityStatus(dto.ToStatus),
		orderID,
		dto.Reason,
		dto.CreatedAt,
	)
}
