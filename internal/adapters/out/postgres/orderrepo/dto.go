// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// rows.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Monetary amounts are stored in integer minor units; coordinates as decimal
// degrees. Indexed for lookup by status, passenger phone and driver.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"uniqueIndex"`
	Status      string    `gorm:"index"`
	TripType    string
	ScheduledAt *time.Time

	PassengerName  string
	PassengerPhone string `gorm:"index"`

	PickupAddress  string
	PickupLat      float64
	PickupLng      float64
	DropoffAddress string
	DropoffLat     float64
	DropoffLng     float64

	VehicleClass    string
	DistanceMeters  int64
	DurationMinutes int

	BaseFare     int64
	DistanceFare int64
	AirportFee   int64
	TotalFare    int64

	PaymentMethod   string
	SpecialRequests string

	DriverID  *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt          time.Time `gorm:"index"`
	AssignedAt         *time.Time
	AcceptedAt         *time.Time
	ArrivedAt          *time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var driverID, vehicleID *uuid.UUID
	if id := o.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}
	if id := o.VehicleID(); id != nil {
		raw := id.Bytes()
		vehicleID = &raw
	}

	return OrderDTO{
		ID:                 o.ID().Bytes(),
		OrderNumber:        o.Number(),
		Status:             o.Status().String(),
		TripType:           string(o.TripType()),
		ScheduledAt:        o.ScheduledAt(),
		PassengerName:      o.PassengerName(),
		PassengerPhone:     o.PassengerPhone(),
		PickupAddress:      o.PickupAddress(),
		PickupLat:          o.Pickup().Lat(),
		PickupLng:          o.Pickup().Lng(),
		DropoffAddress:     o.DropoffAddress(),
		DropoffLat:         o.Dropoff().Lat(),
		DropoffLng:         o.Dropoff().Lng(),
		VehicleClass:       string(o.VehicleClass()),
		DistanceMeters:     o.DistanceMeters(),
		DurationMinutes:    o.DurationMinutes(),
		BaseFare:           o.Fare().Base(),
		DistanceFare:       o.Fare().Distance(),
		AirportFee:         o.Fare().Airport(),
		TotalFare:          o.Fare().Total(),
		PaymentMethod:      string(o.PaymentMethod()),
		SpecialRequests:    o.SpecialRequests(),
		DriverID:           driverID,
		VehicleID:          vehicleID,
		CreatedAt:          o.CreatedAt(),
		AssignedAt:         o.AssignedAt(),
		AcceptedAt:         o.AcceptedAt(),
		ArrivedAt:          o.ArrivedAt(),
		StartedAt:          o.StartedAt(),
		CompletedAt:        o.CompletedAt(),
		CancelledAt:        o.CancelledAt(),
		CancellationReason: o.CancellationReason(),
	}
}

// toDomain converts a database row to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}
	dropoff, err := kernel.NewGeoPoint(dto.DropoffLat, dto.DropoffLng)
	if err != nil {
		return nil, err
	}

	fare, err := order.NewFare(dto.BaseFare, dto.DistanceFare, dto.AirportFee, dto.TotalFare)
	if err != nil {
		return nil, err
	}

	var driverID, vehicleID *kernel.UUID
	if dto.DriverID != nil {
		dID, idErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if idErr != nil {
			return nil, idErr
		}
		driverID = &dID
	}
	if dto.VehicleID != nil {
		vID, idErr := kernel.UUIDFromBytes((*dto.VehicleID)[:])
		if idErr != nil {
			return nil, idErr
		}
		vehicleID = &vID
	}

	return order.RestoreOrder(id, order.Params{
		Number:          dto.OrderNumber,
		TripType:        order.TripType(dto.TripType),
		ScheduledAt:     dto.ScheduledAt,
		PassengerName:   dto.PassengerName,
		PassengerPhone:  dto.PassengerPhone,
		PickupAddress:   dto.PickupAddress,
		Pickup:          pickup,
		DropoffAddress:  dto.DropoffAddress,
		Dropoff:         dropoff,
		VehicleClass:    order.VehicleClass(dto.VehicleClass),
		DistanceMeters:  dto.DistanceMeters,
		DurationMinutes: dto.DurationMinutes,
		Fare:            fare,
		PaymentMethod:   order.PaymentMethod(dto.PaymentMethod),
		SpecialRequests: dto.SpecialRequests,
		CreatedAt:       dto.CreatedAt,
	}, order.RestoredState{
		Status:             order.Status(dto.Status),
		DriverID:           driverID,
		VehicleID:          vehicleID,
		AssignedAt:         dto.AssignedAt,
		AcceptedAt:         dto.AcceptedAt,
		ArrivedAt:          dto.ArrivedAt,
		StartedAt:          dto.StartedAt,
		CompletedAt:        dto.CompletedAt,
		CancelledAt:        dto.CancelledAt,
		CancellationReason: dto.CancellationReason,
	})
}
