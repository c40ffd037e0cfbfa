// Package views contains the read-side representations returned to clients.
// Views are plain serializable structs; monetary amounts stored in integer
// minor units are rendered as exact decimal strings.
package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// FormatAmount renders an amount in minor currency units as a decimal string
// with two fraction digits. The conversion is exact: no floating point is
// involved, so ParseAmount(FormatAmount(v)) == v for every v.
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// ParseAmount converts a decimal amount string back to minor currency units.
// Accepts at most two fraction digits.
func ParseAmount(s string) (int64, error) {
	whole, frac, found := strings.Cut(s, ".")
	negative := strings.HasPrefix(whole, "-")
	wholePart, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	var fracPart int64
	if found {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, errs.NewValueIsInvalidErrorWithCause("amount",
				fmt.Errorf("%q has an unsupported fraction", s))
		}
		fracPart, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || fracPart < 0 {
			return 0, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q has an invalid fraction", s))
		}
		if len(frac) == 1 {
			fracPart *= 10
		}
	}
	minor := wholePart * 100
	if negative {
		minor -= fracPart
	} else {
		minor += fracPart
	}
	return minor, nil
}

// FareView is the client-facing fare breakdown in decimal display units.
type FareView struct {
	Base     string `json:"base_fare"`
	Distance string `json:"distance_fare"`
	Airport  string `json:"airport_fee"`
	Total    string `json:"total_fare"`
}

// NewFareView converts a fare breakdown to its display representation.
func NewFareView(f order.Fare) FareView {
	return FareView{
		Base:     FormatAmount(f.Base()),
		Distance: FormatAmount(f.Distance()),
		Airport:  FormatAmount(f.Airport()),
		Total:    FormatAmount(f.Total()),
	}
}

// DriverSummaryView is the driver block embedded in an order view.
type DriverSummaryView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// VehicleSummaryView is the vehicle block embedded in an order view.
type VehicleSummaryView struct {
	ID    string `json:"id"`
	Class string `json:"class"`
	Plate string `json:"plate"`
	Model string `json:"model"`
}

// GeoPointView is a coordinate pair in decimal degrees.
type GeoPointView struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OrderView is the full client-facing representation of an order.
type OrderView struct {
	ID                 string              `json:"id"`
	Number             string              `json:"order_number"`
	Status             string              `json:"status"`
	TripType           string              `json:"trip_type"`
	ScheduledAt        *time.Time          `json:"scheduled_at,omitempty"`
	PassengerName      string              `json:"passenger_name"`
	PassengerPhone     string              `json:"passenger_phone"`
	PickupAddress      string              `json:"pickup_address"`
	Pickup             GeoPointView        `json:"pickup"`
	DropoffAddress     string              `json:"dropoff_address"`
	Dropoff            GeoPointView        `json:"dropoff"`
	VehicleClass       string              `json:"vehicle_class"`
	DistanceMeters     int64               `json:"distance_meters"`
	DurationMinutes    int                 `json:"duration_minutes"`
	Fare               FareView            `json:"fare"`
	PaymentMethod      string              `json:"payment_method"`
	SpecialRequests    string              `json:"special_requests,omitempty"`
	Driver             *DriverSummaryView  `json:"driver,omitempty"`
	Vehicle            *VehicleSummaryView `json:"vehicle,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	AssignedAt         *time.Time          `json:"assigned_at,omitempty"`
	AcceptedAt         *time.Time          `json:"accepted_at,omitempty"`
	ArrivedAt          *time.Time          `json:"arrived_at,omitempty"`
	StartedAt          *time.Time          `json:"started_at,omitempty"`
	CompletedAt        *time.Time          `json:"completed_at,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	CancellationReason string              `json:"cancellation_reason,omitempty"`
}

// NewOrderView builds the client representation of an order aggregate.
// driver and vehicle are optional joined summaries; they stay nil for
// unassigned orders.
func NewOrderView(o *order.Order, driver *DriverSummaryView, vehicle *VehicleSummaryView) OrderView {
	return OrderView{
		ID:                 o.ID().String(),
		Number:             o.Number(),
		Status:             o.Status().String(),
		TripType:           string(o.TripType()),
		ScheduledAt:        o.ScheduledAt(),
		PassengerName:      o.PassengerName(),
		PassengerPhone:     o.PassengerPhone(),
		PickupAddress:      o.PickupAddress(),
		Pickup:             GeoPointView{Lat: o.Pickup().Lat(), Lng: o.Pickup().Lng()},
		DropoffAddress:     o.DropoffAddress(),
		Dropoff:            GeoPointView{Lat: o.Dropoff().Lat(), Lng: o.Dropoff().Lng()},
		VehicleClass:       string(o.VehicleClass()),
		DistanceMeters:     o.DistanceMeters(),
		DurationMinutes:    o.DurationMinutes(),
		Fare:               NewFareView(o.Fare()),
		PaymentMethod:      string(o.PaymentMethod()),
		SpecialRequests:    o.SpecialRequests(),
		Driver:             driver,
		Vehicle:            vehicle,
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
