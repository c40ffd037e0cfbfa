package views

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/fleet"
)

// DriverView is the full client-facing representation of a driver's
// availability record, embedded in driver-centric event payloads.
type DriverView struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Phone           string        `json:"phone"`
	Verified        bool          `json:"verified"`
	Status          string        `json:"status"`
	StatusChangedAt time.Time     `json:"status_changed_at"`
	LastKnownAt     *GeoPointView `json:"last_known_at,omitempty"`
	TotalTrips      int           `json:"total_trips"`
	CompletedTrips  int           `json:"completed_trips"`
	CancelledTrips  int           `json:"cancelled_trips"`
}

// NewDriverView builds the client representation of a driver availability
// aggregate.
func NewDriverView(d *driver.DriverAvailability) DriverView {
	view := DriverView{
		ID:              d.DriverID().String(),
		Name:            d.Name(),
		Phone:           d.Phone(),
		Verified:        d.IsVerified(),
		Status:          d.Status().String(),
		StatusChangedAt: d.StatusChangedAt(),
		TotalTrips:      d.TotalTrips(),
		CompletedTrips:  d.CompletedTrips(),
		CancelledTrips:  d.CancelledTrips(),
	}
	if p := d.LastKnownAt(); p != nil {
		view.LastKnownAt = &GeoPointView{Lat: p.Lat(), Lng: p.Lng()}
	}
	return view
}

// NewDriverSummaryView builds the driver block of an order view from the
// aggregate.
func NewDriverSummaryView(d *driver.DriverAvailability) *DriverSummaryView {
	return &DriverSummaryView{
		ID:    d.DriverID().String(),
		Name:  d.Name(),
		Phone: d.Phone(),
	}
}

// NewVehicleSummaryView builds the vehicle block of an order view from the
// aggregate.
func NewVehicleSummaryView(v *fleet.Vehicle) *VehicleSummaryView {
	return &VehicleSummaryView{
		ID:    v.ID().String(),
		Class: string(v.Class()),
		Plate: v.Plate(),
		Model: v.Model(),
	}
}
