package queries

import (
	"database/sql"
	"time"

	"dispatch/internal/core/application/views"

	"github.com/google/uuid"
)

// orderColumns is the shared projection for order read queries. The driver
// and vehicle blocks come from LEFT JOINs and may be NULL for orders that
// have no assignment yet.
const orderColumns = `
	o.id, o.order_number, o.status, o.trip_type, o.scheduled_at,
	o.passenger_name, o.passenger_phone,
	o.pickup_address, o.pickup_lat, o.pickup_lng,
	o.dropoff_address, o.dropoff_lat, o.dropoff_lng,
	o.vehicle_class, o.distance_meters, o.duration_minutes,
	o.base_fare, o.distance_fare, o.airport_fee, o.total_fare,
	o.payment_method, o.special_requests,
	o.created_at, o.assigned_at, o.accepted_at, o.arrived_at,
	o.started_at, o.completed_at, o.cancelled_at, o.cancellation_reason,
	d.id, d.name, d.phone,
	v.id, v.class, v.plate, v.model`

const orderJoins = `
	FROM orders o
	LEFT JOIN drivers d ON d.id = o.driver_id
	LEFT JOIN vehicles v ON v.id = o.vehicle_id`

// scanOrderView maps one row of the orderColumns projection to an OrderView.
func scanOrderView(rows *sql.Rows) (views.OrderView, error) {
	var (
		id                 uuid.UUID
		number             string
		status             string
		tripType           string
		scheduledAt        sql.NullTime
		passengerName      string
		passengerPhone     string
		pickupAddress      string
		pickupLat          float64
		pickupLng          float64
		dropoffAddress     string
		dropoffLat         float64
		dropoffLng         float64
		vehicleClass       string
		distanceMeters     int64
		durationMinutes    int
		baseFare           int64
		distanceFare       int64
		airportFee         int64
		totalFare          int64
		paymentMethod      string
		specialRequests    string
		createdAt          time.Time
		assignedAt         sql.NullTime
		acceptedAt         sql.NullTime
		arrivedAt          sql.NullTime
		startedAt          sql.NullTime
		completedAt        sql.NullTime
		cancelledAt        sql.NullTime
		cancellationReason string
		driverID           uuid.NullUUID
		driverName         sql.NullString
		driverPhone        sql.NullString
		vehicleID          uuid.NullUUID
		vehicleClassJoined sql.NullString
		vehiclePlate       sql.NullString
		vehicleModel       sql.NullString
	)

	err := rows.Scan(
		&id, &number, &status, &tripType, &scheduledAt,
		&passengerName, &passengerPhone,
		&pickupAddress, &pickupLat, &pickupLng,
		&dropoffAddress, &dropoffLat, &dropoffLng,
		&vehicleClass, &distanceMeters, &durationMinutes,
		&baseFare, &distanceFare, &airportFee, &totalFare,
		&paymentMethod, &specialRequests,
		&createdAt, &assignedAt, &acceptedAt, &arrivedAt,
		&startedAt, &completedAt, &cancelledAt, &cancellationReason,
		&driverID, &driverName, &driverPhone,
		&vehicleID, &vehicleClassJoined, &vehiclePlate, &vehicleModel,
	)
	if err != nil {
		return views.OrderView{}, err
	}

	view := views.OrderView{
		ID:              id.String(),
		Number:          number,
		Status:          status,
		TripType:        tripType,
		ScheduledAt:     timePtr(scheduledAt),
		PassengerName:   passengerName,
		PassengerPhone:  passengerPhone,
		PickupAddress:   pickupAddress,
		Pickup:          views.GeoPointView{Lat: pickupLat, Lng: pickupLng},
		DropoffAddress:  dropoffAddress,
		Dropoff:         views.GeoPointView{Lat: dropoffLat, Lng: dropoffLng},
		VehicleClass:    vehicleClass,
		DistanceMeters:  distanceMeters,
		DurationMinutes: durationMinutes,
		Fare: views.FareView{
			Base:     views.FormatAmount(baseFare),
			Distance: views.FormatAmount(distanceFare),
			Airport:  views.FormatAmount(airportFee),
			Total:    views.FormatAmount(totalFare),
		},
		PaymentMethod:      paymentMethod,
		SpecialRequests:    specialRequests,
		CreatedAt:          createdAt.UTC(),
		AssignedAt:         timePtr(assignedAt),
		AcceptedAt:         timePtr(acceptedAt),
		ArrivedAt:          timePtr(arrivedAt),
		StartedAt:          timePtr(startedAt),
		CompletedAt:        timePtr(completedAt),
		CancelledAt:        timePtr(cancelledAt),
		CancellationReason: cancellationReason,
	}

	if driverID.Valid {
		view.Driver = &views.DriverSummaryView{
			ID:    driverID.UUID.String(),
			Name:  driverName.String,
			Phone: driverPhone.String,
		}
	}
	if vehicleID.Valid {
		view.Vehicle = &views.VehicleSummaryView{
			ID:    vehicleID.UUID.String(),
			Class: vehicleClassJoined.String,
			Plate: vehiclePlate.String,
			Model: vehicleModel.String,
		}
	}

	return view, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
