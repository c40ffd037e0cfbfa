package http

import "time"

// CreateOrderRequest is the request body of POST /api/v1/orders.
type CreateOrderRequest struct {
	TripType        string     `json:"trip_type"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	PassengerName   string     `json:"passenger_name"`
	PassengerPhone  string     `json:"passenger_phone"`
	PickupAddress   string     `json:"pickup_address"`
	PickupLat       float64    `json:"pickup_lat"`
	PickupLng       float64    `json:"pickup_lng"`
	DropoffAddress  string     `json:"dropoff_address"`
	DropoffLat      float64    `json:"dropoff_lat"`
	DropoffLng      float64    `json:"dropoff_lng"`
	VehicleClass    string     `json:"vehicle_class"`
	DistanceMeters  int64      `json:"distance_meters"`
	DurationMinutes int        `json:"duration_minutes"`
	BaseFare        int64      `json:"base_fare"`
	DistanceFare    int64      `json:"distance_fare"`
	AirportFee      int64      `json:"airport_fee"`
	TotalFare       int64      `json:"total_fare"`
	PaymentMethod   string     `json:"payment_method"`
	SpecialRequests string     `json:"special_requests,omitempty"`
}

// AssignDriverRequest is the request body of POST /api/v1/orders/:id/assign.
type AssignDriverRequest struct {
	DriverID  string `json:"driver_id"`
	VehicleID string `json:"vehicle_id"`
	Reason    string `json:"reason,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
}

// UpdateOrderStatusRequest is the request body of
// POST /api/v1/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status   string            `json:"status"`
	Reason   string            `json:"reason,omitempty"`
	ActorID  string            `json:"actor_id,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Error is the uniform error response body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
