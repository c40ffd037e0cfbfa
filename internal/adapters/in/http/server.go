// Package http exposes the dispatch use cases over a JSON REST API.
package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	assignDriverHandler      commands.AssignDriverCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		assignDriverHandler:      assignDriverHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersHandler:        listOrdersHandler,
	}
}

// RegisterRoutes attaches the dispatch API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/assign", s.AssignDriver)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, commands.CreateOrderParams{
		TripType:        order.TripType(req.TripType),
		ScheduledAt:     req.ScheduledAt,
		PassengerName:   req.PassengerName,
		PassengerPhone:  req.PassengerPhone,
		PickupAddress:   req.PickupAddress,
		PickupLat:       req.PickupLat,
		PickupLng:       req.PickupLng,
		DropoffAddress:  req.DropoffAddress,
		DropoffLat:      req.DropoffLat,
		DropoffLng:      req.DropoffLng,
		VehicleClass:    order.VehicleClass(req.VehicleClass),
		DistanceMeters:  req.DistanceMeters,
		DurationMinutes: req.DurationMinutes,
		BaseFare:        req.BaseFare,
		DistanceFare:    req.DistanceFare,
		AirportFare:     req.AirportFee,
		TotalFare:       req.TotalFare,
		PaymentMethod:   order.PaymentMethod(req.PaymentMethod),
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return jsonError(ctx, statusFromError(err), err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return jsonError(ctx, statusFromError(err), err.Error())
	}

	return s.respondWithOrder(ctx, orderID, http.StatusCreated)
}

// AssignDriver handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignDriver(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var req AssignDriverRequest
	if err = ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid driver id")
	}
	vehicleID, err := kernel.UUIDFromString(req.VehicleID)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid vehicle id")
	}
	actorID, err := parseActorID(req.ActorID)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid actor id")
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, driverID, vehicleID, req.Reason, actorID)
	if err != nil {
		return jsonError(ctx, statusFromError(err), err.Error())
	}

	if err = s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return jsonError(ctx, statusFromError(err), err.Error())
	}

	return s.respondWithOrder(ctx, orderID, http.StatusOK)
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var req UpdateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	actorID, err := parseActorID(req.ActorID)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid actor id")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, order.Status(req.Status), req.Reason, actorID, req.Metadata)
	if err != nil {
		return jsonError(ctx, statusFromError(err), err.Error())
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return jsonError(ctx, statusFromError(err), err.Error())
	}

	return s.respondWithOrder(ctx, orderID, http.StatusOK)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid order id")
	}

	return s.respondWithOrder(ctx, orderID, http.StatusOK)
}

// ListOrders handles GET /api/v1/orders with optional status, driver_id,
// passenger_phone, created_from, created_to, page and limit query parameters.
func (s *Server) ListOrders(ctx echo.Context) error {
	filter, err := bindListOrdersFilter(ctx)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return jsonError(ctx, statusFromError(err), err.Error())
	}

	resp, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, statusFromError(err), "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, resp)
}

// respondWithOrder renders the current state of one order with the given
// success code.
func (s *Server) respondWithOrder(ctx echo.Context, orderID kernel.UUID, code int) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return jsonError(ctx, statusFromError(err), err.Error())
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, statusFromError(err), err.Error())
	}

	return ctx.JSON(code, view)
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func parseActorID(raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
