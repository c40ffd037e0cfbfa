package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AssignDriverCommandHandler handles manual driver assignment.
//
// The order must still be waiting (PENDING or NO_DRIVER_AVAILABLE), the
// driver AVAILABLE and the vehicle active and of the order's requested
// class. The order update, the driver's BUSY transition and both history
// records commit in one transaction.
type AssignDriverCommandHandler struct {
	uowFactory DispatchUoWFactory
	publisher  ports.NotificationPublisher
	log        *slog.Logger
}

// NewAssignDriverCommandHandler creates a handler for manual assignment.
func NewAssignDriverCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.NotificationPublisher,
	log *slog.Logger,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log,
	}
}

// Handle processes the assignment command.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	targetOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	targetDriver, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	vehicle, err := uow.FleetRepository().GetVehicle(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}
	if !vehicle.IsActive() {
		return errs.NewObjectUnavailableErrorWithCause("vehicleId", cmd.VehicleID(), fleet.ErrVehicleInactive)
	}
	if !vehicle.CanServe(targetOrder.VehicleClass()) {
		return errs.NewObjectUnavailableErrorWithCause("vehicleId", cmd.VehicleID(),
			fmt.Errorf("vehicle class %s does not match requested class %s",
				vehicle.Class(), targetOrder.VehicleClass()))
	}

	orderFrom := targetOrder.Status()
	if err = targetOrder.AssignDriver(cmd.DriverID(), cmd.VehicleID(), now); err != nil {
		return err
	}

	driverFrom := targetDriver.Status()
	if err = targetDriver.MarkBusy(now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, targetOrder); err != nil {
		return err
	}

	orderHistory, err := order.NewStatusHistory(
		targetOrder.ID(), orderFrom, targetOrder.Status(), cmd.Reason(), cmd.ActorID(), nil, now)
	if err != nil {
		return err
	}
	if err = uow.OrderHistoryRepository().Append(ctx, orderHistory); err != nil {
		return err
	}

	if err = uow.DriverRepository().Update(ctx, targetDriver); err != nil {
		return err
	}

	orderID := targetOrder.ID()
	driverHistory, err := driver.NewStatusHistory(
		cmd.DriverID(), driverFrom, driver.StatusBusy, &orderID, cmd.Reason(), now)
	if err != nil {
		return err
	}
	if err = uow.DriverHistoryRepository().Append(ctx, driverHistory); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishAfterAssign(ctx, targetOrder, targetDriver, vehicle, orderFrom, driverFrom, cmd.Reason(), now)
	return nil
}

func (h *AssignDriverCommandHandler) publishAfterAssign(
	ctx context.Context,
	o *order.Order,
	d *driver.DriverAvailability,
	v *fleet.Vehicle,
	orderFrom order.Status,
	driverFrom driver.AvailabilityStatus,
	reason string,
	now time.Time,
) {
	assigned := newOrderAssignedEvent(o, d, v, now)
	if err := h.publisher.PublishOrderAssigned(ctx, assigned); err != nil {
		h.log.Warn("publish order assigned failed", "order_id", o.ID(), "error", err)
	}
	if err := h.publisher.PublishOrderStatusChanged(ctx, newOrderStatusChangedEvent(o, orderFrom, reason, now)); err != nil {
		h.log.Warn("publish order status changed failed", "order_id", o.ID(), "error", err)
	}
	if err := h.publisher.NotifyDriverAssigned(ctx, assigned.DriverID, assigned); err != nil {
		h.log.Warn("notify driver failed", "order_id", o.ID(), "driver_id", assigned.DriverID, "error", err)
	}
	availability := newDriverAvailabilityChangedEvent(d, driverFrom, o.ID().String(), now)
	if err := h.publisher.PublishDriverAvailabilityChanged(ctx, availability); err != nil {
		h.log.Warn("publish driver availability failed", "driver_id", availability.Driver.ID, "error", err)
	}
}
