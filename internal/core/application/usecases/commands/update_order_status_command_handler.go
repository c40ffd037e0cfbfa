package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// UpdateOrderStatusCommandHandler handles order lifecycle transitions.
//
// A disallowed transition fails before any write, leaving no trace. On a
// terminal status the assigned driver, if any, is released back to
// AVAILABLE with their trip counters updated, in the same transaction as
// the order change.
type UpdateOrderStatusCommandHandler struct {
	uowFactory DispatchUoWFactory
	publisher  ports.NotificationPublisher
	log        *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.NotificationPublisher,
	log *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log,
	}
}

// Handle processes the status change command.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	orderFrom := targetOrder.Status()
	if err = targetOrder.ChangeStatus(cmd.NewStatus(), cmd.Reason(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, targetOrder); err != nil {
		return err
	}

	orderHistory, err := order.NewStatusHistory(
		targetOrder.ID(), orderFrom, targetOrder.Status(), cmd.Reason(), cmd.ActorID(), cmd.Metadata(), now)
	if err != nil {
		return err
	}
	if err = uow.OrderHistoryRepository().Append(ctx, orderHistory); err != nil {
		return err
	}

	var releasedDriver *driver.DriverAvailability
	var driverFrom driver.AvailabilityStatus
	if targetOrder.Status().IsTerminal() && targetOrder.HasDriver() {
		releasedDriver, driverFrom, err = h.releaseDriver(ctx, uow, targetOrder, cmd.Reason(), now)
		if err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishAfterUpdate(ctx, targetOrder, releasedDriver, orderFrom, driverFrom, cmd.Reason(), now)
	return nil
}

// releaseDriver frees the order's driver inside the current transaction.
// A driver that is no longer BUSY (already released by a concurrent flow)
// is left alone and reported as nil.
func (h *UpdateOrderStatusCommandHandler) releaseDriver(
	ctx context.Context,
	uow DispatchUoW,
	targetOrder *order.Order,
	reason string,
	now time.Time,
) (*driver.DriverAvailability, driver.AvailabilityStatus, error) {
	assignedDriver, err := uow.DriverRepository().Get(ctx, *targetOrder.DriverID())
	if err != nil {
		return nil, "", err
	}
	if assignedDriver.Status() != driver.StatusBusy {
		return nil, "", nil
	}

	driverFrom := assignedDriver.Status()
	completed := targetOrder.Status() == order.StatusCompleted
	if err = assignedDriver.Release(completed, now); err != nil {
		return nil, "", err
	}

	if err = uow.DriverRepository().Update(ctx, assignedDriver); err != nil {
		return nil, "", err
	}

	orderID := targetOrder.ID()
	driverHistory, err := driver.NewStatusHistory(
		assignedDriver.DriverID(), driverFrom, assignedDriver.Status(), &orderID, reason, now)
	if err != nil {
		return nil, "", err
	}
	if err = uow.DriverHistoryRepository().Append(ctx, driverHistory); err != nil {
		return nil, "", err
	}

	return assignedDriver, driverFrom, nil
}

func (h *UpdateOrderStatusCommandHandler) publishAfterUpdate(
	ctx context.Context,
	o *order.Order,
	releasedDriver *driver.DriverAvailability,
	orderFrom order.Status,
	driverFrom driver.AvailabilityStatus,
	reason string,
	now time.Time,
) {
	if err := h.publisher.PublishOrderStatusChanged(ctx, newOrderStatusChangedEvent(o, orderFrom, reason, now)); err != nil {
		h.log.Warn("publish order status changed failed", "order_id", o.ID(), "error", err)
	}
	if releasedDriver == nil {
		return
	}
	availability := newDriverAvailabilityChangedEvent(releasedDriver, driverFrom, o.ID().String(), now)
	if err := h.publisher.PublishDriverAvailabilityChanged(ctx, availability); err != nil {
		h.log.Warn("publish driver availability failed", "driver_id", availability.Driver.ID, "error", err)
	}
}
