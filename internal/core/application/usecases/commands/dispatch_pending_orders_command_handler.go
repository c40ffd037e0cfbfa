package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// DispatchPendingOrdersCommandHandler retries matching for orders that are
// still waiting for a driver. One invocation handles at most one order, so
// the periodic job drains the backlog gradually without long transactions.
//
// Scheduled trips become due dispatchHorizon before their pickup time.
type DispatchPendingOrdersCommandHandler struct {
	uowFactory      DispatchUoWFactory
	dispatcher      services.Dispatcher
	publisher       ports.NotificationPublisher
	dispatchHorizon time.Duration
	log             *slog.Logger
}

// NewDispatchPendingOrdersCommandHandler creates a handler for background matching.
func NewDispatchPendingOrdersCommandHandler(
	uowFactory DispatchUoWFactory,
	dispatcher services.Dispatcher,
	publisher ports.NotificationPublisher,
	dispatchHorizon time.Duration,
	log *slog.Logger,
) DispatchPendingOrdersCommandHandler {
	return DispatchPendingOrdersCommandHandler{
		uowFactory:      uowFactory,
		dispatcher:      dispatcher,
		publisher:       publisher,
		dispatchHorizon: dispatchHorizon,
		log:             log,
	}
}

// Handle processes one background matching pass. A pass with no waiting
// orders is a successful no-op.
func (h *DispatchPendingOrdersCommandHandler) Handle(ctx context.Context, cmd DispatchPendingOrdersCommand) error {
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

	waitingOrder, err := uow.OrderRepository().GetFirstDispatchable(ctx, now.Add(h.dispatchHorizon))
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	candidates, err := uow.FleetRepository().FindAvailablePairs(ctx, waitingOrder.VehicleClass())
	if err != nil {
		return err
	}

	winner, err := h.dispatcher.Dispatch(waitingOrder, candidates)
	if err != nil {
		if errors.Is(err, services.ErrNoDriverAvailable) {
			return h.markNoDriver(ctx, uow, waitingOrder, now)
		}
		return err
	}

	orderFrom := waitingOrder.Status()
	if err = waitingOrder.AssignDriver(winner.Driver.DriverID(), winner.Vehicle.ID(), now); err != nil {
		return err
	}
	driverFrom := winner.Driver.Status()
	if err = winner.Driver.MarkBusy(now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, waitingOrder); err != nil {
		return err
	}
	orderHistory, err := order.NewStatusHistory(
		waitingOrder.ID(), orderFrom, waitingOrder.Status(), "matched by dispatch job", nil, nil, now)
	if err != nil {
		return err
	}
	if err = uow.OrderHistoryRepository().Append(ctx, orderHistory); err != nil {
		return err
	}

	if err = uow.DriverRepository().Update(ctx, winner.Driver); err != nil {
		return err
	}
	orderID := waitingOrder.ID()
	driverHistory, err := driver.NewStatusHistory(
		winner.Driver.DriverID(), driverFrom, driver.StatusBusy, &orderID, "matched by dispatch job", now)
	if err != nil {
		return err
	}
	if err = uow.DriverHistoryRepository().Append(ctx, driverHistory); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	assigned := newOrderAssignedEvent(waitingOrder, winner.Driver, winner.Vehicle, now)
	if err = h.publisher.PublishOrderAssigned(ctx, assigned); err != nil {
		h.log.Warn("publish order assigned failed", "order_id", waitingOrder.ID(), "error", err)
	}
	if err = h.publisher.NotifyDriverAssigned(ctx, assigned.DriverID, assigned); err != nil {
		h.log.Warn("notify driver failed", "order_id", waitingOrder.ID(), "driver_id", assigned.DriverID, "error", err)
	}
	availability := newDriverAvailabilityChangedEvent(winner.Driver, driverFrom, orderID.String(), now)
	if err = h.publisher.PublishDriverAvailabilityChanged(ctx, availability); err != nil {
		h.log.Warn("publish driver availability failed", "driver_id", availability.Driver.ID, "error", err)
	}
	return nil
}

// markNoDriver records the failed pass. An order already in
// NO_DRIVER_AVAILABLE stays as is; a PENDING order transitions so the
// passenger-facing status reflects the exhausted search.
func (h *DispatchPendingOrdersCommandHandler) markNoDriver(
	ctx context.Context,
	uow DispatchUoW,
	waitingOrder *order.Order,
	now time.Time,
) error {
	if waitingOrder.Status() == order.StatusNoDriverAvailable {
		return nil
	}

	orderFrom := waitingOrder.Status()
	if err := waitingOrder.MarkNoDriverAvailable(); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, waitingOrder); err != nil {
		return err
	}
	orderHistory, err := order.NewStatusHistory(
		waitingOrder.ID(), orderFrom, waitingOrder.Status(), "no driver available", nil, nil, now)
	if err != nil {
		return err
	}
	if err = uow.OrderHistoryRepository().Append(ctx, orderHistory); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishOrderStatusChanged(ctx,
		newOrderStatusChangedEvent(waitingOrder, orderFrom, "no driver available", now)); err != nil {
		h.log.Warn("publish order status changed failed", "order_id", waitingOrder.ID(), "error", err)
	}
	if err = h.publisher.BroadcastToIdleDrivers(ctx, newOrderCreatedEvent(waitingOrder, now)); err != nil {
		h.log.Warn("broadcast to idle drivers failed", "order_id", waitingOrder.ID(), "error", err)
	}
	return nil
}
