package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// expiryReason is recorded on every expired order and its history rows.
const expiryReason = "driver did not respond within the acceptance window"

// ExpireAssignmentsCommandHandler expires assignments the driver never
// answered. All overdue orders found in one pass expire in one transaction;
// each order's driver goes back to AVAILABLE with a cancelled trip counted.
type ExpireAssignmentsCommandHandler struct {
	uowFactory       DispatchUoWFactory
	publisher        ports.NotificationPublisher
	acceptanceWindow time.Duration
	log              *slog.Logger
}

// NewExpireAssignmentsCommandHandler creates a handler for assignment expiry.
func NewExpireAssignmentsCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.NotificationPublisher,
	acceptanceWindow time.Duration,
	log *slog.Logger,
) ExpireAssignmentsCommandHandler {
	return ExpireAssignmentsCommandHandler{
		uowFactory:       uowFactory,
		publisher:        publisher,
		acceptanceWindow: acceptanceWindow,
		log:              log,
	}
}

type expiredAssignment struct {
	order      *order.Order
	orderFrom  order.Status
	driver     *driver.DriverAvailability
	driverFrom driver.AvailabilityStatus
}

// Handle processes one expiry pass. A pass with nothing overdue is a
// successful no-op.
func (h *ExpireAssignmentsCommandHandler) Handle(ctx context.Context, cmd ExpireAssignmentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	cutoff := now.Add(-h.acceptanceWindow)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	overdue, err := uow.OrderRepository().GetAssignedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(overdue) == 0 {
		return nil
	}

	expired := make([]expiredAssignment, 0, len(overdue))
	for _, overdueOrder := range overdue {
		entry, expireErr := h.expireOne(ctx, uow, overdueOrder, now)
		if expireErr != nil {
			return expireErr
		}
		expired = append(expired, entry)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, entry := range expired {
		h.publishExpired(ctx, entry, now)
	}
	return nil
}

func (h *ExpireAssignmentsCommandHandler) expireOne(
	ctx context.Context,
	uow DispatchUoW,
	overdueOrder *order.Order,
	now time.Time,
) (expiredAssignment, error) {
	entry := expiredAssignment{order: overdueOrder, orderFrom: overdueOrder.Status()}

	if err := overdueOrder.ChangeStatus(order.StatusExpired, expiryReason, now); err != nil {
		return expiredAssignment{}, err
	}
	if err := uow.OrderRepository().Update(ctx, overdueOrder); err != nil {
		return expiredAssignment{}, err
	}

	orderHistory, err := order.NewStatusHistory(
		overdueOrder.ID(), entry.orderFrom, overdueOrder.Status(), expiryReason, nil, nil, now)
	if err != nil {
		return expiredAssignment{}, err
	}
	if err = uow.OrderHistoryRepository().Append(ctx, orderHistory); err != nil {
		return expiredAssignment{}, err
	}

	if overdueOrder.DriverID() == nil {
		return entry, nil
	}

	assignedDriver, err := uow.DriverRepository().Get(ctx, *overdueOrder.DriverID())
	if err != nil {
		return expiredAssignment{}, err
	}
	if assignedDriver.Status() != driver.StatusBusy {
		return entry, nil
	}

	entry.driver = assignedDriver
	entry.driverFrom = assignedDriver.Status()
	if err = assignedDriver.Release(false, now); err != nil {
		return expiredAssignment{}, err
	}
	if err = uow.DriverRepository().Update(ctx, assignedDriver); err != nil {
		return expiredAssignment{}, err
	}

	orderID := overdueOrder.ID()
	driverHistory, err := driver.NewStatusHistory(
		assignedDriver.DriverID(), entry.driverFrom, assignedDriver.Status(), &orderID, expiryReason, now)
	if err != nil {
		return expiredAssignment{}, err
	}
	if err = uow.DriverHistoryRepository().Append(ctx, driverHistory); err != nil {
		return expiredAssignment{}, err
	}

	return entry, nil
}

func (h *ExpireAssignmentsCommandHandler) publishExpired(ctx context.Context, entry expiredAssignment, now time.Time) {
	if err := h.publisher.PublishOrderStatusChanged(ctx,
		newOrderStatusChangedEvent(entry.order, entry.orderFrom, expiryReason, now)); err != nil {
		h.log.Warn("publish order status changed failed", "order_id", entry.order.ID(), "error", err)
	}
	if entry.driver == nil {
		return
	}
	availability := newDriverAvailabilityChangedEvent(entry.driver, entry.driverFrom, entry.order.ID().String(), now)
	if err := h.publisher.PublishDriverAvailabilityChanged(ctx, availability); err != nil {
		h.log.Warn("publish driver availability failed", "driver_id", availability.Driver.ID, "error", err)
	}
}
