package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
//
// The flow: validate (the command constructor already gated the fare), issue
// the daily order number, try matching for immediate trips, then commit one
// transaction holding the order row, its initial history record and, when a
// driver was matched, the driver's BUSY transition with its history record.
// Events go out only after the commit; their failures are logged and never
// surfaced.
type CreateOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
	fleetRepo  ports.FleetRepository
	sequence   ports.DailySequence
	dispatcher services.Dispatcher
	publisher  ports.NotificationPublisher
	log        *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	fleetRepo ports.FleetRepository,
	sequence ports.DailySequence,
	dispatcher services.Dispatcher,
	publisher ports.NotificationPublisher,
	log *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		fleetRepo:  fleetRepo,
		sequence:   sequence,
		dispatcher: dispatcher,
		publisher:  publisher,
		log:        log,
	}
}

// Handle processes the order creation command.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if cmd.TripType() == order.TripScheduled && !cmd.ScheduledAt().After(now) {
		return errs.NewValueIsInvalidErrorWithCause("scheduledAt",
			fmt.Errorf("scheduled time %s is not in the future", cmd.ScheduledAt().Format(time.RFC3339)))
	}

	seq, err := h.sequence.Next(ctx, now)
	if err != nil {
		return err
	}
	number, err := order.FormatNumber(now, seq)
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), order.Params{
		Number:          number,
		TripType:        cmd.TripType(),
		ScheduledAt:     cmd.ScheduledAt(),
		PassengerName:   cmd.PassengerName(),
		PassengerPhone:  cmd.PassengerPhone(),
		PickupAddress:   cmd.PickupAddress(),
		Pickup:          cmd.Pickup(),
		DropoffAddress:  cmd.DropoffAddress(),
		Dropoff:         cmd.Dropoff(),
		VehicleClass:    cmd.VehicleClass(),
		DistanceMeters:  cmd.DistanceMeters(),
		DurationMinutes: cmd.DurationMinutes(),
		Fare:            cmd.Fare(),
		PaymentMethod:   cmd.PaymentMethod(),
		SpecialRequests: cmd.SpecialRequests(),
		CreatedAt:       now,
	})
	if err != nil {
		return err
	}

	// Matching reads outside the transaction. The candidate can go stale
	// before commit; the driver repository's conditional BUSY update is the
	// authoritative check.
	var winner *services.Candidate
	if cmd.TripType() == order.TripImmediate {
		candidates, findErr := h.fleetRepo.FindAvailablePairs(ctx, cmd.VehicleClass())
		if findErr != nil {
			return findErr
		}
		candidate, dispatchErr := h.dispatcher.Dispatch(newOrder, candidates)
		switch {
		case dispatchErr == nil:
			winner = &candidate
		case errors.Is(dispatchErr, services.ErrNoDriverAvailable):
			// Stays PENDING; idle drivers get a broadcast after commit.
		default:
			return dispatchErr
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var driverFrom driver.AvailabilityStatus
	if winner != nil {
		if err = newOrder.AssignDriver(winner.Driver.DriverID(), winner.Vehicle.ID(), now); err != nil {
			return err
		}
		driverFrom = winner.Driver.Status()
		if err = winner.Driver.MarkBusy(now); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	orderHistory, err := order.NewStatusHistory(newOrder.ID(), "", newOrder.Status(), "order created", nil, nil, now)
	if err != nil {
		return err
	}
	if err = uow.OrderHistoryRepository().Append(ctx, orderHistory); err != nil {
		return err
	}

	if winner != nil {
		if err = uow.DriverRepository().Update(ctx, winner.Driver); err != nil {
			return err
		}
		orderID := newOrder.ID()
		driverHistory, historyErr := driver.NewStatusHistory(
			winner.Driver.DriverID(), driverFrom, driver.StatusBusy, &orderID, "order assigned", now)
		if historyErr != nil {
			return historyErr
		}
		if err = uow.DriverHistoryRepository().Append(ctx, driverHistory); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishAfterCreate(ctx, newOrder, winner, driverFrom, now)
	return nil
}

func (h *CreateOrderCommandHandler) publishAfterCreate(
	ctx context.Context,
	o *order.Order,
	winner *services.Candidate,
	driverFrom driver.AvailabilityStatus,
	now time.Time,
) {
	if err := h.publisher.PublishOrderCreated(ctx, newOrderCreatedEvent(o, now)); err != nil {
		h.log.Warn("publish order created failed", "order_id", o.ID(), "error", err)
	}

	if winner == nil {
		if o.TripType() == order.TripImmediate {
			if err := h.publisher.BroadcastToIdleDrivers(ctx, newOrderCreatedEvent(o, now)); err != nil {
				h.log.Warn("broadcast to idle drivers failed", "order_id", o.ID(), "error", err)
			}
		}
		return
	}

	assigned := newOrderAssignedEvent(o, winner.Driver, winner.Vehicle, now)
	if err := h.publisher.PublishOrderAssigned(ctx, assigned); err != nil {
		h.log.Warn("publish order assigned failed", "order_id", o.ID(), "error", err)
	}
	if err := h.publisher.NotifyDriverAssigned(ctx, assigned.DriverID, assigned); err != nil {
		h.log.Warn("notify driver failed", "order_id", o.ID(), "driver_id", assigned.DriverID, "error", err)
	}
	availability := newDriverAvailabilityChangedEvent(winner.Driver, driverFrom, o.ID().String(), now)
	if err := h.publisher.PublishDriverAvailabilityChanged(ctx, availability); err != nil {
		h.log.Warn("publish driver availability failed", "driver_id", availability.Driver.ID, "error", err)
	}
}
