package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetFirstDispatchable(ctx context.Context, due time.Time) (*order.Order, error) {
	args := m.Called(ctx, due)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAssignedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.DriverAvailability) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.DriverAvailability) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, driverID kernel.UUID) (*driver.DriverAvailability, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.DriverAvailability), args.Error(1)
}

func (m *MockDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.DriverAvailability, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.DriverAvailability), args.Error(1)
}

type MockFleetRepository struct{ mock.Mock }

func (m *MockFleetRepository) GetVehicle(ctx context.Context, id kernel.UUID) (*fleet.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Vehicle), args.Error(1)
}

func (m *MockFleetRepository) GetActiveAssignmentForDriver(ctx context.Context, driverID kernel.UUID) (*fleet.VehicleAssignment, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.VehicleAssignment), args.Error(1)
}

func (m *MockFleetRepository) FindAvailablePairs(ctx context.Context, class order.VehicleClass) ([]services.Candidate, error) {
	args := m.Called(ctx, class)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.Candidate), args.Error(1)
}

type MockOrderHistoryRepository struct{ mock.Mock }

func (m *MockOrderHistoryRepository) Append(ctx context.Context, record *order.StatusHistory) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOrderHistoryRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.StatusHistory, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.StatusHistory), args.Error(1)
}

type MockDriverHistoryRepository struct{ mock.Mock }

func (m *MockDriverHistoryRepository) Append(ctx context.Context, record *driver.StatusHistory) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDriverHistoryRepository) GetByDriver(ctx context.Context, driverID kernel.UUID) ([]*driver.StatusHistory, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.StatusHistory), args.Error(1)
}

type MockDispatchUoW struct{ mock.Mock }

func (m *MockDispatchUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockDispatchUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockDispatchUoW) FleetRepository() ports.FleetRepository {
	args := m.Called()
	return args.Get(0).(ports.FleetRepository)
}

func (m *MockDispatchUoW) OrderHistoryRepository() ports.OrderHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderHistoryRepository)
}

func (m *MockDispatchUoW) DriverHistoryRepository() ports.DriverHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverHistoryRepository)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockDailySequence struct{ mock.Mock }

func (m *MockDailySequence) Next(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) PublishOrderCreated(ctx context.Context, event ports.OrderCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockNotificationPublisher) PublishOrderAssigned(ctx context.Context, event ports.OrderAssignedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockNotificationPublisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockNotificationPublisher) PublishDriverAvailabilityChanged(ctx context.Context, event ports.DriverAvailabilityChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockNotificationPublisher) NotifyDriverAssigned(ctx context.Context, driverID string, event ports.OrderAssignedEvent) error {
	args := m.Called(ctx, driverID, event)
	return args.Error(0)
}

func (m *MockNotificationPublisher) BroadcastToIdleDrivers(ctx context.Context, event ports.OrderCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
