package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/historyrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that repositories obtained from one
// unit of work share a transaction, and that the daily sequence counter is
// atomic.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&driverrepo.DriverDTO{},
		&historyrepo.OrderHistoryDTO{},
		&historyrepo.DriverHistoryDTO{},
		&postgres.DaySequenceDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, drivers, order_status_history, driver_status_history, order_day_sequences").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	pickup, err := kernel.NewGeoPoint(10.7769, 106.7009)
	suite.Require().NoError(err)
	dropoff, err := kernel.NewGeoPoint(10.8188, 106.6520)
	suite.Require().NoError(err)
	fare, err := order.NewFare(12000, 45500, 0, 57500)
	suite.Require().NoError(err)
	number, err := order.FormatNumber(time.Now().UTC(), 1)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), order.Params{
		Number:          number,
		TripType:        order.TripImmediate,
		PassengerName:   "Nguyen Van An",
		PassengerPhone:  "+84901234567",
		PickupAddress:   "72 Le Thanh Ton, District 1",
		Pickup:          pickup,
		DropoffAddress:  "Tan Son Nhat Airport",
		Dropoff:         dropoff,
		VehicleClass:    order.ClassEconomy,
		DistanceMeters:  8200,
		DurationMinutes: 25,
		Fare:            fare,
		PaymentMethod:   order.PaymentCash,
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	})
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	o := suite.createTestOrder()
	d, err := driver.NewDriverAvailability(kernel.NewUUID(), "Tran Minh", "+84907654321", now)
	suite.Require().NoError(err)
	record, err := order.NewStatusHistory(o.ID(), "", order.StatusPending, "order created", nil, nil, now)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, d))
	suite.Require().NoError(uow.OrderHistoryRepository().Append(ctx, record))
	suite.Require().NoError(uow.Commit(ctx))

	retrievedOrder, err := postgres.NewGormUnitOfWorkFactory(suite.db).Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), retrievedOrder.ID())

	records, err := historyrepo.NewGormOrderHistoryRepository(suite.db).GetByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(records, 1)
	suite.Equal(order.Status(""), records[0].From())
	suite.Equal(order.StatusPending, records[0].To())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllWrites() {
	ctx := context.Background()

	o := suite.createTestOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutTransaction_ReturnsError() {
	uow := suite.factory.Create()

	err := uow.Rollback(context.Background())

	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDailySequence_IncrementsWithinDayAndResetsAcrossDays() {
	ctx := context.Background()
	seq := postgres.NewGormDailySequence(suite.db)
	today := time.Date(2026, 1, 10, 14, 30, 0, 0, time.UTC)

	first, err := seq.Next(ctx, today)
	suite.Require().NoError(err)
	second, err := seq.Next(ctx, today.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Equal(1, first)
	suite.Equal(2, second)

	nextDay, err := seq.Next(ctx, today.AddDate(0, 0, 1))
	suite.Require().NoError(err)
	suite.Equal(1, nextDay)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDailySequence_ConcurrentCallersNeverShareANumber() {
	ctx := context.Background()
	seq := postgres.NewGormDailySequence(suite.db)
	day := time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)

	const callers = 20
	var wg sync.WaitGroup
	results := make(chan int, callers)

	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := seq.Next(ctx, day)
			suite.NoError(err)
			results <- value
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int]bool)
	for value := range results {
		suite.False(seen[value], "sequence value %d handed out twice", value)
		seen[value] = true
	}
	suite.Len(seen, callers)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
