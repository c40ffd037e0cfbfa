package fleetrepo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/fleetrepo"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/fleet"
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

// FleetRepositoryIntegrationTestSuite exercises the candidate search against
// a real PostgreSQL instance.
type FleetRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	repo      *fleetrepo.GormFleetRepository
	drivers   *driverrepo.GormDriverRepository
	seq       int
}

func (suite *FleetRepositoryIntegrationTestSuite) SetupSuite() {
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
		&driverrepo.DriverDTO{},
		&fleetrepo.VehicleDTO{},
		&fleetrepo.VehicleAssignmentDTO{},
	))

	suite.repo = fleetrepo.NewGormFleetRepository(db)
	suite.drivers = driverrepo.NewGormDriverRepository(db)
}

func (suite *FleetRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE drivers, vehicles, vehicle_assignments").Error)
}

func (suite *FleetRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seedPair registers a verified driver operating an active vehicle of the
// given class. The driver went online at the given time.
func (suite *FleetRepositoryIntegrationTestSuite) seedPair(
	class order.VehicleClass,
	onlineAt time.Time,
) (*driver.DriverAvailability, *fleet.Vehicle) {
	suite.seq++
	ctx := context.Background()

	d, err := driver.NewDriverAvailability(
		kernel.NewUUID(), "Tran Minh", fmt.Sprintf("+8490765%04d", suite.seq), onlineAt.Add(-time.Hour))
	suite.Require().NoError(err)
	d.MarkVerified()
	suite.Require().NoError(d.GoOnline(onlineAt))
	suite.Require().NoError(suite.drivers.Add(ctx, d))

	v, err := fleet.NewVehicle(kernel.NewUUID(), class, fmt.Sprintf("51A-123.%02d", suite.seq), "Toyota Vios")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.AddVehicle(ctx, v))

	a, err := fleet.NewVehicleAssignment(v.ID(), d.DriverID(), onlineAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.AddAssignment(ctx, a))

	return d, v
}

func (suite *FleetRepositoryIntegrationTestSuite) TestGetVehicle_RoundTrip() {
	_, v := suite.seedPair(order.ClassEconomy, time.Now().UTC())

	got, err := suite.repo.GetVehicle(context.Background(), v.ID())

	suite.Require().NoError(err)
	suite.Equal(v.Plate(), got.Plate())
	suite.Equal(order.ClassEconomy, got.Class())
	suite.True(got.IsActive())
}

func (suite *FleetRepositoryIntegrationTestSuite) TestGetVehicle_NonExistent_ReturnsNotFoundError() {
	_, err := suite.repo.GetVehicle(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *FleetRepositoryIntegrationTestSuite) TestGetActiveAssignmentForDriver() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	d, v := suite.seedPair(order.ClassEconomy, now)

	a, err := suite.repo.GetActiveAssignmentForDriver(context.Background(), d.DriverID())

	suite.Require().NoError(err)
	suite.True(a.VehicleID().IsEqual(v.ID()))
	suite.True(a.IsActive())
}

func (suite *FleetRepositoryIntegrationTestSuite) TestGetActiveAssignmentForDriver_EndedAssignment_NotFound() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	d, v := suite.seedPair(order.ClassEconomy, now)

	ended := now.Add(time.Hour)
	suite.Require().NoError(suite.db.Exec(
		"UPDATE vehicle_assignments SET active = false, ended_at = ? WHERE vehicle_id = ?",
		ended, v.ID().Bytes()).Error)

	_, err := suite.repo.GetActiveAssignmentForDriver(ctx, d.DriverID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *FleetRepositoryIntegrationTestSuite) TestFindAvailablePairs_FiltersClassAndDriverState() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	eligible, vehicle := suite.seedPair(order.ClassEconomy, now)
	suite.seedPair(order.ClassPremium, now)

	busy, _ := suite.seedPair(order.ClassEconomy, now)
	suite.Require().NoError(busy.MarkBusy(now.Add(time.Minute)))
	suite.Require().NoError(suite.drivers.Update(ctx, busy))

	candidates, err := suite.repo.FindAvailablePairs(ctx, order.ClassEconomy)

	suite.Require().NoError(err)
	suite.Require().Len(candidates, 1)
	suite.True(candidates[0].Driver.DriverID().IsEqual(eligible.DriverID()))
	suite.True(candidates[0].Vehicle.ID().IsEqual(vehicle.ID()))
}

func (suite *FleetRepositoryIntegrationTestSuite) TestFindAvailablePairs_SkipsInactiveVehicles() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, v := suite.seedPair(order.ClassEconomy, now)
	suite.Require().NoError(suite.db.Exec(
		"UPDATE vehicles SET active = false WHERE id = ?", v.ID().Bytes()).Error)

	candidates, err := suite.repo.FindAvailablePairs(ctx, order.ClassEconomy)

	suite.Require().NoError(err)
	suite.Empty(candidates)
}

func (suite *FleetRepositoryIntegrationTestSuite) TestFindAvailablePairs_LongestIdleDriverFirst() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	recent, _ := suite.seedPair(order.ClassEconomy, now)
	longestIdle, _ := suite.seedPair(order.ClassEconomy, now.Add(-2*time.Hour))

	candidates, err := suite.repo.FindAvailablePairs(ctx, order.ClassEconomy)

	suite.Require().NoError(err)
	suite.Require().Len(candidates, 2)
	suite.True(candidates[0].Driver.DriverID().IsEqual(longestIdle.DriverID()))
	suite.True(candidates[1].Driver.DriverID().IsEqual(recent.DriverID()))
}

func TestFleetRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(FleetRepositoryIntegrationTestSuite))
}
