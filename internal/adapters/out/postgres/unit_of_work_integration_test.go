package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/postgres/trackingrepo"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
)

// UnitOfWorkIntegrationTestSuite verifies transaction boundaries of the GORM
// unit of work against a real database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&trackingrepo.TrackingDTO{}, &trackingrepo.TransitionDTO{}))
	suite.factory = postgres.NewGormUnitOfWorkFactory(db, ports.SystemClock{})
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE trackings, tracking_transitions").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newTracking() *tracking.DeliveryTracking {
	pickup, err := kernel.NewGeoPoint(55.751244, 37.618423)
	suite.Require().NoError(err)
	delivery, err := kernel.NewGeoPoint(55.760000, 37.620000)
	suite.Require().NoError(err)

	record, err := tracking.NewDeliveryTracking(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), pickup, delivery, time.Now().UTC())
	suite.Require().NoError(err)
	return record
}

func (suite *UnitOfWorkIntegrationTestSuite) countTrackings() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&trackingrepo.TrackingDTO{}).Count(&count).Error)
	return count
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitPersists() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TrackingRepository().Add(ctx, suite.newTracking()))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(int64(1), suite.countTrackings())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscards() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TrackingRepository().Add(ctx, suite.newTracking()))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.countTrackings())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin() {
	uow := suite.factory.Create()
	suite.ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIsolationBetweenInstances() {
	ctx := context.Background()
	record := suite.newTracking()

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(first.TrackingRepository().Add(ctx, record))

	// A second unit of work must not see the uncommitted record.
	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	_, err := second.TrackingRepository().Get(ctx, record.ID())
	suite.Require().Error(err)
	suite.Require().NoError(second.Rollback(ctx))

	suite.Require().NoError(first.Commit(ctx))
	suite.Equal(int64(1), suite.countTrackings())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
