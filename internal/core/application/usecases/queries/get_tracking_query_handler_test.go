package queries_test

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

	"tracking/internal/adapters/out/postgres/trackingrepo"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// QueryHandlersIntegrationTestSuite exercises both read-side handlers against
// PostgreSQL, with records seeded through the repository.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *trackingrepo.GormTrackingRepository
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
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
	suite.repo = trackingrepo.NewGormTrackingRepository(db, noopTracker{}, ports.SystemClock{})
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE trackings, tracking_transitions").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) seedTracking() *tracking.DeliveryTracking {
	pickup, err := kernel.NewGeoPoint(55.751244, 37.618423)
	suite.Require().NoError(err)
	delivery, err := kernel.NewGeoPoint(55.760000, 37.620000)
	suite.Require().NoError(err)

	record, err := tracking.NewDeliveryTracking(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		pickup, delivery, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), record))

	return record
}

func (suite *QueryHandlersIntegrationTestSuite) advance(record *tracking.DeliveryTracking, to tracking.Status) {
	ctx := context.Background()
	opID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Microsecond)
	version := record.Version()

	suite.Require().NoError(suite.repo.AcquireLock(ctx, record.ID(), opID, version, now.Add(time.Minute)))
	suite.Require().NoError(record.AcquireLock(opID, now.Add(time.Minute), now))
	from := record.Status()
	suite.Require().NoError(record.ApplyTransition(to, tracking.TriggerManual, now))
	suite.Require().NoError(record.MarkCommitted(opID, tracking.TransitionMessage(from, to), now))
	suite.Require().NoError(suite.repo.CommitMutation(ctx, record, opID, version))
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetTracking() {
	ctx := context.Background()
	record := suite.seedTracking()
	suite.advance(record, tracking.StatusHeadingToPickup)

	handler := queries.NewGetTrackingQueryHandler(suite.db, tracking.DefaultTransitionPolicy())
	query, err := queries.NewGetTrackingQuery(record.ID(), tracking.RoleDelivery)
	suite.Require().NoError(err)

	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(resp.ID.IsEqual(record.ID()))
	suite.True(resp.OrderID.IsEqual(record.OrderID()))
	suite.Equal(tracking.StatusHeadingToPickup, resp.Status)
	suite.Equal(int64(1), resp.Version)
	suite.NotEmpty(resp.LastMessage)
	suite.Nil(resp.CurrentLocation)
	suite.InDelta(55.751244, resp.Pickup.Latitude, 1e-9)
	suite.Positive(resp.EstimatedToNext)
	suite.Contains(resp.AllowedActions, tracking.ActionArrivePickup)
	suite.Require().Len(resp.History, 1)
	suite.Equal(tracking.StatusAssigned, resp.History[0].From)
	suite.Equal(tracking.StatusHeadingToPickup, resp.History[0].To)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetTracking_CurrentLocationCarriesAllFields() {
	ctx := context.Background()
	record := suite.seedTracking()

	lat, lng := 55.7512, 37.6184
	accuracy, altitude, heading, speed := 5.5, 144.2, 270.0, 3.4
	now := time.Now().UTC().Truncate(time.Microsecond)
	sample, err := kernel.NewLocationSample(kernel.RawLocationSample{
		Latitude:   &lat,
		Longitude:  &lng,
		Accuracy:   &accuracy,
		Altitude:   &altitude,
		Heading:    &heading,
		Speed:      &speed,
		CapturedAt: now,
	})
	suite.Require().NoError(err)

	opID := kernel.NewUUID()
	suite.Require().NoError(suite.repo.AcquireLock(ctx, record.ID(), opID, 0, now.Add(time.Minute)))
	suite.Require().NoError(record.AcquireLock(opID, now.Add(time.Minute), now))
	suite.Require().NoError(record.UpdateLocation(sample))
	suite.Require().NoError(record.MarkCommitted(opID, record.LastMessage(), now))
	suite.Require().NoError(suite.repo.CommitMutation(ctx, record, opID, 0))

	handler := queries.NewGetTrackingQueryHandler(suite.db, tracking.DefaultTransitionPolicy())
	query, err := queries.NewGetTrackingQuery(record.ID(), tracking.RoleDelivery)
	suite.Require().NoError(err)

	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().NotNil(resp.CurrentLocation)
	suite.InDelta(lat, resp.CurrentLocation.Latitude, 1e-9)
	suite.InDelta(lng, resp.CurrentLocation.Longitude, 1e-9)
	suite.Require().NotNil(resp.CurrentLocation.Accuracy)
	suite.InDelta(accuracy, *resp.CurrentLocation.Accuracy, 1e-9)
	suite.Require().NotNil(resp.CurrentLocation.Altitude)
	suite.InDelta(altitude, *resp.CurrentLocation.Altitude, 1e-9)
	suite.Require().NotNil(resp.CurrentLocation.Heading)
	suite.InDelta(heading, *resp.CurrentLocation.Heading, 1e-9)
	suite.Require().NotNil(resp.CurrentLocation.Speed)
	suite.InDelta(speed, *resp.CurrentLocation.Speed, 1e-9)
	suite.Equal(now, resp.CurrentLocation.CapturedAt.UTC())
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetTracking_NotFound() {
	handler := queries.NewGetTrackingQueryHandler(suite.db, tracking.DefaultTransitionPolicy())
	query, err := queries.NewGetTrackingQuery(kernel.NewUUID(), tracking.RoleAdmin)
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.Require().Error(err)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetActiveTrackings() {
	ctx := context.Background()
	active := suite.seedTracking()
	cancelled := suite.seedTracking()
	suite.advance(cancelled, tracking.StatusCancelled)

	handler := queries.NewGetActiveTrackingsQueryHandler(suite.db)
	resp, err := handler.Handle(ctx, queries.NewGetActiveTrackingsQuery())
	suite.Require().NoError(err)

	suite.Require().Len(resp, 1)
	suite.True(resp[0].ID.IsEqual(active.ID()))
	suite.Equal(tracking.StatusAssigned, resp[0].Status)
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
