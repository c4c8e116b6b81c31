package cmd

import (
	"log/slog"
	"time"

	"tracking/internal/adapters/out/notify"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/throttle"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
	"tracking/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	policy    tracking.TransitionPolicy
	evaluator *services.GeofenceEvaluator
	clock     ports.Clock
	throttle  ports.ProposalThrottle
	publisher ports.NotificationPublisher
	logger    *slog.Logger
}

// NewCompositionRoot wires the application object graph. When a redis address
// is configured, geofence confirmation state is shared across instances;
// otherwise it is kept in process memory.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	policy, err := tracking.NewTransitionPolicy()
	if err != nil {
		return CompositionRoot{}, err
	}

	evaluator, err := services.NewDefaultGeofenceEvaluator()
	if err != nil {
		return CompositionRoot{}, err
	}

	clock := ports.SystemClock{}

	var proposalThrottle ports.ProposalThrottle
	if configs.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
		proposalThrottle = throttle.NewRedisThrottle(client, throttle.DefaultConfirmationWindow)
	} else {
		proposalThrottle = throttle.NewInMemoryThrottle(clock, throttle.DefaultConfirmationWindow)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, clock),
		policy:     policy,
		evaluator:  evaluator,
		clock:      clock,
		throttle:   proposalThrottle,
		publisher:  notify.NewSlogPublisher(logger),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) trackingUoWFactory() commands.TrackingUoWFactory {
	return FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createCommitter(lockTTL time.Duration) commands.Committer {
	return commands.NewCommitter(c.trackingUoWFactory(), c.clock, lockTTL)
}

func (c *CompositionRoot) CreateCreateTrackingCommandHandler() commands.CreateTrackingCommandHandler {
	return commands.NewCreateTrackingCommandHandler(c.trackingUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() commands.RequestTransitionCommandHandler {
	return commands.NewRequestTransitionCommandHandler(
		c.createCommitter(commands.DefaultLockTTL), c.policy, c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	return commands.NewReportLocationCommandHandler(
		c.createCommitter(commands.DefaultLockTTL), c.evaluator, c.throttle,
		c.CreateRequestTransitionCommandHandler(), c.logger,
		commands.DefaultAutoTransitionDebounce)
}

func (c *CompositionRoot) CreateReportLocationBatchCommandHandler() commands.ReportLocationBatchCommandHandler {
	return commands.NewReportLocationBatchCommandHandler(
		c.CreateReportLocationCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	return queries.NewGetTrackingQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateGetActiveTrackingsQueryHandler() queries.GetActiveTrackingsQueryHandler {
	return queries.NewGetActiveTrackingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.trackingUoWFactory(), c.clock, c.logger)
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}
