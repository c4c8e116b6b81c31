package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/metrics"
)

// LockSweepJob reclaims expired operation locks. Runs every ten seconds so a
// record wedged by a crashed operation becomes writable again within one TTL
// plus one sweep interval.
type LockSweepJob struct {
	uowFactory commands.TrackingUoWFactory
	clock      ports.Clock
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewLockSweepJob creates a new job for releasing expired operation locks.
func NewLockSweepJob(uowFactory commands.TrackingUoWFactory, clock ports.Clock,
	logger *slog.Logger) *LockSweepJob {
	return &LockSweepJob{
		uowFactory: uowFactory,
		clock:      clock,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "lock_sweep_job"),
	}
}

// Start begins the lock sweep job to run every ten seconds.
func (j *LockSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		if err := j.sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Lock sweep job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Lock sweep job started (running every ten seconds)")
	return nil
}

// Stop stops the lock sweep job.
func (j *LockSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Lock sweep job stopped")
}

func (j *LockSweepJob) sweep(ctx context.Context) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	released, err := uow.TrackingRepository().ReleaseExpiredLocks(ctx, j.clock.Now())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if released > 0 {
		metrics.ExpiredLocksReleasedTotal.Add(float64(released))
		j.logger.InfoContext(ctx, "Released expired operation locks", "count", released)
	}

	return nil
}
