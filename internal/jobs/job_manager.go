package jobs

import (
	"fmt"
	"log/slog"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	lockSweepJob *LockSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(uowFactory commands.TrackingUoWFactory, clock ports.Clock,
	logger *slog.Logger) *JobManager {
	return &JobManager{
		lockSweepJob: NewLockSweepJob(uowFactory, clock, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.lockSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start lock sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.lockSweepJob.Stop()
}
