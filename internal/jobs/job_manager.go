package jobs

import (
	"fmt"
	"log/slog"

	"orderlink/internal/core/application/syncer"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reloadJob *ReloadJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(synchronizer *syncer.Synchronizer, reloadIntervalSeconds int, logger *slog.Logger) *JobManager {
	return &JobManager{
		reloadJob: NewReloadJob(synchronizer, reloadIntervalSeconds, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reloadJob.Start(); err != nil {
		return fmt.Errorf("failed to start reload job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reloadJob.Stop()
}
