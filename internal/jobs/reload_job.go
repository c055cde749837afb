package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"orderlink/internal/core/application/syncer"

	"github.com/robfig/cron/v3"
)

// ReloadJob periodically refreshes the order collections from the backend.
type ReloadJob struct {
	synchronizer *syncer.Synchronizer
	cron         *cron.Cron
	schedule     string
	logger       *slog.Logger
}

// NewReloadJob creates a reload job running every intervalSeconds seconds.
// Intervals below one second fall back to the ten second default.
func NewReloadJob(synchronizer *syncer.Synchronizer, intervalSeconds int, logger *slog.Logger) *ReloadJob {
	if intervalSeconds < 1 {
		intervalSeconds = 10
	}
	return &ReloadJob{
		synchronizer: synchronizer,
		cron:         cron.New(cron.WithSeconds()),
		schedule:     fmt.Sprintf("*/%d * * * * *", intervalSeconds),
		logger:       logger.With("component", "reload_job"),
	}
}

// Start begins the periodic reload.
func (j *ReloadJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.synchronizer.Reload(ctx); err != nil {
			// The next tick retries; a flaky backend should not kill the poller.
			j.logger.WarnContext(ctx, "Reload job tick failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reload job started", "schedule", j.schedule)
	return nil
}

// Stop stops the periodic reload.
func (j *ReloadJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reload job stopped")
}
