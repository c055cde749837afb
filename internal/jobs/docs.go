// Package jobs provides the scheduled background tasks of the integration.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ReloadJob - Periodically refreshes the order collections from the
// backend so the local view converges with server truth between
// user-triggered actions.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(synchronizer, 10, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reload job runs on a seconds-granularity cron schedule, every ten
// seconds by default. Reload failures are logged and the next tick retries;
// a slow reload overlapping the next tick is handled by the synchronizer's
// generation check, which discards the stale result.
package jobs
