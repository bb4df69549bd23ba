// Package jobs provides scheduled background tasks for the lifecycle engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DailyResetJob - zeroes the daily delivery counter of every drone, by
// default at midnight UTC ("0 0 * * *")
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(resetHandler, cfg.DailyResetSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal().Err(err).Msg("Failed to start jobs")
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the job stays scheduled; the counters are reset
// on the next tick. An invalid schedule fails StartAll.
package jobs
