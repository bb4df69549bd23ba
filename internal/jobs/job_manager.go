package jobs

import (
	"fmt"

	"github.com/rs/zerolog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dailyResetJob *DailyResetJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	resetHandler ResetDailyDeliveriesHandler,
	dailyResetSchedule string,
	logger zerolog.Logger,
) *JobManager {
	return &JobManager{
		dailyResetJob: NewDailyResetJob(resetHandler, dailyResetSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dailyResetJob.Start(); err != nil {
		return fmt.Errorf("failed to start daily reset job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dailyResetJob.Stop()
}
