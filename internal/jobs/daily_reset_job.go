package jobs

import (
	"context"
	"fmt"
	"time"

	"foodfast/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultDailyResetSchedule fires at midnight UTC.
const DefaultDailyResetSchedule = "0 0 * * *"

type ResetDailyDeliveriesHandler interface {
	Handle(ctx context.Context, cmd commands.ResetDailyDeliveriesCommand) (int64, error)
}

// DailyResetJob zeroes the daily delivery counter of every drone on a cron
// schedule. Schedules use the standard five-field syntax, evaluated in UTC.
type DailyResetJob struct {
	handler  ResetDailyDeliveriesHandler
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   zerolog.Logger
}

func NewDailyResetJob(handler ResetDailyDeliveriesHandler, schedule string, logger zerolog.Logger) *DailyResetJob {
	if schedule == "" {
		schedule = DefaultDailyResetSchedule
	}
	return &DailyResetJob{
		handler:  handler,
		schedule: schedule,
		timeout:  time.Minute,
		cron:     cron.New(cron.WithLocation(time.UTC)),
		logger:   logger.With().Str("component", "daily_reset_job").Logger(),
	}
}

// Start registers the job and starts the scheduler.
func (j *DailyResetJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { _ = j.Run(context.Background()) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Msg("Daily reset job started")
	return nil
}

// Run performs one reset.
func (j *DailyResetJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	reset, err := j.handler.Handle(ctx, commands.NewResetDailyDeliveriesCommand())
	if err != nil {
		j.logger.Error().Err(err).Msg("Daily reset job failed")
		return err
	}

	j.logger.Info().Int64("drones", reset).Msg("Daily delivery counters reset")
	return nil
}

// Stop stops the scheduler and waits for a running reset to finish.
func (j *DailyResetJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("Daily reset job stopped")
}
