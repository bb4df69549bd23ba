package commands

import (
	"errors"

	"foodfast/internal/pkg/guard"
)

var ErrResetDailyDeliveriesCommandIsNotConstructed = errors.New(
	"ResetDailyDeliveriesCommand must be created via NewResetDailyDeliveriesCommand constructor",
)

// ResetDailyDeliveriesCommand zeroes the per-day delivery counter of every drone.
// It is issued by the scheduler at the start of each day.
type ResetDailyDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

func NewResetDailyDeliveriesCommand() ResetDailyDeliveriesCommand {
	return ResetDailyDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c ResetDailyDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrResetDailyDeliveriesCommandIsNotConstructed)
}
