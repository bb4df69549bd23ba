package commands

import (
	"context"
)

type ResetDailyDeliveriesCommandHandler struct {
	uowFactory DroneUoWFactory
}

func NewResetDailyDeliveriesCommandHandler(uowFactory DroneUoWFactory) ResetDailyDeliveriesCommandHandler {
	return ResetDailyDeliveriesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of drones whose counter was reset.
func (h ResetDailyDeliveriesCommandHandler) Handle(ctx context.Context, cmd ResetDailyDeliveriesCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	reset, err := uow.DroneRepository().ResetDailyDeliveries(ctx)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return reset, nil
}
