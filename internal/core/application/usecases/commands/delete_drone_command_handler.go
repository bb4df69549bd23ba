package commands

import (
	"context"
)

// DeleteDroneCommandHandler removes a drone. The order holding it, if any, is
// moved to another free drone, or left without one, in the same transaction.
type DeleteDroneCommandHandler struct {
	uowFactory UoWFactory
	retry      RetryPolicy
}

func NewDeleteDroneCommandHandler(uowFactory UoWFactory, retry RetryPolicy) DeleteDroneCommandHandler {
	return DeleteDroneCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

func (h DeleteDroneCommandHandler) Handle(ctx context.Context, cmd DeleteDroneCommand) (FleetChange, error) {
	if err := cmd.Validate(); err != nil {
		return FleetChange{}, err
	}

	var change FleetChange
	err := h.retry.Run(ctx, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		droneRepo := uow.DroneRepository()

		retired, err := droneRepo.GetByRef(ctx, cmd.DroneRef())
		if err != nil {
			return err
		}

		if err = droneRepo.Delete(ctx, retired.ID()); err != nil {
			return err
		}

		holder, err := recomputeHolder(ctx, uow, retired.ID())
		if err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		change = FleetChange{Drone: retired, Holder: holder}
		return nil
	})

	return change, err
}
