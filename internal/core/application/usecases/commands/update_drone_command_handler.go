package commands

import (
	"context"

	"foodfast/internal/core/domain/model/drone"
)

// FleetChange is the result of a fleet operation: the drone as written and,
// when the drone was reserved, the decision taken for the order holding it.
type FleetChange struct {
	Drone  *drone.Drone
	Holder *Decision
}

// UpdateDroneCommandHandler applies operator patches. A status change reruns
// the Shipping decision for the order holding the drone in the same
// transaction, so an order never keeps a drone that just left Active.
type UpdateDroneCommandHandler struct {
	uowFactory UoWFactory
	retry      RetryPolicy
}

func NewUpdateDroneCommandHandler(uowFactory UoWFactory, retry RetryPolicy) UpdateDroneCommandHandler {
	return UpdateDroneCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

func (h UpdateDroneCommandHandler) Handle(ctx context.Context, cmd UpdateDroneCommand) (FleetChange, error) {
	if err := cmd.Validate(); err != nil {
		return FleetChange{}, err
	}

	var change FleetChange
	err := h.retry.Run(ctx, func(ctx context.Context) error {
		var err error
		change, err = h.handleOnce(ctx, cmd)
		return err
	})
	return change, err
}

func (h UpdateDroneCommandHandler) handleOnce(ctx context.Context, cmd UpdateDroneCommand) (FleetChange, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return FleetChange{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	droneRepo := uow.DroneRepository()

	current, err := droneRepo.GetByRef(ctx, cmd.DroneRef())
	if err != nil {
		return FleetChange{}, err
	}

	statusChanged, err := cmd.Patch().apply(current)
	if err != nil {
		return FleetChange{}, err
	}

	if err = droneRepo.Update(ctx, current); err != nil {
		return FleetChange{}, err
	}

	change := FleetChange{Drone: current}
	if statusChanged {
		if change.Holder, err = recomputeHolder(ctx, uow, current.ID()); err != nil {
			return FleetChange{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return FleetChange{}, err
	}

	return change, nil
}
