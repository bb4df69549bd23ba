package commands

import (
	"context"
	"errors"

	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/pkg/errs"
)

// RegisterDroneCommandHandler adds drones to the fleet. Codes are unique; a
// taken code is a validation error.
type RegisterDroneCommandHandler struct {
	uowFactory DroneUoWFactory
}

func NewRegisterDroneCommandHandler(uowFactory DroneUoWFactory) RegisterDroneCommandHandler {
	return RegisterDroneCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RegisterDroneCommandHandler) Handle(ctx context.Context, cmd RegisterDroneCommand) (*drone.Drone, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	registered, err := drone.NewDrone(cmd.DroneID(), cmd.Code())
	if err != nil {
		return nil, err
	}

	if _, err = cmd.Patch().apply(registered); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	droneRepo := uow.DroneRepository()

	_, err = droneRepo.GetByRef(ctx, registered.Code())
	if err == nil {
		return nil, errs.NewValueIsInvalidError("drone code is already taken")
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if err = droneRepo.Add(ctx, registered); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return registered, nil
}
