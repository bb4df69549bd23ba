package commands

import (
	"errors"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/pkg/guard"
)

var ErrReconcileDroneCommandIsNotConstructed = errors.New(
	"ReconcileDroneCommand must be created via NewReconcileDroneCommand constructor",
)

// ReconcileDroneCommand reacts to a drone change made elsewhere (a fleet
// service event): the order holding the drone gets its Shipping decision rerun.
type ReconcileDroneCommand struct {
	droneID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReconcileDroneCommand(droneID kernel.UUID) (ReconcileDroneCommand, error) {
	if err := droneID.Validate(); err != nil {
		return ReconcileDroneCommand{}, err
	}

	return ReconcileDroneCommand{
		droneID: droneID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileDroneCommand) Validate() error {
	return c.guard.Validate(ErrReconcileDroneCommandIsNotConstructed)
}

func (c ReconcileDroneCommand) DroneID() kernel.UUID {
	return c.droneID
}
