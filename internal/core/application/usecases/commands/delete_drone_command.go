package commands

import (
	"errors"
	"strings"

	"foodfast/internal/pkg/errs"
	"foodfast/internal/pkg/guard"
)

var ErrDeleteDroneCommandIsNotConstructed = errors.New(
	"DeleteDroneCommand must be created via NewDeleteDroneCommand constructor",
)

// DeleteDroneCommand retires a drone from the fleet.
type DeleteDroneCommand struct { //nolint:recvcheck //using for validation
	droneRef string

	guard guard.ConstructorGuard
}

func NewDeleteDroneCommand(droneRef string) (DeleteDroneCommand, error) {
	droneRef = strings.TrimSpace(droneRef)
	if droneRef == "" {
		return DeleteDroneCommand{}, errs.NewValueIsRequiredError("drone ref")
	}

	return DeleteDroneCommand{
		droneRef: droneRef,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteDroneCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDroneCommandIsNotConstructed)
}

func (c DeleteDroneCommand) DroneRef() string {
	return c.droneRef
}
