package commands

import (
	"errors"
	"strings"

	"foodfast/internal/pkg/errs"
	"foodfast/internal/pkg/guard"
)

var ErrUpdateDroneCommandIsNotConstructed = errors.New(
	"UpdateDroneCommand must be created via NewUpdateDroneCommand constructor",
)

// UpdateDroneCommand applies an operator patch to a drone given by id or code.
type UpdateDroneCommand struct { //nolint:recvcheck //using for validation
	droneRef string
	patch    DronePatch

	guard guard.ConstructorGuard
}

func NewUpdateDroneCommand(droneRef string, patch DronePatch) (UpdateDroneCommand, error) {
	cmd := UpdateDroneCommand{
		droneRef: strings.TrimSpace(droneRef),
		patch:    patch,
		guard:    guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.droneRef == "" {
		errList = append(errList, errs.NewValueIsRequiredError("drone ref"))
	}
	if patch.IsEmpty() {
		errList = append(errList, errs.NewValueIsRequiredError("at least one drone attribute"))
	}
	if err := errors.Join(errList...); err != nil {
		return UpdateDroneCommand{}, err
	}

	return cmd, nil
}

func (c UpdateDroneCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDroneCommandIsNotConstructed)
}

func (c UpdateDroneCommand) DroneRef() string {
	return c.droneRef
}

func (c UpdateDroneCommand) Patch() DronePatch {
	return c.patch
}
