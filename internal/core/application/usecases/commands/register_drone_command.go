package commands

import (
	"errors"
	"strings"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/pkg/guard"
)

var ErrRegisterDroneCommandIsNotConstructed = errors.New(
	"RegisterDroneCommand must be created via NewRegisterDroneCommand constructor",
)

// RegisterDroneCommand adds a drone to the fleet. The patch overrides the
// fleet defaults (Active, battery 100, zero counters).
type RegisterDroneCommand struct { //nolint:recvcheck //using for validation
	droneID kernel.UUID
	code    string
	patch   DronePatch

	guard guard.ConstructorGuard
}

func NewRegisterDroneCommand(droneID kernel.UUID, code string, patch DronePatch) (RegisterDroneCommand, error) {
	if err := droneID.Validate(); err != nil {
		return RegisterDroneCommand{}, err
	}

	return RegisterDroneCommand{
		droneID: droneID,
		code:    strings.TrimSpace(code),
		patch:   patch,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterDroneCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDroneCommandIsNotConstructed)
}

func (c RegisterDroneCommand) DroneID() kernel.UUID {
	return c.droneID
}

// Code is the requested human code; empty means generated.
func (c RegisterDroneCommand) Code() string {
	return c.code
}

func (c RegisterDroneCommand) Patch() DronePatch {
	return c.patch
}
