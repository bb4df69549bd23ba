package commands

import (
	"errors"
	"strings"

	"foodfast/internal/pkg/errs"
	"foodfast/internal/pkg/guard"
)

var ErrAssignDroneCommandIsNotConstructed = errors.New(
	"AssignDroneCommand must be created via NewAssignDroneCommand constructor",
)

// AssignDroneCommand is a manual request to move a Shipping order onto a given
// drone. Both references accept a store id or a human code.
type AssignDroneCommand struct { //nolint:recvcheck //using for validation
	orderRef string
	droneRef string

	guard guard.ConstructorGuard
}

func NewAssignDroneCommand(orderRef, droneRef string) (AssignDroneCommand, error) {
	cmd := AssignDroneCommand{
		orderRef: strings.TrimSpace(orderRef),
		droneRef: strings.TrimSpace(droneRef),
		guard:    guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.orderRef == "" {
		errList = append(errList, errs.NewValueIsRequiredError("order ref"))
	}
	if cmd.droneRef == "" {
		errList = append(errList, errs.NewValueIsRequiredError("drone ref"))
	}
	if err := errors.Join(errList...); err != nil {
		return AssignDroneCommand{}, err
	}

	return cmd, nil
}

func (c AssignDroneCommand) Validate() error {
	return c.guard.Validate(ErrAssignDroneCommandIsNotConstructed)
}

func (c AssignDroneCommand) OrderRef() string {
	return c.orderRef
}

func (c AssignDroneCommand) DroneRef() string {
	return c.droneRef
}
