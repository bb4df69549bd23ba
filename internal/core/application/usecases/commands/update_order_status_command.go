package commands

import (
	"errors"
	"strings"

	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/pkg/errs"
	"foodfast/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand asks for an order, given by id or code, to move to
// a new status. Whether the move happens is decided by the transition table.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderRef  string
	requested order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(orderRef string, requested order.Status) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		orderRef:  strings.TrimSpace(orderRef),
		requested: requested,
		guard:     guard.NewConstructorGuard(),
	}

	var refErr error
	if cmd.orderRef == "" {
		refErr = errs.NewValueIsRequiredError("order ref")
	}

	if err := errors.Join(refErr, requested.Validate()); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderRef() string {
	return c.orderRef
}

func (c UpdateOrderStatusCommand) Requested() order.Status {
	return c.requested
}
