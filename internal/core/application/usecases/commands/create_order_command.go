package commands

import (
	"errors"
	"strings"
	"time"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/pkg/errs"
	"foodfast/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order. The initial status is Pending unless
// an administrator seeds a Shipping order, in which case droneRef is the
// preferred drone for its one-off reservation.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), order.Pending, details, "", time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	decision, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	initial  order.Status
	details  order.Details
	droneRef string
	placedAt time.Time

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	initial order.Status,
	details order.Details,
	droneRef string,
	placedAt time.Time,
) (CreateOrderCommand, error) {
	if initial == order.Unknown {
		initial = order.Pending
	}

	cmd := CreateOrderCommand{
		initial:  initial,
		details:  details,
		droneRef: strings.TrimSpace(droneRef),
		placedAt: placedAt,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.validateInitial(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateOrderCommand) Initial() order.Status { return c.initial }
func (c CreateOrderCommand) Details() order.Details { return c.details }
func (c CreateOrderCommand) DroneRef() string { return c.droneRef }
func (c CreateOrderCommand) PlacedAt() time.Time { return c.placedAt }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) validateInitial() error {
	if c.initial != order.Pending && c.initial != order.Shipping {
		return errs.NewValueIsInvalidError("initial status must be pending or shipping")
	}
	return nil
}
