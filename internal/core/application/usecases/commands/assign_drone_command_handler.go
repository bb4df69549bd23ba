package commands

import (
	"context"
	"fmt"

	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/core/domain/services"
	"foodfast/internal/pkg/errs"
)

// AssignDroneCommandHandler honours a manual drone request when the drone is
// Active and free. A drone already held by another Shipping order is never
// taken away from it; the order gets the next free drone instead, or none.
//
// Errors:
//   - errs.ObjectNotFoundError when the order or the requested drone does not exist
//   - order.ErrInvalidAssignment when the order is not Shipping, checked first
type AssignDroneCommandHandler struct {
	uowFactory UoWFactory
	retry      RetryPolicy
}

func NewAssignDroneCommandHandler(uowFactory UoWFactory, retry RetryPolicy) AssignDroneCommandHandler {
	return AssignDroneCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

func (h AssignDroneCommandHandler) Handle(ctx context.Context, cmd AssignDroneCommand) (Decision, error) {
	if err := cmd.Validate(); err != nil {
		return Decision{}, err
	}

	var decision Decision
	err := h.retry.Run(ctx, func(ctx context.Context) error {
		var err error
		decision, err = h.handleOnce(ctx, cmd)
		return err
	})
	return decision, err
}

func (h AssignDroneCommandHandler) handleOnce(ctx context.Context, cmd AssignDroneCommand) (Decision, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Decision{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	current, err := orderRepo.GetByRef(ctx, cmd.OrderRef())
	if err != nil {
		return Decision{}, err
	}

	if !current.IsShipping() {
		return Decision{}, fmt.Errorf("%w: order %s is %s", order.ErrInvalidAssignment, current.Code(), current.Status())
	}

	fleet, err := loadFleet(ctx, uow)
	if err != nil {
		return Decision{}, err
	}

	if _, ok := fleet.Resolve(cmd.DroneRef()); !ok {
		return Decision{}, errs.NewObjectNotFoundError("drone", cmd.DroneRef())
	}

	before := assignmentOf(current)
	if _, err = services.NewDroneAllocator().Allocate(fleet, current, cmd.DroneRef()); err != nil {
		return Decision{}, err
	}

	if !before.changed(current) {
		return Decision{Order: current, Outcome: order.Unchanged}, nil
	}

	if err = orderRepo.Update(ctx, current); err != nil {
		return Decision{}, err
	}

	if err = syncReservation(ctx, uow.ReservationRepository(), current); err != nil {
		return Decision{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Decision{}, err
	}

	return Decision{Order: current, Outcome: order.Applied, DroneChanged: true}, nil
}
