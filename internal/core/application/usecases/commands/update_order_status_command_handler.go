package commands

import (
	"context"

	"foodfast/internal/core/domain/services"
)

// UpdateOrderStatusCommandHandler resolves a status request and, when the order
// ends up Shipping, makes sure it holds a valid drone.
//
// The current drone is kept when it is still Active and no other Shipping order
// holds it; otherwise the allocator picks another one, or none when the fleet is
// exhausted. A rejected transition is not an error: the decision carries the
// Rejected outcome and the unchanged order.
//
// Example:
//
//	cmd, _ := NewUpdateOrderStatusCommand("A-100", order.Shipping)
//	decision, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if decision.Degraded() {
//	    log.Warn().Msg("order ships without drone")
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	retry      RetryPolicy
}

func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory, retry RetryPolicy) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (Decision, error) {
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

func (h UpdateOrderStatusCommandHandler) handleOnce(ctx context.Context, cmd UpdateOrderStatusCommand) (Decision, error) {
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

	fleet, err := loadFleet(ctx, uow)
	if err != nil {
		return Decision{}, err
	}

	before := assignmentOf(current)
	outcome := current.Transition(cmd.Requested())
	if current.IsShipping() {
		if _, err = services.NewDroneAllocator().Allocate(fleet, current, currentDroneRef(current)); err != nil {
			return Decision{}, err
		}
	}

	if !before.changed(current) {
		return Decision{Order: current, Outcome: outcome}, nil
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

	return Decision{Order: current, Outcome: outcome, DroneChanged: before.droneChanged(current)}, nil
}
