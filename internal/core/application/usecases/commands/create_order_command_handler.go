package commands

import (
	"context"
	"errors"

	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/core/domain/services"
	"foodfast/internal/pkg/errs"
)

// CreateOrderCommandHandler places orders. A Shipping seed reserves a drone
// before the first write, so the order never exists without its reservation.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	retry      RetryPolicy
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, retry RetryPolicy) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (Decision, error) {
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

func (h CreateOrderCommandHandler) handleOnce(ctx context.Context, cmd CreateOrderCommand) (Decision, error) {
	created, err := order.NewOrder(cmd.OrderID(), cmd.Initial(), cmd.Details(), cmd.PlacedAt())
	if err != nil {
		return Decision{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return Decision{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	_, err = orderRepo.GetByRef(ctx, created.Code())
	if err == nil {
		return Decision{}, errs.NewValueIsInvalidError("order code is already taken")
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return Decision{}, err
	}

	if created.IsShipping() {
		fleet, fleetErr := loadFleet(ctx, uow)
		if fleetErr != nil {
			return Decision{}, fleetErr
		}

		if _, err = services.NewDroneAllocator().Allocate(fleet, created, cmd.DroneRef()); err != nil {
			return Decision{}, err
		}
	}

	if err = orderRepo.Add(ctx, created); err != nil {
		return Decision{}, err
	}

	if err = syncReservation(ctx, uow.ReservationRepository(), created); err != nil {
		return Decision{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Decision{}, err
	}

	return Decision{Order: created, Outcome: order.Applied, DroneChanged: created.HasDrone()}, nil
}
