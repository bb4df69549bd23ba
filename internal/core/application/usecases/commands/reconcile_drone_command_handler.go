package commands

import (
	"context"
)

// ReconcileDroneCommandHandler reruns the Shipping decision for the holder of a
// drone. It returns nil when nobody holds the drone.
type ReconcileDroneCommandHandler struct {
	uowFactory UoWFactory
	retry      RetryPolicy
}

func NewReconcileDroneCommandHandler(uowFactory UoWFactory, retry RetryPolicy) ReconcileDroneCommandHandler {
	return ReconcileDroneCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

func (h ReconcileDroneCommandHandler) Handle(ctx context.Context, cmd ReconcileDroneCommand) (*Decision, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var decision *Decision
	err := h.retry.Run(ctx, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		holder, err := recomputeHolder(ctx, uow, cmd.DroneID())
		if err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		decision = holder
		return nil
	})

	return decision, err
}
