package commands

import (
	"context"

	"foodfast/internal/core/domain/model/order"
)

// AddOrderNoteCommandHandler writes the note through. It never touches status
// or drone, but still goes through the versioned update so it cannot overwrite
// a concurrent lifecycle decision.
type AddOrderNoteCommandHandler struct {
	uowFactory UoWFactory
	retry      RetryPolicy
}

func NewAddOrderNoteCommandHandler(uowFactory UoWFactory, retry RetryPolicy) AddOrderNoteCommandHandler {
	return AddOrderNoteCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

func (h AddOrderNoteCommandHandler) Handle(ctx context.Context, cmd AddOrderNoteCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var updated *order.Order
	err := h.retry.Run(ctx, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		orderRepo := uow.OrderRepository()

		current, err := orderRepo.GetByRef(ctx, cmd.OrderRef())
		if err != nil {
			return err
		}

		current.SetNote(cmd.Note())

		if err = orderRepo.Update(ctx, current); err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		updated = current
		return nil
	})

	return updated, err
}
