package commands

import (
	"errors"

	"foodfast/internal/pkg/guard"
)

var ErrReconcileReservationsCommandIsNotConstructed = errors.New(
	"ReconcileReservationsCommand must be created via NewReconcileReservationsCommand constructor",
)

// ReconcileReservationsCommand rebuilds the reservation table from the Shipping
// orders. It runs at startup so a store edited out of band converges.
type ReconcileReservationsCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileReservationsCommand() ReconcileReservationsCommand {
	return ReconcileReservationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c ReconcileReservationsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileReservationsCommandIsNotConstructed)
}
