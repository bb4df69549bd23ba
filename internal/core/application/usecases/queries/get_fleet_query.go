package queries

import (
	"errors"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/pkg/guard"
)

var ErrGetFleetQueryIsNotConstructed = errors.New(
	"GetFleetQuery must be created via NewGetFleetQuery constructor",
)

// GetFleetQuery lists every drone together with the order that currently
// holds it, if any.
type GetFleetQuery struct {
	guard guard.ConstructorGuard
}

func NewGetFleetQuery() GetFleetQuery {
	return GetFleetQuery{guard: guard.NewConstructorGuard()}
}

func (q GetFleetQuery) Validate() error {
	return q.guard.Validate(ErrGetFleetQueryIsNotConstructed)
}

// DroneView is the read model of one drone in the fleet listing.
type DroneView struct {
	ID              kernel.UUID
	Code            string
	Status          string
	Battery         int
	DailyDeliveries int
	TotalDeliveries int
	Distance        float64
	HolderOrderID   *kernel.UUID
	HolderOrderCode *string
}
