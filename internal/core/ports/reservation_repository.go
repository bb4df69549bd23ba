package ports

import (
	"context"

	"foodfast/internal/core/domain/model/kernel"
)

// Reservation binds a drone to the Shipping order holding it.
type Reservation struct {
	DroneID kernel.UUID
	OrderID kernel.UUID
}

// ReservationRepository manages the drone reservation table. A drone can be
// held by at most one order and an order holds at most one drone; the store
// enforces both with unique keys.
type ReservationRepository interface {
	// Claim records that orderID holds droneID. Claiming a drone held by another
	// order, or a drone that is gone or no longer Active, fails with an
	// errs.VersionConflictError so the decision is retried.
	Claim(ctx context.Context, reservation Reservation) error

	// ReleaseByOrder drops whatever reservation orderID holds. Releasing nothing is not an error.
	ReleaseByOrder(ctx context.Context, orderID kernel.UUID) error

	// ReleaseByDrone drops the reservation on droneID, if any.
	ReleaseByDrone(ctx context.Context, droneID kernel.UUID) error

	// HolderOf returns the order holding droneID. The boolean is false when the drone is free.
	HolderOf(ctx context.Context, droneID kernel.UUID) (kernel.UUID, bool, error)

	// GetAll returns every reservation.
	GetAll(ctx context.Context) ([]Reservation, error)

	// ReplaceAll discards the table content and stores reservations instead.
	ReplaceAll(ctx context.Context, reservations []Reservation) error
}
