package ports

import (
	"context"

	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"
)

// DroneRepository defines the persistence contract for drone aggregates.
type DroneRepository interface {
	// Add persists a new drone. Its code must be unique.
	Add(ctx context.Context, aggregate *drone.Drone) error

	Update(ctx context.Context, aggregate *drone.Drone) error

	// Delete removes a drone. Returns errs.ObjectNotFoundError when it does not exist.
	Delete(ctx context.Context, id kernel.UUID) error

	Get(ctx context.Context, id kernel.UUID) (*drone.Drone, error)

	// GetByRef retrieves a drone by store id or human code.
	GetByRef(ctx context.Context, ref string) (*drone.Drone, error)

	// GetAll retrieves the whole fleet ordered by code.
	GetAll(ctx context.Context) ([]*drone.Drone, error)

	// ResetDailyDeliveries zeroes the daily counter of every drone and returns
	// how many drones were touched.
	ResetDailyDeliveries(ctx context.Context) (int64, error)
}
