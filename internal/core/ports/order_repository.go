// Package ports defines the contracts between the lifecycle core and its adapters:
// repositories for orders, drones and drone reservations, the unit of work that
// binds them to one transaction, and the outbound event publisher.
package ports

import (
	"context"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate. Its code must be unique.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The write is conditional on
	// the version the aggregate was loaded at; a concurrent writer makes it fail
	// with an errs.VersionConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByRef retrieves an order by store id or human code.
	// Returns errs.ObjectNotFoundError when nothing matches.
	GetByRef(ctx context.Context, ref string) (*order.Order, error)

	// GetAllShipping retrieves every order in Shipping status, the input of the fleet index.
	GetAllShipping(ctx context.Context) ([]*order.Order, error)
}
