// Package commands contains the write side of the lifecycle engine: every
// operation that changes an order, a drone or the reservation table.
// All commands follow a consistent pattern: constructor validation, one
// transaction per attempt, and a retry of the whole decision on write conflicts.
package commands

import (
	"context"

	"foodfast/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DroneRepoFactory interface {
		DroneRepository() ports.DroneRepository
	}

	ReservationRepoFactory interface {
		ReservationRepository() ports.ReservationRepository
	}

	// DroneUoW manages transactions for drone-only operations such as the daily counter reset.
	DroneUoW interface {
		TxManager
		DroneRepoFactory
	}

	// DroneUoWFactory creates new drone unit of work instances.
	DroneUoWFactory interface {
		Create() DroneUoW
	}

	// UoW manages transactions across orders, drones and reservations. Every
	// lifecycle decision reads the fleet and writes the order and its
	// reservation through one UoW.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   reservations := uow.ReservationRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		DroneRepoFactory
		ReservationRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
