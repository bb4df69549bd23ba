package commands

import (
	"context"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/core/domain/services"
	"foodfast/internal/core/ports"
)

// ReconcileReport summarises a reservation rebuild.
type ReconcileReport struct {
	// Reservations is the number of rows in the rebuilt table.
	Reservations int
	// Reassigned lists the orders whose drone had to change.
	Reassigned []*order.Order
}

// ReconcileReservationsCommandHandler rebuilds the reservation table.
//
// Shipping orders are visited oldest first. The first order referencing an
// Active drone keeps it. Later orders referencing the same drone, and orders
// referencing a drone that is gone or no longer Active, go through the
// allocator against the orders already settled. Orders shipping without a
// drone are left alone.
type ReconcileReservationsCommandHandler struct {
	uowFactory UoWFactory
	retry      RetryPolicy
}

func NewReconcileReservationsCommandHandler(uowFactory UoWFactory, retry RetryPolicy) ReconcileReservationsCommandHandler {
	return ReconcileReservationsCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

func (h ReconcileReservationsCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileReservationsCommand,
) (ReconcileReport, error) {
	if err := cmd.Validate(); err != nil {
		return ReconcileReport{}, err
	}

	var report ReconcileReport
	err := h.retry.Run(ctx, func(ctx context.Context) error {
		var err error
		report, err = h.handleOnce(ctx)
		return err
	})
	return report, err
}

func (h ReconcileReservationsCommandHandler) handleOnce(ctx context.Context) (ReconcileReport, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReconcileReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	drones, err := uow.DroneRepository().GetAll(ctx)
	if err != nil {
		return ReconcileReport{}, err
	}

	shipping, err := orderRepo.GetAllShipping(ctx)
	if err != nil {
		return ReconcileReport{}, err
	}

	known := services.NewFleetIndex(drones, nil)
	claimed := make(map[kernel.UUID]struct{}, len(shipping))

	settled := make([]*order.Order, 0, len(shipping))
	var losers []*order.Order
	for _, o := range shipping {
		droneID := o.DroneID()
		if droneID == nil {
			continue
		}

		d, exists := known.Drone(*droneID)
		_, taken := claimed[*droneID]
		if !exists || !d.IsActive() || taken {
			losers = append(losers, o)
			continue
		}

		claimed[*droneID] = struct{}{}
		settled = append(settled, o)
	}

	allocator := services.NewDroneAllocator()
	report := ReconcileReport{}
	for _, o := range losers {
		fleet := services.NewFleetIndex(drones, settled)
		if _, err = allocator.Allocate(fleet, o, ""); err != nil {
			return ReconcileReport{}, err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return ReconcileReport{}, err
		}

		report.Reassigned = append(report.Reassigned, o)
		if o.HasDrone() {
			settled = append(settled, o)
		}
	}

	reservations := make([]ports.Reservation, 0, len(settled))
	for _, o := range settled {
		reservations = append(reservations, ports.Reservation{DroneID: *o.DroneID(), OrderID: o.ID()})
	}

	if err = uow.ReservationRepository().ReplaceAll(ctx, reservations); err != nil {
		return ReconcileReport{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ReconcileReport{}, err
	}

	report.Reservations = len(reservations)
	return report, nil
}
