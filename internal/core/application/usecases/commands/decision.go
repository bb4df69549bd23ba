package commands

import (
	"context"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/core/domain/services"
	"foodfast/internal/core/ports"
)

// Decision is what a lifecycle operation actually did to an order. Outcome
// describes the status request only; DroneChanged reports whether the drone
// reference moved, which a Shipping recompute can do under an Unchanged outcome.
type Decision struct {
	Order        *order.Order
	Outcome      order.Outcome
	DroneChanged bool
}

// Degraded reports a Shipping order left without a drone because the fleet had
// no eligible drone at decision time.
func (d Decision) Degraded() bool {
	return d.Order != nil && d.Order.IsShipping() && !d.Order.HasDrone()
}

// loadFleet builds the fleet index from one read of the drones and the
// Shipping orders, inside the caller's transaction.
func loadFleet(ctx context.Context, uow UoW) (*services.FleetIndex, error) {
	drones, err := uow.DroneRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	shipping, err := uow.OrderRepository().GetAllShipping(ctx)
	if err != nil {
		return nil, err
	}

	return services.NewFleetIndex(drones, shipping), nil
}

// currentDroneRef is the preferred drone for a recompute: the one already attached.
func currentDroneRef(o *order.Order) string {
	if id := o.DroneID(); id != nil {
		return id.String()
	}
	return ""
}

// syncReservation makes the reservation table agree with the order: whatever
// the order held is released and, if it is Shipping with a drone, that drone is
// claimed again. A drone claimed by another order surfaces as a conflict.
func syncReservation(ctx context.Context, reservations ports.ReservationRepository, o *order.Order) error {
	if err := reservations.ReleaseByOrder(ctx, o.ID()); err != nil {
		return err
	}

	if !o.IsShipping() || o.DroneID() == nil {
		return nil
	}

	return reservations.Claim(ctx, ports.Reservation{
		DroneID: *o.DroneID(),
		OrderID: o.ID(),
	})
}

// recomputeHolder re-runs the Shipping decision for the order holding droneID,
// after that drone changed or disappeared. It returns the holder decision, or
// nil when the drone was free.
func recomputeHolder(ctx context.Context, uow UoW, droneID kernel.UUID) (*Decision, error) {
	reservations := uow.ReservationRepository()

	holderID, held, err := reservations.HolderOf(ctx, droneID)
	if err != nil || !held {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	holder, err := orderRepo.Get(ctx, holderID)
	if err != nil {
		return nil, err
	}

	fleet, err := loadFleet(ctx, uow)
	if err != nil {
		return nil, err
	}

	before := assignmentOf(holder)
	outcome := holder.Transition(order.Shipping)
	if holder.IsShipping() {
		if _, err = services.NewDroneAllocator().Allocate(fleet, holder, currentDroneRef(holder)); err != nil {
			return nil, err
		}
	}

	if !before.changed(holder) {
		return &Decision{Order: holder, Outcome: outcome}, nil
	}
	decision := &Decision{Order: holder, Outcome: outcome, DroneChanged: before.droneChanged(holder)}

	if err = orderRepo.Update(ctx, holder); err != nil {
		return nil, err
	}

	if err = syncReservation(ctx, reservations, holder); err != nil {
		return nil, err
	}

	return decision, nil
}

// assignment captures the part of an order a lifecycle decision may change.
type assignment struct {
	status  order.Status
	droneID *kernel.UUID
}

func assignmentOf(o *order.Order) assignment {
	return assignment{status: o.Status(), droneID: o.DroneID()}
}

// changed reports whether o no longer matches the captured assignment.
func (a assignment) changed(o *order.Order) bool {
	return a.status != o.Status() || a.droneChanged(o)
}

func (a assignment) droneChanged(o *order.Order) bool {
	current := o.DroneID()
	if a.droneID == nil || current == nil {
		return a.droneID != current
	}
	return !a.droneID.IsEqual(*current)
}
