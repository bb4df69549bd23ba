package services

import (
	"fmt"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
)

// DroneAllocator picks a drone for a Shipping order so that no drone ends up
// referenced by two Shipping orders and only Active drones are handed out.
//
// Selection algorithm:
//  1. the preferred drone, when it resolves to an Active drone no other Shipping order holds
//  2. otherwise the first free Active drone by code, then by id
//  3. otherwise none, and the order ships without a drone
//
// Example usage:
//
//	allocator := services.NewDroneAllocator()
//	fleet := services.NewFleetIndex(drones, shippingOrders)
//	assigned, err := allocator.Allocate(fleet, o, "D-07")
type DroneAllocator struct{}

func NewDroneAllocator() DroneAllocator {
	return DroneAllocator{}
}

// Reserve returns the drone the order identified by orderID should hold.
// preferredRef may be an id, a code, or empty. The boolean is false when the
// fleet has no eligible drone left.
func (a DroneAllocator) Reserve(fleet *FleetIndex, orderID kernel.UUID, preferredRef string) (kernel.UUID, bool) {
	inUse := fleet.InUseDroneIDs(orderID)

	if preferred, ok := fleet.Resolve(preferredRef); ok {
		if d, found := fleet.Drone(preferred); found && d.IsActive() {
			if _, busy := inUse[preferred]; !busy {
				return preferred, true
			}
		}
	}

	for _, id := range fleet.ActiveDroneIDs() {
		if _, busy := inUse[id]; !busy {
			return id, true
		}
	}

	return kernel.UUID{}, false
}

// Allocate runs Reserve for a Shipping order and writes the result onto it:
// the chosen drone is attached, or the drone is detached when the fleet is
// exhausted. It returns whether a drone was attached.
//
// Returns order.ErrInvalidAssignment when o is not Shipping.
func (a DroneAllocator) Allocate(fleet *FleetIndex, o *order.Order, preferredRef string) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	if !o.IsShipping() {
		return false, fmt.Errorf("%w: order %s is %s", order.ErrInvalidAssignment, o.Code(), o.Status())
	}

	droneID, ok := a.Reserve(fleet, o.ID(), preferredRef)
	if !ok {
		o.DetachDrone()
		return false, nil
	}

	if err := o.AssignDrone(droneID); err != nil {
		return false, err
	}
	return true, nil
}
