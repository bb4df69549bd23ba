package services

import (
	"cmp"
	"slices"
	"strings"

	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
)

type holding struct {
	orderID kernel.UUID
	droneID kernel.UUID
}

// FleetIndex is a read-only view over the fleet and the drones referenced by
// Shipping orders, taken from a single consistent read.
//
// Drones are kept ordered by code, then by id, which is the allocation order.
//
// Example usage:
//
//	fleet := services.NewFleetIndex(drones, shippingOrders)
//	id, ok := fleet.Resolve("D-07")
//	busy := fleet.InUseDroneIDs(o.ID())
type FleetIndex struct {
	drones   []*drone.Drone
	byID     map[kernel.UUID]*drone.Drone
	byCode   map[string]*drone.Drone
	holdings []holding
}

// NewFleetIndex builds the index. Orders that are not Shipping or carry no drone
// are ignored, so callers may pass any order slice.
func NewFleetIndex(drones []*drone.Drone, orders []*order.Order) *FleetIndex {
	sorted := make([]*drone.Drone, 0, len(drones))
	for _, d := range drones {
		if d.Validate() == nil {
			sorted = append(sorted, d)
		}
	}
	slices.SortFunc(sorted, func(a, b *drone.Drone) int {
		return cmp.Or(strings.Compare(a.Code(), b.Code()), a.ID().Compare(b.ID()))
	})

	f := &FleetIndex{
		drones: sorted,
		byID:   make(map[kernel.UUID]*drone.Drone, len(sorted)),
		byCode: make(map[string]*drone.Drone, len(sorted)),
	}
	for _, d := range sorted {
		f.byID[d.ID()] = d
		if _, taken := f.byCode[d.Code()]; !taken {
			f.byCode[d.Code()] = d
		}
	}

	for _, o := range orders {
		if o.Validate() != nil || !o.IsShipping() || o.DroneID() == nil {
			continue
		}
		f.holdings = append(f.holdings, holding{orderID: o.ID(), droneID: *o.DroneID()})
	}

	return f
}

// Drones returns the fleet in allocation order.
func (f *FleetIndex) Drones() []*drone.Drone {
	return slices.Clone(f.drones)
}

// ActiveDroneIDs returns the ids of Active drones in allocation order.
func (f *FleetIndex) ActiveDroneIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(f.drones))
	for _, d := range f.drones {
		if d.IsActive() {
			ids = append(ids, d.ID())
		}
	}
	return ids
}

// InUseDroneIDs returns the drones referenced by Shipping orders other than
// excludingOrderID. Pass the zero UUID to exclude nothing.
func (f *FleetIndex) InUseDroneIDs(excludingOrderID kernel.UUID) map[kernel.UUID]struct{} {
	inUse := make(map[kernel.UUID]struct{}, len(f.holdings))
	for _, h := range f.holdings {
		if h.orderID.IsEqual(excludingOrderID) {
			continue
		}
		inUse[h.droneID] = struct{}{}
	}
	return inUse
}

// Resolve maps a store id or a human code to the canonical drone id.
// Ids take precedence over codes.
func (f *FleetIndex) Resolve(ref string) (kernel.UUID, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return kernel.UUID{}, false
	}

	if id, err := kernel.UUIDFromString(ref); err == nil {
		if _, ok := f.byID[id]; ok {
			return id, true
		}
	}

	if d, ok := f.byCode[ref]; ok {
		return d.ID(), true
	}

	return kernel.UUID{}, false
}

// Drone returns the drone with the given id.
func (f *FleetIndex) Drone(id kernel.UUID) (*drone.Drone, bool) {
	d, ok := f.byID[id]
	return d, ok
}

// HolderOf returns the Shipping order currently holding droneID.
func (f *FleetIndex) HolderOf(droneID kernel.UUID) (kernel.UUID, bool) {
	for _, h := range f.holdings {
		if h.droneID.IsEqual(droneID) {
			return h.orderID, true
		}
	}
	return kernel.UUID{}, false
}
