// Package services provides domain services that span the Order and Drone aggregates.
//
// The package includes:
//   - FleetIndex: a read-only snapshot of the fleet and the Shipping orders holding drones
//   - DroneAllocator: picks a conflict-free Active drone for a Shipping order
//
// Both are pure: they perform no I/O and are rebuilt from one consistent read
// for every lifecycle decision.
package services
