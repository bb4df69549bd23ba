// Package kernel provides the shared value objects of the domain model.
//
// The package includes:
//   - UUID: the store-assigned identity of orders and drones
//
// Human-facing codes are plain strings owned by each aggregate; the kernel only
// models the canonical identity every code resolves to.
package kernel
