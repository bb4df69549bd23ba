// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding identity, line items, status and drone reservation
//   - Status: the lifecycle states Pending, Preparing, Shipping, Delivered and Cancelled
//   - Resolve: the pure transition rule deciding which status a request actually produces
//   - Item: an immutable order line with a decimal unit price
//
// Key business rules:
//   - Orders start Pending; Shipping is accepted as an initial status for administrative seeding
//   - Delivered and Cancelled are terminal
//   - A drone may be attached only while the order is Shipping; Delivered keeps it as a record
//   - Requests outside the transition table are dropped, never raised as errors
package order
