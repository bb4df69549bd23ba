package order

import (
	"fmt"
	"strings"

	"foodfast/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Preparing ──> Shipping ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// Every state may also be requested again, which leaves the order unchanged.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a placed order.
	Pending

	// Preparing indicates the restaurant accepted the order and is cooking it.
	Preparing

	// Shipping indicates the order is on its way. It is the only status
	// that claims a drone from the fleet.
	Shipping

	// Delivered is terminal. The drone id is kept as a delivery record.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Preparing: "preparing",
		Shipping:  "shipping",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Preparing: "preparing",
		Shipping:  "shipping",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// ParseStatus converts the wire name of a status ("pending", "shipping", ...)
// into a Status. Matching is case-insensitive and ignores surrounding spaces.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
//
// Unknown (0) and any value outside the declared constants are invalid.
// It is used on statuses coming from the database or the API.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanHoldDrone reports whether an order in this status may reference a drone.
func (s Status) CanHoldDrone() bool {
	return s == Shipping || s == Delivered
}
