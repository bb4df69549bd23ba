package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidAssignment is returned when a drone is attached to an order that is not Shipping.
	ErrInvalidAssignment = errors.New("drone can only be assigned to a shipping order")
)

// Details carries the descriptive part of an order that the lifecycle never changes
// after placement.
type Details struct {
	// Code is the human-facing reference. Empty means "use the id".
	Code            string
	RestaurantID    string
	Items           []Item
	CustomerEmail   string
	DeliveryAddress string
	Note            string
}

// Order is the aggregate root of the order lifecycle.
//
// Order follows these invariants:
//   - id and code are always set; code defaults to the id
//   - status is one of the valid statuses and changes only through Transition
//   - a drone is referenced only while Shipping, and kept after Delivered
//   - total is the sum of the item subtotals
//   - version is the store revision the aggregate was loaded at
type Order struct {
	id              kernel.UUID
	code            string
	status          Status
	droneID         *kernel.UUID
	restaurantID    string
	items           []Item
	total           decimal.Decimal
	customerEmail   string
	deliveryAddress string
	note            string
	placedAt        time.Time
	version         int

	isConstructed bool
}

// NewOrder places a new order.
//
// initial must be Pending or Shipping; Shipping is reserved for administrative
// seeding and leaves the order without a drone until AssignDrone is called.
// Any other initial status is a validation error.
//
// Example:
//
//	item, _ := order.NewItem("p1", "Pho", "r1", 2, decimal.RequireFromString("45000"))
//	o, err := order.NewOrder(kernel.NewUUID(), order.Pending, order.Details{
//	    RestaurantID:    "r1",
//	    Items:           []order.Item{item},
//	    CustomerEmail:   "an@example.com",
//	    DeliveryAddress: "12 Le Loi",
//	}, time.Now())
func NewOrder(id kernel.UUID, initial Status, details Details, placedAt time.Time) (*Order, error) {
	o := &Order{
		note:          details.Note,
		placedAt:      placedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(details.Code, id),
		o.setInitialStatus(initial),
		o.setRestaurant(details.RestaurantID),
		o.setItems(details.Items),
		o.setCustomer(details.CustomerEmail, details.DeliveryAddress),
		o.setPlacedAt(placedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. Unlike NewOrder it accepts
// every valid status and an attached drone, but still enforces the drone/status
// consistency rule so a corrupt row surfaces as an error.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	droneID *kernel.UUID,
	details Details,
	total decimal.Decimal,
	placedAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		note:          details.Note,
		total:         total,
		placedAt:      placedAt.UTC(),
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(details.Code, id),
		status.Validate(),
		validateDroneForStatus(status, droneID),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.droneID = droneID
	o.restaurantID = details.RestaurantID
	o.items = append([]Item(nil), details.Items...)
	o.customerEmail = details.CustomerEmail
	o.deliveryAddress = details.DeliveryAddress

	return o, nil
}

// Validate reports whether the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Code() string { return o.code }
func (o *Order) Status() Status { return o.status }
func (o *Order) RestaurantID() string { return o.restaurantID }
func (o *Order) Total() decimal.Decimal { return o.total }
func (o *Order) CustomerEmail() string { return o.customerEmail }
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }
func (o *Order) Note() string { return o.note }
func (o *Order) PlacedAt() time.Time { return o.placedAt }
func (o *Order) Version() int { return o.version }
func (o *Order) Items() []Item { return append([]Item(nil), o.items...) }
func (o *Order) DroneID() *kernel.UUID { return o.droneID }
func (o *Order) HasDrone() bool { return o.droneID != nil }
func (o *Order) IsShipping() bool { return o.status == Shipping }

// HoldsDrone reports whether the order currently reserves droneID, meaning it
// is Shipping with that drone attached.
func (o *Order) HoldsDrone(droneID kernel.UUID) bool {
	return o.status == Shipping && o.droneID != nil && o.droneID.IsEqual(droneID)
}

// Transition resolves requested against the current status and applies the result.
// Leaving for a status that cannot hold a drone detaches it; Shipping to Delivered
// keeps it. The returned outcome is Rejected when the request was dropped.
func (o *Order) Transition(requested Status) Outcome {
	effective, outcome := Resolve(o.status, requested)
	o.status = effective
	if !effective.CanHoldDrone() {
		o.droneID = nil
	}
	return outcome
}

// AssignDrone attaches droneID to a Shipping order, replacing any previous drone.
func (o *Order) AssignDrone(droneID kernel.UUID) error {
	if err := droneID.Validate(); err != nil {
		return err
	}
	if o.status != Shipping {
		return fmt.Errorf("%w: order %s is %s", ErrInvalidAssignment, o.code, o.status)
	}

	o.droneID = &droneID
	return nil
}

// DetachDrone clears the drone of a Shipping order when no eligible drone is left.
func (o *Order) DetachDrone() {
	if o.status == Shipping {
		o.droneID = nil
	}
}

// SetNote replaces the free-text note.
func (o *Order) SetNote(note string) {
	o.note = note
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCode(code string, id kernel.UUID) error {
	code = strings.TrimSpace(code)
	if code == "" {
		code = id.String()
	}
	o.code = code
	return nil
}

func (o *Order) setInitialStatus(status Status) error {
	if status != Pending && status != Shipping {
		return errs.NewValueIsInvalidErrorWithCause(
			"initial status is invalid",
			fmt.Errorf("%s is not a valid initial status", status),
		)
	}
	o.status = status
	return nil
}

func (o *Order) setRestaurant(restaurantID string) error {
	if strings.TrimSpace(restaurantID) == "" {
		return errs.NewValueIsRequiredError("restaurant id")
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	total := decimal.Zero
	for i, item := range items {
		if item.isZero() {
			return errs.NewValueIsInvalidErrorWithCause("items is invalid", fmt.Errorf("item %d is empty", i))
		}
		total = total.Add(item.Subtotal())
	}

	o.items = append([]Item(nil), items...)
	o.total = total
	return nil
}

func (o *Order) setCustomer(email, address string) error {
	var errList []error
	if strings.TrimSpace(email) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer email"))
	}
	if strings.TrimSpace(address) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("delivery address"))
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}

	o.customerEmail = email
	o.deliveryAddress = address
	return nil
}

func (o *Order) setPlacedAt(placedAt time.Time) error {
	if placedAt.IsZero() {
		return errs.NewValueIsRequiredError("placed at")
	}
	return nil
}

func validateDroneForStatus(status Status, droneID *kernel.UUID) error {
	if droneID == nil {
		return nil
	}
	if !status.CanHoldDrone() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a drone", status),
		)
	}
	return droneID.Validate()
}
