package order

import (
	"errors"
	"fmt"
	"strings"

	"foodfast/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places a price may carry. Totals are
// stored at this scale.
const PriceScale = 2

// Item is one order line. It is a value object; the zero value is invalid.
type Item struct {
	productID  string
	name       string
	restaurant string
	quantity   int
	unitPrice  decimal.Decimal
}

// NewItem validates and creates an order line.
// Quantity must be at least 1 and the unit price must be a non-negative amount
// with at most PriceScale decimal places.
func NewItem(productID, name, restaurant string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	var errList []error
	if strings.TrimSpace(productID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("item product id"))
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("item name"))
	}
	if quantity < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"item quantity is invalid",
			fmt.Errorf("%d is less than 1", quantity),
		))
	}
	if unitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"item price is invalid",
			fmt.Errorf("%s is negative", unitPrice),
		))
	}
	if !unitPrice.Equal(unitPrice.Truncate(PriceScale)) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"item price is invalid",
			fmt.Errorf("%s has more than %d decimal places", unitPrice, PriceScale),
		))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{
		productID:  productID,
		name:       name,
		restaurant: restaurant,
		quantity:   quantity,
		unitPrice:  unitPrice,
	}, nil
}

func (i Item) ProductID() string { return i.productID }
func (i Item) Name() string { return i.name }
func (i Item) Restaurant() string { return i.restaurant }
func (i Item) Quantity() int { return i.quantity }
func (i Item) UnitPrice() decimal.Decimal { return i.unitPrice }

// Subtotal is the unit price times the quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i Item) isZero() bool {
	return i.productID == "" && i.quantity == 0
}
