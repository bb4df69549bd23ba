package queries

import (
	"errors"
	"strings"

	"foodfast/internal/pkg/errs"
	"foodfast/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order by store id or human code.
type GetOrderQuery struct {
	orderRef string
	guard    guard.ConstructorGuard
}

func NewGetOrderQuery(orderRef string) (GetOrderQuery, error) {
	orderRef = strings.TrimSpace(orderRef)
	if orderRef == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("order ref")
	}

	return GetOrderQuery{orderRef: orderRef, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderRef() string {
	return q.orderRef
}
