package queries

import (
	"errors"
	"strings"

	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists orders, newest first, optionally narrowed to one status.
//
// Example:
//
//	query, err := NewGetOrdersQuery("shipping")
//	if err != nil {
//	    return err
//	}
//
//	orders, err := NewGetOrdersQueryHandler(db).Handle(ctx, query)
type GetOrdersQuery struct {
	status *order.Status
	guard  guard.ConstructorGuard
}

// NewGetOrdersQuery creates the listing query. An empty status lists every order.
func NewGetOrdersQuery(status string) (GetOrdersQuery, error) {
	query := GetOrdersQuery{guard: guard.NewConstructorGuard()}

	status = strings.TrimSpace(status)
	if status == "" {
		return query, nil
	}

	parsed, err := order.ParseStatus(status)
	if err != nil {
		return GetOrdersQuery{}, err
	}
	query.status = &parsed

	return query, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the filter, or nil when every status is listed.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}
