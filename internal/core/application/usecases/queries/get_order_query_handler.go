package queries

import (
	"context"

	"foodfast/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order whose id or code equals the reference. When one
// order's id and another's code both match, the id match wins.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	ref := query.OrderRef()

	sqlText := selectOrderViews + " WHERE o.code = ?"
	args := []any{ref}

	id, parseErr := uuid.Parse(ref)
	if parseErr == nil {
		sqlText = selectOrderViews + " WHERE o.id = ? OR o.code = ?"
		args = []any{id, ref}
	}

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return OrderView{}, err
	}
	defer rows.Close()

	var (
		found bool
		match OrderView
	)
	for rows.Next() {
		view, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return OrderView{}, scanErr
		}

		if parseErr == nil && view.ID.Bytes() == id {
			match, found = view, true
			break
		}
		if !found {
			match, found = view, true
		}
	}

	if err = rows.Err(); err != nil {
		return OrderView{}, err
	}
	if !found {
		return OrderView{}, errs.NewObjectNotFoundError("order", ref)
	}

	return match, nil
}
