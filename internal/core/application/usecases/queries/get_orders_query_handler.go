package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads the order listing with plain SQL.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle returns the matching orders sorted by placement time, newest first.
// Orders placed at the same instant are ordered by id so pages are stable.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := selectOrderViews
	args := make([]any, 0, 1)
	if status := query.Status(); status != nil {
		sqlText += " WHERE o.status = ?"
		args = append(args, status.String())
	}
	sqlText += " ORDER BY o.placed_at DESC, o.id DESC"

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
