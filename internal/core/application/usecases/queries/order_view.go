// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and read the tables directly, returning read
// models shaped for the HTTP adapter.
package queries

import (
	"database/sql"
	"time"

	"foodfast/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderView is the read model of one order.
type OrderView struct {
	ID              kernel.UUID
	Code            string
	Status          string
	DroneID         *kernel.UUID
	DroneCode       *string
	RestaurantID    string
	Items           []ItemView
	Total           decimal.Decimal
	CustomerEmail   string
	DeliveryAddress string
	Note            string
	PlacedAt        time.Time
}

// ItemView mirrors the JSON layout of the items column.
type ItemView struct {
	ProductID  string          `json:"productId"`
	Name       string          `json:"name"`
	Restaurant string          `json:"restaurant"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

const selectOrderViews = `
	SELECT
		o.id,
		o.code,
		o.status,
		o.drone_id,
		d.code,
		o.restaurant_id,
		o.items,
		o.total,
		o.customer_email,
		o.delivery_address,
		o.note,
		o.placed_at
	FROM orders o
	LEFT JOIN drones d ON d.id = o.drone_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderView(rows rowScanner) (OrderView, error) {
	var (
		view      OrderView
		id        uuid.UUID
		droneID   uuid.NullUUID
		droneCode sql.NullString
		items     datatypes.JSONSlice[ItemView]
	)

	err := rows.Scan(
		&id,
		&view.Code,
		&view.Status,
		&droneID,
		&droneCode,
		&view.RestaurantID,
		&items,
		&view.Total,
		&view.CustomerEmail,
		&view.DeliveryAddress,
		&view.Note,
		&view.PlacedAt,
	)
	if err != nil {
		return OrderView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}

	if droneID.Valid {
		dID, idErr := kernel.UUIDFromBytes(droneID.UUID[:])
		if idErr != nil {
			return OrderView{}, idErr
		}
		view.DroneID = &dID
	}
	if droneCode.Valid {
		view.DroneCode = &droneCode.String
	}

	view.Items = make([]ItemView, 0, len(items))
	view.Items = append(view.Items, items...)

	return view, nil
}
