package queries

import (
	"context"
	"database/sql"

	"foodfast/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetFleetQueryHandler struct {
	db *gorm.DB
}

func NewGetFleetQueryHandler(db *gorm.DB) GetFleetQueryHandler {
	return GetFleetQueryHandler{db: db}
}

// Handle returns the fleet sorted by code. The holder is read from the
// reservation table, the same source the allocator's claims go through.
func (h GetFleetQueryHandler) Handle(ctx context.Context, query GetFleetQuery) ([]DroneView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.code,
			d.status,
			d.battery,
			d.daily_deliveries,
			d.total_deliveries,
			d.distance,
			o.id,
			o.code
		FROM drones d
		LEFT JOIN drone_reservations r ON r.drone_id = d.id
		LEFT JOIN orders o ON o.id = r.order_id
		ORDER BY d.code, d.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fleet := make([]DroneView, 0)
	for rows.Next() {
		var (
			view       DroneView
			id         uuid.UUID
			holderID   uuid.NullUUID
			holderCode sql.NullString
		)

		err = rows.Scan(
			&id,
			&view.Code,
			&view.Status,
			&view.Battery,
			&view.DailyDeliveries,
			&view.TotalDeliveries,
			&view.Distance,
			&holderID,
			&holderCode,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if holderID.Valid {
			oID, idErr := kernel.UUIDFromBytes(holderID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			view.HolderOrderID = &oID
		}
		if holderCode.Valid {
			view.HolderOrderCode = &holderCode.String
		}

		fleet = append(fleet, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fleet, nil
}
