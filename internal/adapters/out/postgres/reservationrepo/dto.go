// Package reservationrepo persists the drone reservation table: one row per
// drone held by a Shipping order. The primary key on drone_id and the unique
// key on order_id make a double booking impossible in the store itself.
package reservationrepo

import (
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/ports"

	"github.com/google/uuid"
)

type ReservationDTO struct {
	DroneID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
}

func (ReservationDTO) TableName() string {
	return "drone_reservations"
}

func fromDomain(reservation ports.Reservation) ReservationDTO {
	return ReservationDTO{
		DroneID: reservation.DroneID.Bytes(),
		OrderID: reservation.OrderID.Bytes(),
	}
}

func toDomain(dto ReservationDTO) (ports.Reservation, error) {
	droneID, err := kernel.UUIDFromBytes(dto.DroneID[:])
	if err != nil {
		return ports.Reservation{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.Reservation{}, err
	}

	return ports.Reservation{DroneID: droneID, OrderID: orderID}, nil
}
