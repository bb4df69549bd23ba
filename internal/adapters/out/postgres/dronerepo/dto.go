// Package dronerepo persists the drone fleet.
package dronerepo

import (
	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DroneDTO represents the drones table.
type DroneDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code            string    `gorm:"uniqueIndex;not null"`
	Status          string    `gorm:"not null"`
	Battery         int       `gorm:"not null"`
	DailyDeliveries int       `gorm:"not null"`
	TotalDeliveries int       `gorm:"not null"`
	Distance        float64   `gorm:"not null"`
}

func (DroneDTO) TableName() string {
	return "drones"
}

func fromDomain(aggregate *drone.Drone) DroneDTO {
	return DroneDTO{
		ID:              aggregate.ID().Bytes(),
		Code:            aggregate.Code(),
		Status:          aggregate.Status().String(),
		Battery:         aggregate.Battery(),
		DailyDeliveries: aggregate.DailyDeliveries(),
		TotalDeliveries: aggregate.TotalDeliveries(),
		Distance:        aggregate.Distance(),
	}
}

func toDomain(dto DroneDTO) (*drone.Drone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := drone.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return drone.RestoreDrone(
		id,
		dto.Code,
		status,
		dto.Battery,
		dto.DailyDeliveries,
		dto.TotalDeliveries,
		dto.Distance,
	)
}
