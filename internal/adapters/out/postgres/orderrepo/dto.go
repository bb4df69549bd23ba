// Package orderrepo persists order aggregates. Items are stored as one JSON
// column; status is stored by name so the table reads well from SQL.
package orderrepo

import (
	"time"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO represents the orders table.
type OrderDTO struct {
	ID              uuid.UUID                    `gorm:"type:uuid;primaryKey"`
	Code            string                       `gorm:"uniqueIndex;not null"`
	Status          string                       `gorm:"index;not null"`
	DroneID         *uuid.UUID                   `gorm:"type:uuid;index"`
	RestaurantID    string                       `gorm:"not null"`
	Items           datatypes.JSONSlice[ItemDTO] `gorm:"not null"`
	Total           decimal.Decimal              `gorm:"type:numeric(14,2);not null"`
	CustomerEmail   string                       `gorm:"not null"`
	DeliveryAddress string                       `gorm:"not null"`
	Note            string                       `gorm:"not null"`
	PlacedAt        time.Time                    `gorm:"not null"`
	Version         int                          `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one element of the items JSON column.
type ItemDTO struct {
	ProductID  string          `json:"productId"`
	Name       string          `json:"name"`
	Restaurant string          `json:"restaurant"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var droneID *uuid.UUID
	if id := aggregate.DroneID(); id != nil {
		raw := id.Bytes()
		droneID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ProductID:  item.ProductID(),
			Name:       item.Name(),
			Restaurant: item.Restaurant(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		Code:            aggregate.Code(),
		Status:          aggregate.Status().String(),
		DroneID:         droneID,
		RestaurantID:    aggregate.RestaurantID(),
		Items:           items,
		Total:           aggregate.Total(),
		CustomerEmail:   aggregate.CustomerEmail(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		Note:            aggregate.Note(),
		PlacedAt:        aggregate.PlacedAt(),
		Version:         aggregate.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var droneID *kernel.UUID
	if dto.DroneID != nil {
		dID, droneErr := kernel.UUIDFromBytes((*dto.DroneID)[:])
		if droneErr != nil {
			return nil, droneErr
		}
		droneID = &dID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(
			itemDTO.ProductID,
			itemDTO.Name,
			itemDTO.Restaurant,
			itemDTO.Quantity,
			itemDTO.UnitPrice,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, status, droneID, order.Details{
		Code:            dto.Code,
		RestaurantID:    dto.RestaurantID,
		Items:           items,
		CustomerEmail:   dto.CustomerEmail,
		DeliveryAddress: dto.DeliveryAddress,
		Note:            dto.Note,
	}, dto.Total, dto.PlacedAt, dto.Version)
}
