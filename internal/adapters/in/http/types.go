package http

import (
	"time"

	"foodfast/internal/core/application/usecases/commands"
	"foodfast/internal/core/application/usecases/queries"
	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GetOrdersParams defines parameters for GetOrders.
type GetOrdersParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

type Item struct {
	ProductID  string          `json:"productId" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	Restaurant string          `json:"restaurant"`
	Quantity   int             `json:"quantity" validate:"min=1"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

type NewOrder struct {
	Code            string `json:"code" validate:"omitempty,max=64"`
	Status          string `json:"status" validate:"omitempty,oneof=pending shipping"`
	DroneRef        string `json:"droneRef"`
	RestaurantID    string `json:"restaurantId" validate:"required"`
	Items           []Item `json:"items" validate:"required,min=1,dive"`
	CustomerEmail   string `json:"customerEmail" validate:"required,email"`
	DeliveryAddress string `json:"deliveryAddress" validate:"required"`
	Note            string `json:"note" validate:"max=1000"`
}

type StatusChange struct {
	Status string `json:"status" validate:"required"`
}

type DroneAssignment struct {
	DroneRef string `json:"droneRef" validate:"required"`
}

type OrderNote struct {
	Note string `json:"note" validate:"max=1000"`
}

type DronePatch struct {
	Code            string   `json:"code" validate:"omitempty,max=64"`
	Status          *string  `json:"status" validate:"omitempty,oneof=active maintenance charging unavailable"`
	Battery         *int     `json:"battery" validate:"omitempty,min=0,max=100"`
	DailyDeliveries *int     `json:"dailyDeliveries" validate:"omitempty,min=0"`
	TotalDeliveries *int     `json:"totalDeliveries" validate:"omitempty,min=0"`
	Distance        *float64 `json:"distance" validate:"omitempty,min=0"`
}

type Order struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Status          string    `json:"status"`
	DroneID         *string   `json:"droneId"`
	DroneCode       *string   `json:"droneCode,omitempty"`
	RestaurantID    string    `json:"restaurantId"`
	Items           []Item    `json:"items"`
	Total           string    `json:"total"`
	CustomerEmail   string    `json:"customerEmail"`
	DeliveryAddress string    `json:"deliveryAddress"`
	Note            string    `json:"note"`
	PlacedAt        time.Time `json:"placedAt"`
}

type Decision struct {
	Status       string  `json:"status"`
	DroneID      *string `json:"droneId"`
	Outcome      string  `json:"outcome"`
	DroneChanged bool    `json:"droneChanged"`
	Degraded     bool    `json:"degraded"`
	Order        Order   `json:"order"`
}

type Drone struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Status          string  `json:"status"`
	Battery         int     `json:"battery"`
	DailyDeliveries int     `json:"dailyDeliveries"`
	TotalDeliveries int     `json:"totalDeliveries"`
	Distance        float64 `json:"distance"`
	HolderOrderID   *string `json:"holderOrderId"`
	HolderOrderCode *string `json:"holderOrderCode,omitempty"`
}

type FleetChange struct {
	Drone  Drone     `json:"drone"`
	Holder *Decision `json:"holder"`
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toOrder(o *order.Order) Order {
	items := make([]Item, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, Item{
			ProductID:  item.ProductID(),
			Name:       item.Name(),
			Restaurant: item.Restaurant(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		})
	}

	return Order{
		ID:              o.ID().String(),
		Code:            o.Code(),
		Status:          o.Status().String(),
		DroneID:         idString(o.DroneID()),
		RestaurantID:    o.RestaurantID(),
		Items:           items,
		Total:           o.Total().StringFixed(2),
		CustomerEmail:   o.CustomerEmail(),
		DeliveryAddress: o.DeliveryAddress(),
		Note:            o.Note(),
		PlacedAt:        o.PlacedAt(),
	}
}

func toOrderFromView(view queries.OrderView) Order {
	items := make([]Item, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, Item(item))
	}

	return Order{
		ID:              view.ID.String(),
		Code:            view.Code,
		Status:          view.Status,
		DroneID:         idString(view.DroneID),
		DroneCode:       view.DroneCode,
		RestaurantID:    view.RestaurantID,
		Items:           items,
		Total:           view.Total.StringFixed(2),
		CustomerEmail:   view.CustomerEmail,
		DeliveryAddress: view.DeliveryAddress,
		Note:            view.Note,
		PlacedAt:        view.PlacedAt,
	}
}

func toDecision(d commands.Decision) Decision {
	return Decision{
		Status:       d.Order.Status().String(),
		DroneID:      idString(d.Order.DroneID()),
		Outcome:      d.Outcome.String(),
		DroneChanged: d.DroneChanged,
		Degraded:     d.Degraded(),
		Order:        toOrder(d.Order),
	}
}

func toDrone(d *drone.Drone) Drone {
	return Drone{
		ID:              d.ID().String(),
		Code:            d.Code(),
		Status:          d.Status().String(),
		Battery:         d.Battery(),
		DailyDeliveries: d.DailyDeliveries(),
		TotalDeliveries: d.TotalDeliveries(),
		Distance:        d.Distance(),
	}
}

func toDroneFromView(view queries.DroneView) Drone {
	return Drone{
		ID:              view.ID.String(),
		Code:            view.Code,
		Status:          view.Status,
		Battery:         view.Battery,
		DailyDeliveries: view.DailyDeliveries,
		TotalDeliveries: view.TotalDeliveries,
		Distance:        view.Distance,
		HolderOrderID:   idString(view.HolderOrderID),
		HolderOrderCode: view.HolderOrderCode,
	}
}

func toFleetChange(change commands.FleetChange) FleetChange {
	response := FleetChange{Drone: toDrone(change.Drone)}
	if change.Holder != nil && change.Holder.Order != nil {
		holder := toDecision(*change.Holder)
		response.Holder = &holder
	}
	return response
}

func (p DronePatch) toCommand() (commands.DronePatch, error) {
	patch := commands.DronePatch{
		Battery:         p.Battery,
		DailyDeliveries: p.DailyDeliveries,
		TotalDeliveries: p.TotalDeliveries,
		Distance:        p.Distance,
	}

	if p.Status != nil {
		status, err := drone.ParseStatus(*p.Status)
		if err != nil {
			return commands.DronePatch{}, err
		}
		patch.Status = &status
	}

	return patch, nil
}
