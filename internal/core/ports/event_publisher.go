package ports

import (
	"context"

	"foodfast/internal/core/domain/model/order"
)

// OrderEventPublisher announces committed order changes to other services.
type OrderEventPublisher interface {
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error
}
