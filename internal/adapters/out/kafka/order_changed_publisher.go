// Package kafka publishes order-changed events for every committed order write.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// OrderChangedEvent is the message value on the order-changed topic. The
// message key is the order id, so every event of one order lands on one
// partition in commit order.
type OrderChangedEvent struct {
	EventID    string    `json:"eventId"`
	OrderID    string    `json:"orderId"`
	Code       string    `json:"code"`
	Status     string    `json:"status"`
	DroneID    *string   `json:"droneId"`
	Version    int       `json:"version"`
	OccurredAt time.Time `json:"occurredAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderChangedPublisher struct {
	writer messageWriter
	now    func() time.Time
}

func NewOrderChangedPublisher(brokers []string, topic string) *OrderChangedPublisher {
	return &OrderChangedPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		now: time.Now,
	}
}

func (p *OrderChangedPublisher) PublishOrderChanged(ctx context.Context, aggregate *order.Order) error {
	event := OrderChangedEvent{
		EventID:    kernel.NewUUID().String(),
		OrderID:    aggregate.ID().String(),
		Code:       aggregate.Code(),
		Status:     aggregate.Status().String(),
		Version:    aggregate.Version(),
		OccurredAt: p.now().UTC(),
	}
	if droneID := aggregate.DroneID(); droneID != nil {
		id := droneID.String()
		event.DroneID = &id
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode order changed event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
}

func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}
