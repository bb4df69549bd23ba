package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func shippingOrder(t *testing.T, droneID *kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem("p1", "Goi cuon", "r1", 4, decimal.NewFromInt(12000))
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), order.Shipping, droneID, order.Details{
		Code:            "A-7",
		RestaurantID:    "r1",
		Items:           []order.Item{item},
		CustomerEmail:   "thu@example.com",
		DeliveryAddress: "9 Dong Khoi",
	}, decimal.NewFromInt(48000), time.Now(), 3)
	require.NoError(t, err)
	return o
}

func TestOrderChangedPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	at := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	publisher := &OrderChangedPublisher{writer: writer, now: func() time.Time { return at }}

	droneID := kernel.NewUUID()
	o := shippingOrder(t, &droneID)

	require.NoError(t, publisher.PublishOrderChanged(context.Background(), o))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, o.ID().String(), string(msg.Key))

	var event OrderChangedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, o.ID().String(), event.OrderID)
	assert.Equal(t, "A-7", event.Code)
	assert.Equal(t, "shipping", event.Status)
	require.NotNil(t, event.DroneID)
	assert.Equal(t, droneID.String(), *event.DroneID)
	assert.Equal(t, 3, event.Version)
	assert.True(t, event.OccurredAt.Equal(at))
	assert.NotEmpty(t, event.EventID)
}

func TestOrderChangedPublisher_DegradedOrderHasNullDrone(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &OrderChangedPublisher{writer: writer, now: time.Now}

	require.NoError(t, publisher.PublishOrderChanged(context.Background(), shippingOrder(t, nil)))

	require.Len(t, writer.messages, 1)
	assert.Contains(t, string(writer.messages[0].Value), `"droneId":null`)
}

func TestOrderChangedPublisher_WriteError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker down")}
	publisher := &OrderChangedPublisher{writer: writer, now: time.Now}

	err := publisher.PublishOrderChanged(context.Background(), shippingOrder(t, nil))

	require.EqualError(t, err, "broker down")
}

func TestOrderChangedPublisher_Close(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &OrderChangedPublisher{writer: writer}

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}
