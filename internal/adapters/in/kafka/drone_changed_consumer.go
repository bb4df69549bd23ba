// Package kafka consumes drone-changed events published by fleet operations
// and turns each one into a reservation recompute for that drone.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"foodfast/internal/core/application/usecases/commands"
	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/pkg/errs"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// DroneChangedEvent is the message value on the drone-changed topic. When
// Status is set it is applied to the drone before the recompute.
type DroneChangedEvent struct {
	DroneID string  `json:"droneId"`
	Status  *string `json:"status,omitempty"`
}

type ReconcileDroneHandler interface {
	Handle(ctx context.Context, cmd commands.ReconcileDroneCommand) (*commands.Decision, error)
}

type UpdateDroneHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateDroneCommand) (commands.FleetChange, error)
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type DroneChangedConsumer struct {
	reader    messageReader
	reconcile ReconcileDroneHandler
	update    UpdateDroneHandler
	logger    zerolog.Logger
}

func NewDroneChangedConsumer(
	brokers []string,
	groupID string,
	topic string,
	reconcile ReconcileDroneHandler,
	update UpdateDroneHandler,
	logger zerolog.Logger,
) *DroneChangedConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return newDroneChangedConsumer(reader, reconcile, update, logger)
}

func newDroneChangedConsumer(
	reader messageReader,
	reconcile ReconcileDroneHandler,
	update UpdateDroneHandler,
	logger zerolog.Logger,
) *DroneChangedConsumer {
	return &DroneChangedConsumer{
		reader:    reader,
		reconcile: reconcile,
		update:    update,
		logger:    logger.With().Str("component", "drone_changed_consumer").Logger(),
	}
}

// Consume reads messages until ctx is cancelled or the reader is closed.
// Every message is committed after it was handled, including the ones that
// failed: a drone left out of step is caught by the next recompute or by the
// reservation rebuild at startup.
func (c *DroneChangedConsumer) Consume(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("fetch drone changed message: %w", err)
		}

		if err = c.Handle(ctx, msg.Value); err != nil {
			c.logger.Error().
				Err(err).
				Int("partition", msg.Partition).
				Int64("offset", msg.Offset).
				Msg("drone changed event failed")
		}

		if err = c.reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("commit drone changed message: %w", err)
		}
	}
}

// Handle applies one encoded DroneChangedEvent.
func (c *DroneChangedConsumer) Handle(ctx context.Context, payload []byte) error {
	var event DroneChangedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("drone changed event", err)
	}

	droneID, err := kernel.UUIDFromString(event.DroneID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("droneId", err)
	}

	if event.Status != nil {
		return c.applyStatus(ctx, droneID, *event.Status)
	}

	cmd, err := commands.NewReconcileDroneCommand(droneID)
	if err != nil {
		return err
	}

	decision, err := c.reconcile.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	c.logHolder(droneID, decision)
	return nil
}

func (c *DroneChangedConsumer) applyStatus(ctx context.Context, droneID kernel.UUID, raw string) error {
	status, err := drone.ParseStatus(raw)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateDroneCommand(droneID.String(), commands.DronePatch{Status: &status})
	if err != nil {
		return err
	}

	change, err := c.update.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	c.logHolder(droneID, change.Holder)
	return nil
}

func (c *DroneChangedConsumer) logHolder(droneID kernel.UUID, decision *commands.Decision) {
	event := c.logger.Info().Stringer("drone_id", droneID)
	if decision == nil {
		event.Msg("drone changed, not reserved")
		return
	}

	if decision.Degraded() {
		event = c.logger.Warn().Stringer("drone_id", droneID).Bool("degraded", true)
	}
	event.
		Stringer("order_id", decision.Order.ID()).
		Str("outcome", decision.Outcome.String()).
		Msg("drone changed, holder recomputed")
}

func (c *DroneChangedConsumer) Close() error {
	return c.reader.Close()
}
