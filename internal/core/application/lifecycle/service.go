// Package lifecycle exposes the order operations as one service: createOrder,
// updateStatus, assignDrone and addOrderNote. It turns raw caller input into
// commands, runs the command handlers and logs what each decision did.
package lifecycle

import (
	"context"
	"strings"
	"time"

	"foodfast/internal/core/application/usecases/commands"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"

	"github.com/rs/zerolog"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.Decision, error)
	}

	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (commands.Decision, error)
	}

	AssignDroneHandler interface {
		Handle(ctx context.Context, cmd commands.AssignDroneCommand) (commands.Decision, error)
	}

	AddOrderNoteHandler interface {
		Handle(ctx context.Context, cmd commands.AddOrderNoteCommand) (*order.Order, error)
	}
)

// Handlers groups the command handlers the service delegates to.
type Handlers struct {
	CreateOrder       CreateOrderHandler
	UpdateOrderStatus UpdateOrderStatusHandler
	AssignDrone       AssignDroneHandler
	AddOrderNote      AddOrderNoteHandler
}

// NewOrder is the caller's payload for CreateOrder. Status may be empty
// (Pending) or "shipping" for administrative seeding; DroneRef is only read
// for a Shipping seed.
type NewOrder struct {
	Status   string
	DroneRef string
	Details  order.Details
}

type Service struct {
	handlers Handlers
	now      func() time.Time
	logger   zerolog.Logger
}

func NewService(handlers Handlers, logger zerolog.Logger) *Service {
	return &Service{
		handlers: handlers,
		now:      time.Now,
		logger:   logger.With().Str("component", "order_lifecycle").Logger(),
	}
}

// WithClock replaces the placement clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CreateOrder(ctx context.Context, payload NewOrder) (commands.Decision, error) {
	initial := order.Pending
	if status := strings.TrimSpace(payload.Status); status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return commands.Decision{}, err
		}
		initial = parsed
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), initial, payload.Details, payload.DroneRef, s.now().UTC())
	if err != nil {
		return commands.Decision{}, err
	}

	decision, err := s.handlers.CreateOrder.Handle(ctx, cmd)
	if err != nil {
		return commands.Decision{}, err
	}

	s.logDecision("order created", decision)
	return decision, nil
}

// UpdateStatus applies the requested status. A request the state machine
// refuses is not an error: the decision carries outcome Rejected and the
// order as it stands.
func (s *Service) UpdateStatus(ctx context.Context, orderRef, requested string) (commands.Decision, error) {
	status, err := order.ParseStatus(requested)
	if err != nil {
		return commands.Decision{}, err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderRef, status)
	if err != nil {
		return commands.Decision{}, err
	}

	decision, err := s.handlers.UpdateOrderStatus.Handle(ctx, cmd)
	if err != nil {
		return commands.Decision{}, err
	}

	s.logDecision("order status decided", decision)
	return decision, nil
}

func (s *Service) AssignDrone(ctx context.Context, orderRef, droneRef string) (commands.Decision, error) {
	cmd, err := commands.NewAssignDroneCommand(orderRef, droneRef)
	if err != nil {
		return commands.Decision{}, err
	}

	decision, err := s.handlers.AssignDrone.Handle(ctx, cmd)
	if err != nil {
		return commands.Decision{}, err
	}

	s.logDecision("drone assignment decided", decision)
	return decision, nil
}

func (s *Service) AddOrderNote(ctx context.Context, orderRef, note string) (*order.Order, error) {
	cmd, err := commands.NewAddOrderNoteCommand(orderRef, note)
	if err != nil {
		return nil, err
	}

	return s.handlers.AddOrderNote.Handle(ctx, cmd)
}

func (s *Service) logDecision(msg string, decision commands.Decision) {
	if decision.Order == nil {
		return
	}

	event := s.logger.Info()
	if decision.Degraded() {
		event = s.logger.Warn().Bool("degraded", true)
	}

	event = event.
		Stringer("order_id", decision.Order.ID()).
		Str("code", decision.Order.Code()).
		Str("status", decision.Order.Status().String()).
		Str("outcome", decision.Outcome.String())
	if droneID := decision.Order.DroneID(); droneID != nil {
		event = event.Stringer("drone_id", *droneID)
	}

	event.Msg(msg)
}
