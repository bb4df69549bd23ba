package http

import (
	"context"
	"errors"
	"net/http"

	"foodfast/internal/core/application/lifecycle"
	"foodfast/internal/core/application/usecases/commands"
	"foodfast/internal/core/application/usecases/queries"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// OrderLifecycle is the order side of the engine as the HTTP adapter sees it.
type OrderLifecycle interface {
	CreateOrder(ctx context.Context, payload lifecycle.NewOrder) (commands.Decision, error)
	UpdateStatus(ctx context.Context, orderRef, requested string) (commands.Decision, error)
	AssignDrone(ctx context.Context, orderRef, droneRef string) (commands.Decision, error)
	AddOrderNote(ctx context.Context, orderRef, note string) (*order.Order, error)
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	orders OrderLifecycle

	// Command handlers
	registerDroneHandler commands.RegisterDroneCommandHandler
	updateDroneHandler   commands.UpdateDroneCommandHandler
	deleteDroneHandler   commands.DeleteDroneCommandHandler

	// Query handlers
	getOrdersHandler queries.GetOrdersQueryHandler
	getOrderHandler  queries.GetOrderQueryHandler
	getFleetHandler  queries.GetFleetQueryHandler

	logger zerolog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	orders OrderLifecycle,
	registerDroneHandler commands.RegisterDroneCommandHandler,
	updateDroneHandler commands.UpdateDroneCommandHandler,
	deleteDroneHandler commands.DeleteDroneCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getFleetHandler queries.GetFleetQueryHandler,
	logger zerolog.Logger,
) *Server {
	return &Server{
		orders:               orders,
		registerDroneHandler: registerDroneHandler,
		updateDroneHandler:   updateDroneHandler,
		deleteDroneHandler:   deleteDroneHandler,
		getOrdersHandler:     getOrdersHandler,
		getOrderHandler:      getOrderHandler,
		getFleetHandler:      getFleetHandler,
		logger:               logger.With().Str("component", "http").Logger(),
	}
}

// GetOrders handles GET /api/v1/orders - lists orders, newest first.
func (s *Server) GetOrders(ctx echo.Context, params GetOrdersParams) error {
	status := ""
	if params.Status != nil {
		status = *params.Status
	}

	query, err := queries.NewGetOrdersQuery(status)
	if err != nil {
		return s.fail(ctx, err, "Invalid status filter")
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	response := make([]Order, len(orders))
	for i, view := range orders {
		response[i] = toOrderFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := bind(ctx, &body); err != nil {
		return s.fail(ctx, err, "Invalid request body")
	}

	items := make([]order.Item, 0, len(body.Items))
	var itemErrs []error
	for _, payload := range body.Items {
		item, err := order.NewItem(payload.ProductID, payload.Name, payload.Restaurant, payload.Quantity, payload.UnitPrice)
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(itemErrs...); err != nil {
		return s.fail(ctx, err, "Invalid order items")
	}

	decision, err := s.orders.CreateOrder(ctx.Request().Context(), lifecycle.NewOrder{
		Status:   body.Status,
		DroneRef: body.DroneRef,
		Details: order.Details{
			Code:            body.Code,
			RestaurantID:    body.RestaurantID,
			Items:           items,
			CustomerEmail:   body.CustomerEmail,
			DeliveryAddress: body.DeliveryAddress,
			Note:            body.Note,
		},
	})
	if err != nil {
		return s.fail(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, toDecision(decision))
}

// GetOrder handles GET /api/v1/orders/{orderRef}.
func (s *Server) GetOrder(ctx echo.Context, orderRef string) error {
	query, err := queries.NewGetOrderQuery(orderRef)
	if err != nil {
		return s.fail(ctx, err, "Invalid order reference")
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrderFromView(view))
}

// UpdateOrderStatus handles PUT /api/v1/orders/{orderRef}/status. A refused
// transition is still 200; the body reports outcome "rejected".
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderRef string) error {
	var body StatusChange
	if err := bind(ctx, &body); err != nil {
		return s.fail(ctx, err, "Invalid request body")
	}

	decision, err := s.orders.UpdateStatus(ctx.Request().Context(), orderRef, body.Status)
	if err != nil {
		return s.fail(ctx, err, "Failed to update order status")
	}

	return ctx.JSON(http.StatusOK, toDecision(decision))
}

// AssignDrone handles PUT /api/v1/orders/{orderRef}/drone.
func (s *Server) AssignDrone(ctx echo.Context, orderRef string) error {
	var body DroneAssignment
	if err := bind(ctx, &body); err != nil {
		return s.fail(ctx, err, "Invalid request body")
	}

	decision, err := s.orders.AssignDrone(ctx.Request().Context(), orderRef, body.DroneRef)
	if err != nil {
		return s.fail(ctx, err, "Failed to assign drone")
	}

	return ctx.JSON(http.StatusOK, toDecision(decision))
}

// AddOrderNote handles PUT /api/v1/orders/{orderRef}/note.
func (s *Server) AddOrderNote(ctx echo.Context, orderRef string) error {
	var body OrderNote
	if err := bind(ctx, &body); err != nil {
		return s.fail(ctx, err, "Invalid request body")
	}

	updated, err := s.orders.AddOrderNote(ctx.Request().Context(), orderRef, body.Note)
	if err != nil {
		return s.fail(ctx, err, "Failed to save note")
	}

	return ctx.JSON(http.StatusOK, toOrder(updated))
}

// GetDrones handles GET /api/v1/drones - the fleet with current holders.
func (s *Server) GetDrones(ctx echo.Context) error {
	fleet, err := s.getFleetHandler.Handle(ctx.Request().Context(), queries.NewGetFleetQuery())
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve drones")
	}

	response := make([]Drone, len(fleet))
	for i, view := range fleet {
		response[i] = toDroneFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// RegisterDrone handles POST /api/v1/drones.
func (s *Server) RegisterDrone(ctx echo.Context) error {
	var body DronePatch
	if err := bind(ctx, &body); err != nil {
		return s.fail(ctx, err, "Invalid request body")
	}

	patch, err := body.toCommand()
	if err != nil {
		return s.fail(ctx, err, "Invalid drone data")
	}

	cmd, err := commands.NewRegisterDroneCommand(kernel.NewUUID(), body.Code, patch)
	if err != nil {
		return s.fail(ctx, err, "Invalid drone data")
	}

	registered, err := s.registerDroneHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to register drone")
	}

	return ctx.JSON(http.StatusCreated, toDrone(registered))
}

// UpdateDrone handles PATCH /api/v1/drones/{droneRef}.
func (s *Server) UpdateDrone(ctx echo.Context, droneRef string) error {
	var body DronePatch
	if err := bind(ctx, &body); err != nil {
		return s.fail(ctx, err, "Invalid request body")
	}

	patch, err := body.toCommand()
	if err != nil {
		return s.fail(ctx, err, "Invalid drone data")
	}

	cmd, err := commands.NewUpdateDroneCommand(droneRef, patch)
	if err != nil {
		return s.fail(ctx, err, "Invalid drone data")
	}

	change, err := s.updateDroneHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update drone")
	}

	return ctx.JSON(http.StatusOK, toFleetChange(change))
}

// DeleteDrone handles DELETE /api/v1/drones/{droneRef}.
func (s *Server) DeleteDrone(ctx echo.Context, droneRef string) error {
	cmd, err := commands.NewDeleteDroneCommand(droneRef)
	if err != nil {
		return s.fail(ctx, err, "Invalid drone reference")
	}

	change, err := s.deleteDroneHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to delete drone")
	}

	return ctx.JSON(http.StatusOK, toFleetChange(change))
}

// bind decodes and validates the request body.
func bind(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	if err := ctx.Validate(body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}

// fail maps an application error onto a status code. Client errors carry the
// error text; server errors are logged and answered with msg only.
func (s *Server) fail(ctx echo.Context, err error, msg string) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error().
			Err(err).
			Str("method", ctx.Request().Method).
			Str("path", ctx.Path()).
			Msg(msg)
		return ctx.JSON(code, Error{Code: code, Message: msg})
	}

	return ctx.JSON(code, Error{Code: code, Message: msg + ": " + err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidAssignment),
		errors.Is(err, errs.ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
