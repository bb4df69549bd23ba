package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers of the API document.
type ServerInterface interface {
	// GetOrders handles GET /api/v1/orders.
	GetOrders(ctx echo.Context, params GetOrdersParams) error
	// CreateOrder handles POST /api/v1/orders.
	CreateOrder(ctx echo.Context) error
	// GetOrder handles GET /api/v1/orders/{orderRef}.
	GetOrder(ctx echo.Context, orderRef string) error
	// UpdateOrderStatus handles PUT /api/v1/orders/{orderRef}/status.
	UpdateOrderStatus(ctx echo.Context, orderRef string) error
	// AssignDrone handles PUT /api/v1/orders/{orderRef}/drone.
	AssignDrone(ctx echo.Context, orderRef string) error
	// AddOrderNote handles PUT /api/v1/orders/{orderRef}/note.
	AddOrderNote(ctx echo.Context, orderRef string) error
	// GetDrones handles GET /api/v1/drones.
	GetDrones(ctx echo.Context) error
	// RegisterDrone handles POST /api/v1/drones.
	RegisterDrone(ctx echo.Context) error
	// UpdateDrone handles PATCH /api/v1/drones/{droneRef}.
	UpdateDrone(ctx echo.Context, droneRef string) error
	// DeleteDrone handles DELETE /api/v1/drones/{droneRef}.
	DeleteDrone(ctx echo.Context, droneRef string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathParam(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	var params GetOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.GetOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderRef, err := bindPathParam(ctx, "orderRef")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderRef)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	orderRef, err := bindPathParam(ctx, "orderRef")
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, orderRef)
}

func (w *ServerInterfaceWrapper) AssignDrone(ctx echo.Context) error {
	orderRef, err := bindPathParam(ctx, "orderRef")
	if err != nil {
		return err
	}
	return w.Handler.AssignDrone(ctx, orderRef)
}

func (w *ServerInterfaceWrapper) AddOrderNote(ctx echo.Context) error {
	orderRef, err := bindPathParam(ctx, "orderRef")
	if err != nil {
		return err
	}
	return w.Handler.AddOrderNote(ctx, orderRef)
}

func (w *ServerInterfaceWrapper) GetDrones(ctx echo.Context) error {
	return w.Handler.GetDrones(ctx)
}

func (w *ServerInterfaceWrapper) RegisterDrone(ctx echo.Context) error {
	return w.Handler.RegisterDrone(ctx)
}

func (w *ServerInterfaceWrapper) UpdateDrone(ctx echo.Context) error {
	droneRef, err := bindPathParam(ctx, "droneRef")
	if err != nil {
		return err
	}
	return w.Handler.UpdateDrone(ctx, droneRef)
}

func (w *ServerInterfaceWrapper) DeleteDrone(ctx echo.Context) error {
	droneRef, err := bindPathParam(ctx, "droneRef")
	if err != nil {
		return err
	}
	return w.Handler.DeleteDrone(ctx, droneRef)
}

// EchoRouter is implemented by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET("/api/v1/orders", wrapper.GetOrders)
	router.POST("/api/v1/orders", wrapper.CreateOrder)
	router.GET("/api/v1/orders/:orderRef", wrapper.GetOrder)
	router.PUT("/api/v1/orders/:orderRef/status", wrapper.UpdateOrderStatus)
	router.PUT("/api/v1/orders/:orderRef/drone", wrapper.AssignDrone)
	router.PUT("/api/v1/orders/:orderRef/note", wrapper.AddOrderNote)
	router.GET("/api/v1/drones", wrapper.GetDrones)
	router.POST("/api/v1/drones", wrapper.RegisterDrone)
	router.PATCH("/api/v1/drones/:droneRef", wrapper.UpdateDrone)
	router.DELETE("/api/v1/drones/:droneRef", wrapper.DeleteDrone)
}
