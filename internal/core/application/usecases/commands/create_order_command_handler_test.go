package commands_test

import (
	"errors"
	"testing"

	"foodfast/internal/core/application/usecases/commands"
	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/core/ports"
	"foodfast/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("defaults to pending", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Unknown, details(t, "A"), " D1 ", placedAt)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, cmd.Initial())
		assert.Equal(t, "D1", cmd.DroneRef())
		assert.Equal(t, placedAt, cmd.PlacedAt())
	})

	t.Run("accepts shipping seed", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Shipping, details(t, "A"), "", placedAt)

		require.NoError(t, err)
		assert.Equal(t, order.Shipping, cmd.Initial())
	})

	t.Run("rejects other initial statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Preparing, order.Delivered, order.Cancelled} {
			_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), status, details(t, "A"), "", placedAt)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, status.String())
		}
	})

	t.Run("rejects zero id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.UUID{}, order.Pending, details(t, "A"), "", placedAt)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestCreateOrderCommandHandler_Pending(t *testing.T) {
	ctx := t.Context()
	e := newEnv()

	notFound := errs.NewObjectNotFoundError("order", "A")
	mock.InOrder(
		e.uow.On("Begin", ctx).Return(nil).Once(),
		e.orders.On("GetByRef", ctx, "A").Return(nil, notFound).Once(),
		e.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		e.reservations.On("ReleaseByOrder", ctx, mock.Anything).Return(nil).Once(),
		e.uow.On("Commit", ctx).Return(nil).Once(),
	)

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, order.Pending, details(t, "A"), "", placedAt)
	require.NoError(t, err)

	decision, err := commands.NewCreateOrderCommandHandler(e.factory, noRetry()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Applied, decision.Outcome)
	assert.True(t, decision.Order.ID().IsEqual(id))
	assert.Equal(t, order.Pending, decision.Order.Status())
	assert.Equal(t, "70000", decision.Order.Total().String())
	e.drones.AssertNotCalled(t, "GetAll", mock.Anything)
	e.assert(t)
}

func TestCreateOrderCommandHandler_ShippingSeedReservesDrone(t *testing.T) {
	ctx := t.Context()
	e := newEnv()

	d1 := newDrone(t, "D1", drone.Active)
	d2 := newDrone(t, "D2", drone.Active)
	a := restoreOrder(t, "A", order.Shipping, idPtr(d1.ID()))
	id := kernel.NewUUID()

	notFound := errs.NewObjectNotFoundError("order", "B")
	mock.InOrder(
		e.uow.On("Begin", ctx).Return(nil).Once(),
		e.orders.On("GetByRef", ctx, "B").Return(nil, notFound).Once(),
		e.drones.On("GetAll", ctx).Return([]*drone.Drone{d1, d2}, nil).Once(),
		e.orders.On("GetAllShipping", ctx).Return([]*order.Order{a}, nil).Once(),
		e.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		e.reservations.On("ReleaseByOrder", ctx, id).Return(nil).Once(),
		e.reservations.On("Claim", ctx, ports.Reservation{DroneID: d2.ID(), OrderID: id}).Return(nil).Once(),
		e.uow.On("Commit", ctx).Return(nil).Once(),
	)

	// D1 is requested but already held by A.
	cmd, err := commands.NewCreateOrderCommand(id, order.Shipping, details(t, "B"), "D1", placedAt)
	require.NoError(t, err)

	decision, err := commands.NewCreateOrderCommandHandler(e.factory, noRetry()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, decision.Order.HoldsDrone(d2.ID()))
	e.assert(t)
}

func TestCreateOrderCommandHandler_ShippingSeedWithoutDrone(t *testing.T) {
	ctx := t.Context()
	e := newEnv()

	notFound := errs.NewObjectNotFoundError("order", "B")
	e.uow.On("Begin", ctx).Return(nil).Once()
	e.orders.On("GetByRef", ctx, "B").Return(nil, notFound).Once()
	e.drones.On("GetAll", ctx).Return([]*drone.Drone{newDrone(t, "D1", drone.Charging)}, nil).Once()
	e.orders.On("GetAllShipping", ctx).Return([]*order.Order{}, nil).Once()
	e.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	e.reservations.On("ReleaseByOrder", ctx, mock.Anything).Return(nil).Once()
	e.uow.On("Commit", ctx).Return(nil).Once()

	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Shipping, details(t, "B"), "", placedAt)
	decision, err := commands.NewCreateOrderCommandHandler(e.factory, noRetry()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, decision.Degraded())
	e.reservations.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything)
	e.assert(t)
}

func TestCreateOrderCommandHandler_CodeTaken(t *testing.T) {
	ctx := t.Context()
	e := newEnv()

	e.uow.On("Begin", ctx).Return(nil).Once()
	e.orders.On("GetByRef", ctx, "A").Return(restoreOrder(t, "A", order.Pending, nil), nil).Once()

	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Pending, details(t, "A"), "", placedAt)
	_, err := commands.NewCreateOrderCommandHandler(e.factory, quickRetry(3)).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	e.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	e.assert(t)
}

func TestCreateOrderCommandHandler_LookupError(t *testing.T) {
	ctx := t.Context()
	e := newEnv()

	e.uow.On("Begin", ctx).Return(nil).Once()
	e.orders.On("GetByRef", ctx, "A").Return(nil, errors.New("connection reset")).Once()

	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Pending, details(t, "A"), "", placedAt)
	_, err := commands.NewCreateOrderCommandHandler(e.factory, noRetry()).Handle(ctx, cmd)

	require.EqualError(t, err, "connection reset")
	e.assert(t)
}

func TestCreateOrderCommandHandler_InvalidDetails(t *testing.T) {
	e := newEnv()

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Pending, order.Details{Code: "A"}, "", placedAt)
	require.NoError(t, err)

	_, err = commands.NewCreateOrderCommandHandler(e.factory, noRetry()).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	e.uow.AssertNotCalled(t, "Begin", mock.Anything)
}
