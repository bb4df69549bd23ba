package commands_test

import (
	"context"
	"testing"
	"time"

	"foodfast/internal/core/application/usecases/commands"
	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByRef(ctx context.Context, ref string) (*order.Order, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllShipping(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDroneRepository struct{ mock.Mock }

func (m *MockDroneRepository) Add(ctx context.Context, d *drone.Drone) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDroneRepository) Update(ctx context.Context, d *drone.Drone) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDroneRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDroneRepository) Get(ctx context.Context, id kernel.UUID) (*drone.Drone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drone.Drone), args.Error(1)
}

func (m *MockDroneRepository) GetByRef(ctx context.Context, ref string) (*drone.Drone, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drone.Drone), args.Error(1)
}

func (m *MockDroneRepository) GetAll(ctx context.Context) ([]*drone.Drone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*drone.Drone), args.Error(1)
}

func (m *MockDroneRepository) ResetDailyDeliveries(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockReservationRepository struct{ mock.Mock }

func (m *MockReservationRepository) Claim(ctx context.Context, r ports.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) ReleaseByOrder(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockReservationRepository) ReleaseByDrone(ctx context.Context, droneID kernel.UUID) error {
	args := m.Called(ctx, droneID)
	return args.Error(0)
}

func (m *MockReservationRepository) HolderOf(ctx context.Context, droneID kernel.UUID) (kernel.UUID, bool, error) {
	args := m.Called(ctx, droneID)
	return args.Get(0).(kernel.UUID), args.Bool(1), args.Error(2)
}

func (m *MockReservationRepository) GetAll(ctx context.Context) ([]ports.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ReplaceAll(ctx context.Context, rs []ports.Reservation) error {
	args := m.Called(ctx, rs)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DroneRepository() ports.DroneRepository {
	args := m.Called()
	return args.Get(0).(ports.DroneRepository)
}

func (m *MockUoW) ReservationRepository() ports.ReservationRepository {
	args := m.Called()
	return args.Get(0).(ports.ReservationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDroneUoWFactory struct{ mock.Mock }

func (m *MockDroneUoWFactory) Create() commands.DroneUoW {
	args := m.Called()
	return args.Get(0).(commands.DroneUoW)
}

// env wires a unit of work whose repositories are mocks. Repository accessors
// may be called any number of times; tests set expectations on the repositories.
type env struct {
	orders       *MockOrderRepository
	drones       *MockDroneRepository
	reservations *MockReservationRepository
	uow          *MockUoW
	factory      *MockUoWFactory
	droneFactory *MockDroneUoWFactory
}

func newEnv() *env {
	e := &env{
		orders:       new(MockOrderRepository),
		drones:       new(MockDroneRepository),
		reservations: new(MockReservationRepository),
		uow:          new(MockUoW),
		factory:      new(MockUoWFactory),
		droneFactory: new(MockDroneUoWFactory),
	}
	e.uow.On("OrderRepository").Return(e.orders).Maybe()
	e.uow.On("DroneRepository").Return(e.drones).Maybe()
	e.uow.On("ReservationRepository").Return(e.reservations).Maybe()
	e.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	e.factory.On("Create").Return(e.uow).Maybe()
	e.droneFactory.On("Create").Return(e.uow).Maybe()
	return e
}

func (e *env) assert(t *testing.T) {
	t.Helper()
	e.orders.AssertExpectations(t)
	e.drones.AssertExpectations(t)
	e.reservations.AssertExpectations(t)
	e.uow.AssertExpectations(t)
	e.factory.AssertExpectations(t)
}

func noRetry() commands.RetryPolicy {
	return commands.RetryPolicy{MaxAttempts: 1}
}

func quickRetry(attempts int) commands.RetryPolicy {
	return commands.RetryPolicy{MaxAttempts: attempts, InitialInterval: time.Millisecond}
}

var placedAt = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func details(t *testing.T, code string) order.Details {
	t.Helper()
	item, err := order.NewItem("p1", "Bun cha", "r1", 2, decimal.NewFromInt(35000))
	require.NoError(t, err)
	return order.Details{
		Code:            code,
		RestaurantID:    "r1",
		Items:           []order.Item{item},
		CustomerEmail:   "chi@example.com",
		DeliveryAddress: "7 Trang Tien",
	}
}

func restoreOrder(t *testing.T, code string, status order.Status, droneID *kernel.UUID) *order.Order {
	t.Helper()
	return restoreOrderWithID(t, kernel.NewUUID(), code, status, droneID)
}

// restoreOrderWithID returns a fresh copy of a stored order, as a retried
// attempt would read it again.
func restoreOrderWithID(
	t *testing.T,
	id kernel.UUID,
	code string,
	status order.Status,
	droneID *kernel.UUID,
) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(id, status, droneID, details(t, code),
		decimal.NewFromInt(70000), placedAt, 1)
	require.NoError(t, err)
	return o
}

func newDrone(t *testing.T, code string, status drone.Status) *drone.Drone {
	t.Helper()
	d, err := drone.NewDrone(kernel.NewUUID(), code)
	require.NoError(t, err)
	require.NoError(t, d.ChangeStatus(status))
	return d
}

func idPtr(id kernel.UUID) *kernel.UUID {
	return &id
}
