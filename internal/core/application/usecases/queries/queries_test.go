package queries_test

import (
	"context"
	"testing"
	"time"

	"foodfast/internal/adapters/out/postgres/dronerepo"
	"foodfast/internal/adapters/out/postgres/orderrepo"
	"foodfast/internal/adapters/out/postgres/reservationrepo"
	"foodfast/internal/core/application/usecases/queries"
	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/core/ports"
	"foodfast/internal/pkg/errs"
	"foodfast/internal/pkg/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type QueriesTestSuite struct {
	suite.Suite
	db      *gorm.DB
	base    time.Time
	d1, d2  *drone.Drone
	pending *order.Order
	ship    *order.Order
	done    *order.Order
}

func (suite *QueriesTestSuite) SetupTest() {
	suite.db = testutil.OpenSQLite(suite.T())
	suite.base = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	ctx := context.Background()

	drones := dronerepo.NewGormDroneRepository(suite.db)
	var err error
	suite.d2, err = drone.NewDrone(kernel.NewUUID(), "D2")
	suite.Require().NoError(err)
	suite.d1, err = drone.NewDrone(kernel.NewUUID(), "D1")
	suite.Require().NoError(err)
	suite.Require().NoError(drones.Add(ctx, suite.d2))
	suite.Require().NoError(drones.Add(ctx, suite.d1))

	orders := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	suite.pending = suite.newOrder("P-1", order.Pending, suite.base)
	suite.ship = suite.newOrder("S-1", order.Shipping, suite.base.Add(time.Hour))
	suite.Require().NoError(suite.ship.AssignDrone(suite.d1.ID()))
	suite.done = suite.newOrder("X-1", order.Pending, suite.base.Add(2*time.Hour))
	suite.done.Transition(order.Cancelled)

	for _, o := range []*order.Order{suite.pending, suite.ship, suite.done} {
		suite.Require().NoError(orders.Add(ctx, o))
	}

	reservations := reservationrepo.NewGormReservationRepository(suite.db)
	suite.Require().NoError(reservations.Claim(ctx, ports.Reservation{DroneID: suite.d1.ID(), OrderID: suite.ship.ID()}))
}

func (suite *QueriesTestSuite) newOrder(code string, initial order.Status, placedAt time.Time) *order.Order {
	item, err := order.NewItem("p1", "Com tam", "r1", 3, decimal.NewFromInt(40000))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), initial, order.Details{
		Code:            code,
		RestaurantID:    "r1",
		Items:           []order.Item{item},
		CustomerEmail:   "minh@example.com",
		DeliveryAddress: "7 Hai Ba Trung",
	}, placedAt)
	suite.Require().NoError(err)
	return o
}

func (suite *QueriesTestSuite) TestGetOrders_NewestFirst() {
	query, err := queries.NewGetOrdersQuery("")
	suite.Require().NoError(err)

	result, err := queries.NewGetOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("X-1", result[0].Code)
	suite.Equal("S-1", result[1].Code)
	suite.Equal("P-1", result[2].Code)
	suite.Equal("cancelled", result[0].Status)
}

func (suite *QueriesTestSuite) TestGetOrders_StatusFilter() {
	query, err := queries.NewGetOrdersQuery("shipping")
	suite.Require().NoError(err)

	result, err := queries.NewGetOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	view := result[0]
	suite.Equal("S-1", view.Code)
	suite.Require().NotNil(view.DroneID)
	suite.True(view.DroneID.IsEqual(suite.d1.ID()))
	suite.Require().NotNil(view.DroneCode)
	suite.Equal("D1", *view.DroneCode)
	suite.Require().Len(view.Items, 1)
	suite.Equal(3, view.Items[0].Quantity)
	suite.True(view.Total.Equal(decimal.NewFromInt(120000)))
	suite.True(view.PlacedAt.Equal(suite.base.Add(time.Hour)))
}

func (suite *QueriesTestSuite) TestGetOrders_UnknownStatus() {
	_, err := queries.NewGetOrdersQuery("lost")
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *QueriesTestSuite) TestGetOrders_NotConstructed() {
	result, err := queries.NewGetOrdersQueryHandler(suite.db).Handle(context.Background(), queries.GetOrdersQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetOrdersQueryIsNotConstructed)
	suite.Nil(result)
}

func (suite *QueriesTestSuite) TestGetOrder_ByCodeAndID() {
	handler := queries.NewGetOrderQueryHandler(suite.db)

	byCode, err := queries.NewGetOrderQuery("P-1")
	suite.Require().NoError(err)
	view, err := handler.Handle(context.Background(), byCode)
	suite.Require().NoError(err)
	suite.True(view.ID.IsEqual(suite.pending.ID()))
	suite.Nil(view.DroneID)
	suite.Nil(view.DroneCode)

	byID, err := queries.NewGetOrderQuery(suite.ship.ID().String())
	suite.Require().NoError(err)
	view, err = handler.Handle(context.Background(), byID)
	suite.Require().NoError(err)
	suite.Equal("S-1", view.Code)
}

func (suite *QueriesTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery("nope")
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesTestSuite) TestGetOrder_RefRequired() {
	_, err := queries.NewGetOrderQuery("  ")
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func (suite *QueriesTestSuite) TestGetFleet_WithHolders() {
	result, err := queries.NewGetFleetQueryHandler(suite.db).Handle(context.Background(), queries.NewGetFleetQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal("D1", result[0].Code)
	suite.Equal("active", result[0].Status)
	suite.Equal(100, result[0].Battery)
	suite.Require().NotNil(result[0].HolderOrderID)
	suite.True(result[0].HolderOrderID.IsEqual(suite.ship.ID()))
	suite.Equal("S-1", *result[0].HolderOrderCode)

	suite.Equal("D2", result[1].Code)
	suite.Nil(result[1].HolderOrderID)
	suite.Nil(result[1].HolderOrderCode)
}

func (suite *QueriesTestSuite) TestGetFleet_ContextCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := queries.NewGetFleetQueryHandler(suite.db).Handle(ctx, queries.NewGetFleetQuery())

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}
