package reservationrepo_test

import (
	"testing"
	"time"

	"foodfast/internal/adapters/out/postgres/dronerepo"
	"foodfast/internal/adapters/out/postgres/orderrepo"
	"foodfast/internal/adapters/out/postgres/reservationrepo"
	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/core/ports"
	"foodfast/internal/pkg/errs"
	"foodfast/internal/pkg/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// storeOrders persists orders so reservations can reference them.
func storeOrders(t *testing.T, db *gorm.DB, codes ...string) []kernel.UUID {
	t.Helper()
	repo := orderrepo.NewGormOrderRepository(db, noopTracker{})

	item, err := order.NewItem("p1", "Banh mi", "r1", 1, decimal.NewFromInt(25000))
	require.NoError(t, err)

	ids := make([]kernel.UUID, 0, len(codes))
	for _, code := range codes {
		o, err := order.NewOrder(kernel.NewUUID(), order.Shipping, order.Details{
			Code:            code,
			RestaurantID:    "r1",
			Items:           []order.Item{item},
			CustomerEmail:   "mai@example.com",
			DeliveryAddress: "1 Nguyen Hue",
		}, time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Add(t.Context(), o))
		ids = append(ids, o.ID())
	}
	return ids
}

// storeDrones persists Active drones so reservations can claim them.
func storeDrones(t *testing.T, db *gorm.DB, codes ...string) []kernel.UUID {
	t.Helper()
	repo := dronerepo.NewGormDroneRepository(db)

	ids := make([]kernel.UUID, 0, len(codes))
	for _, code := range codes {
		d, err := drone.NewDrone(kernel.NewUUID(), code)
		require.NoError(t, err)
		require.NoError(t, repo.Add(t.Context(), d))
		ids = append(ids, d.ID())
	}
	return ids
}

func TestGormReservationRepository_ClaimIsExclusive(t *testing.T) {
	ctx := t.Context()
	db := testutil.OpenSQLite(t)
	repo := reservationrepo.NewGormReservationRepository(db)
	orders := storeOrders(t, db, "A", "B")
	drones := storeDrones(t, db, "D1", "D2")
	d1, d2 := drones[0], drones[1]

	require.NoError(t, repo.Claim(ctx, ports.Reservation{DroneID: d1, OrderID: orders[0]}))

	t.Run("drone held by another order", func(t *testing.T) {
		err := repo.Claim(ctx, ports.Reservation{DroneID: d1, OrderID: orders[1]})
		require.ErrorIs(t, err, errs.ErrVersionConflict)
	})

	t.Run("order already holding a drone", func(t *testing.T) {
		err := repo.Claim(ctx, ports.Reservation{DroneID: d2, OrderID: orders[0]})
		require.ErrorIs(t, err, errs.ErrVersionConflict)
	})

	holder, held, err := repo.HolderOf(ctx, d1)
	require.NoError(t, err)
	require.True(t, held)
	assert.True(t, holder.IsEqual(orders[0]))

	_, held, err = repo.HolderOf(ctx, d2)
	require.NoError(t, err)
	assert.False(t, held)
}

func TestGormReservationRepository_Release(t *testing.T) {
	ctx := t.Context()
	db := testutil.OpenSQLite(t)
	repo := reservationrepo.NewGormReservationRepository(db)
	orders := storeOrders(t, db, "A", "B")
	drones := storeDrones(t, db, "D1", "D2")
	d1, d2 := drones[0], drones[1]

	require.NoError(t, repo.Claim(ctx, ports.Reservation{DroneID: d1, OrderID: orders[0]}))
	require.NoError(t, repo.Claim(ctx, ports.Reservation{DroneID: d2, OrderID: orders[1]}))

	require.NoError(t, repo.ReleaseByOrder(ctx, orders[0]))
	require.NoError(t, repo.ReleaseByOrder(ctx, orders[0]), "releasing nothing is fine")
	require.NoError(t, repo.ReleaseByDrone(ctx, d2))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Once released, the drone can be claimed by the other order.
	require.NoError(t, repo.Claim(ctx, ports.Reservation{DroneID: d1, OrderID: orders[1]}))
}

func TestGormReservationRepository_ReplaceAll(t *testing.T) {
	ctx := t.Context()
	db := testutil.OpenSQLite(t)
	repo := reservationrepo.NewGormReservationRepository(db)
	orders := storeOrders(t, db, "A", "B")
	drones := storeDrones(t, db, "D1", "D2")
	d1, d2 := drones[0], drones[1]

	require.NoError(t, repo.Claim(ctx, ports.Reservation{DroneID: d1, OrderID: orders[0]}))

	replacement := []ports.Reservation{
		{DroneID: d2, OrderID: orders[0]},
		{DroneID: d1, OrderID: orders[1]},
	}
	require.NoError(t, repo.ReplaceAll(ctx, replacement))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, replacement, all)

	require.NoError(t, repo.ReplaceAll(ctx, nil))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGormReservationRepository_ClaimNeedsAnActiveDrone(t *testing.T) {
	ctx := t.Context()
	db := testutil.OpenSQLite(t)
	repo := reservationrepo.NewGormReservationRepository(db)
	orders := storeOrders(t, db, "A", "B")
	d1 := storeDrones(t, db, "D1")[0]

	drones := dronerepo.NewGormDroneRepository(db)
	stored, err := drones.Get(ctx, d1)
	require.NoError(t, err)
	require.NoError(t, stored.ChangeStatus(drone.Maintenance))
	require.NoError(t, drones.Update(ctx, stored))

	err = repo.Claim(ctx, ports.Reservation{DroneID: d1, OrderID: orders[0]})
	require.ErrorIs(t, err, errs.ErrVersionConflict)

	err = repo.Claim(ctx, ports.Reservation{DroneID: kernel.NewUUID(), OrderID: orders[1]})
	require.ErrorIs(t, err, errs.ErrVersionConflict)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
