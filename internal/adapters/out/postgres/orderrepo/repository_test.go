package orderrepo_test

import (
	"testing"
	"time"

	"foodfast/internal/adapters/out/postgres/orderrepo"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/pkg/errs"
	"foodfast/internal/pkg/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tracker struct {
	ids []kernel.UUID
}

func (t *tracker) TrackAggregate(id kernel.UUID, _ any) {
	t.ids = append(t.ids, id)
}

func newOrder(t *testing.T, code string, initial order.Status, placedAt time.Time) *order.Order {
	t.Helper()
	pho, err := order.NewItem("p1", "Pho bo", "r1", 2, decimal.RequireFromString("45000.50"))
	require.NoError(t, err)
	tea, err := order.NewItem("p2", "Tra da", "r1", 1, decimal.NewFromInt(5000))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), initial, order.Details{
		Code:            code,
		RestaurantID:    "r1",
		Items:           []order.Item{pho, tea},
		CustomerEmail:   "an@example.com",
		DeliveryAddress: "12 Le Loi",
		Note:            "no onions",
	}, placedAt)
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_AddAndGet(t *testing.T) {
	ctx := t.Context()
	tr := &tracker{}
	repo := orderrepo.NewGormOrderRepository(testutil.OpenSQLite(t), tr)

	placed := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	o := newOrder(t, "A-100", order.Pending, placed)
	require.NoError(t, repo.Add(ctx, o))

	got, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)

	assert.True(t, got.ID().IsEqual(o.ID()))
	assert.Equal(t, "A-100", got.Code())
	assert.Equal(t, order.Pending, got.Status())
	assert.Nil(t, got.DroneID())
	assert.True(t, got.Total().Equal(decimal.RequireFromString("95001")))
	assert.Equal(t, "no onions", got.Note())
	assert.True(t, got.PlacedAt().Equal(placed))
	require.Len(t, got.Items(), 2)
	assert.Equal(t, "Pho bo", got.Items()[0].Name())
	assert.True(t, got.Items()[0].UnitPrice().Equal(decimal.RequireFromString("45000.5")))
	require.Len(t, tr.ids, 1)
}

func TestGormOrderRepository_AddDuplicateCode(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewGormOrderRepository(testutil.OpenSQLite(t), &tracker{})

	require.NoError(t, repo.Add(ctx, newOrder(t, "A-100", order.Pending, time.Now())))
	err := repo.Add(ctx, newOrder(t, "A-100", order.Pending, time.Now()))

	require.ErrorIs(t, err, errs.ErrVersionConflict)
}

func TestGormOrderRepository_GetByRef(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewGormOrderRepository(testutil.OpenSQLite(t), &tracker{})

	o := newOrder(t, "A-100", order.Pending, time.Now())
	require.NoError(t, repo.Add(ctx, o))

	byCode, err := repo.GetByRef(ctx, " A-100 ")
	require.NoError(t, err)
	assert.True(t, byCode.ID().IsEqual(o.ID()))

	byID, err := repo.GetByRef(ctx, o.ID().String())
	require.NoError(t, err)
	assert.Equal(t, "A-100", byID.Code())

	_, err = repo.GetByRef(ctx, "A-999")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = repo.GetByRef(ctx, kernel.NewUUID().String())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGormOrderRepository_UpdateIsVersioned(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewGormOrderRepository(testutil.OpenSQLite(t), &tracker{})

	o := newOrder(t, "A-100", order.Pending, time.Now())
	require.NoError(t, repo.Add(ctx, o))

	first, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	second, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)

	first.Transition(order.Preparing)
	require.NoError(t, repo.Update(ctx, first))

	second.Transition(order.Cancelled)
	err = repo.Update(ctx, second)
	require.ErrorIs(t, err, errs.ErrVersionConflict)

	stored, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Preparing, stored.Status())
	assert.Equal(t, 1, stored.Version())
}

func TestGormOrderRepository_UpdateWritesDroneAndClearsIt(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewGormOrderRepository(testutil.OpenSQLite(t), &tracker{})

	o := newOrder(t, "A-100", order.Shipping, time.Now())
	require.NoError(t, repo.Add(ctx, o))

	droneID := kernel.NewUUID()
	loaded, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.AssignDrone(droneID))
	require.NoError(t, repo.Update(ctx, loaded))

	loaded, err = repo.Get(ctx, o.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded.DroneID())
	assert.True(t, loaded.DroneID().IsEqual(droneID))

	loaded.DetachDrone()
	require.NoError(t, repo.Update(ctx, loaded))

	loaded, err = repo.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Nil(t, loaded.DroneID())
	assert.Equal(t, 2, loaded.Version())
}

func TestGormOrderRepository_UpdateMissing(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewGormOrderRepository(testutil.OpenSQLite(t), &tracker{})

	err := repo.Update(ctx, newOrder(t, "A-100", order.Pending, time.Now()))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGormOrderRepository_GetAllShippingOldestFirst(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewGormOrderRepository(testutil.OpenSQLite(t), &tracker{})

	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	late := newOrder(t, "LATE", order.Shipping, base.Add(time.Hour))
	early := newOrder(t, "EARLY", order.Shipping, base)
	pending := newOrder(t, "PENDING", order.Pending, base.Add(-time.Hour))

	for _, o := range []*order.Order{late, early, pending} {
		require.NoError(t, repo.Add(ctx, o))
	}

	shipping, err := repo.GetAllShipping(ctx)

	require.NoError(t, err)
	require.Len(t, shipping, 2)
	assert.Equal(t, "EARLY", shipping[0].Code())
	assert.Equal(t, "LATE", shipping[1].Code())
}
