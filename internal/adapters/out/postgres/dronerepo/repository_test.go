package dronerepo_test

import (
	"testing"

	"foodfast/internal/adapters/out/postgres/dronerepo"
	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/pkg/errs"
	"foodfast/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDrone(t *testing.T, code string) *drone.Drone {
	t.Helper()
	d, err := drone.NewDrone(kernel.NewUUID(), code)
	require.NoError(t, err)
	return d
}

func TestGormDroneRepository_Roundtrip(t *testing.T) {
	ctx := t.Context()
	repo := dronerepo.NewGormDroneRepository(testutil.OpenSQLite(t))

	d := newDrone(t, "D1")
	require.NoError(t, d.ChangeStatus(drone.Charging))
	require.NoError(t, d.SetBattery(42))
	require.NoError(t, d.SetDeliveries(3, 120))
	require.NoError(t, d.SetDistance(18.5))
	require.NoError(t, repo.Add(ctx, d))

	got, err := repo.Get(ctx, d.ID())
	require.NoError(t, err)
	assert.Equal(t, "D1", got.Code())
	assert.Equal(t, drone.Charging, got.Status())
	assert.Equal(t, 42, got.Battery())
	assert.Equal(t, 3, got.DailyDeliveries())
	assert.Equal(t, 120, got.TotalDeliveries())
	assert.InDelta(t, 18.5, got.Distance(), 1e-9)

	require.NoError(t, got.ChangeStatus(drone.Active))
	require.NoError(t, repo.Update(ctx, got))

	byCode, err := repo.GetByRef(ctx, "D1")
	require.NoError(t, err)
	assert.Equal(t, drone.Active, byCode.Status())

	byID, err := repo.GetByRef(ctx, d.ID().String())
	require.NoError(t, err)
	assert.Equal(t, "D1", byID.Code())
}

func TestGormDroneRepository_DuplicateCode(t *testing.T) {
	ctx := t.Context()
	repo := dronerepo.NewGormDroneRepository(testutil.OpenSQLite(t))

	require.NoError(t, repo.Add(ctx, newDrone(t, "D1")))
	err := repo.Add(ctx, newDrone(t, "D1"))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGormDroneRepository_GetAllOrderedByCode(t *testing.T) {
	ctx := t.Context()
	repo := dronerepo.NewGormDroneRepository(testutil.OpenSQLite(t))

	for _, code := range []string{"D3", "D1", "D2"} {
		require.NoError(t, repo.Add(ctx, newDrone(t, code)))
	}

	drones, err := repo.GetAll(ctx)

	require.NoError(t, err)
	require.Len(t, drones, 3)
	assert.Equal(t, "D1", drones[0].Code())
	assert.Equal(t, "D2", drones[1].Code())
	assert.Equal(t, "D3", drones[2].Code())
}

func TestGormDroneRepository_Delete(t *testing.T) {
	ctx := t.Context()
	repo := dronerepo.NewGormDroneRepository(testutil.OpenSQLite(t))

	d := newDrone(t, "D1")
	require.NoError(t, repo.Add(ctx, d))
	require.NoError(t, repo.Delete(ctx, d.ID()))

	_, err := repo.Get(ctx, d.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	err = repo.Delete(ctx, d.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	err = repo.Update(ctx, d)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGormDroneRepository_ResetDailyDeliveries(t *testing.T) {
	ctx := t.Context()
	repo := dronerepo.NewGormDroneRepository(testutil.OpenSQLite(t))

	busy := newDrone(t, "D1")
	require.NoError(t, busy.SetDeliveries(4, 10))
	idle := newDrone(t, "D2")
	require.NoError(t, repo.Add(ctx, busy))
	require.NoError(t, repo.Add(ctx, idle))

	reset, err := repo.ResetDailyDeliveries(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), reset)

	got, err := repo.Get(ctx, busy.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, got.DailyDeliveries())
	assert.Equal(t, 10, got.TotalDeliveries())
}
