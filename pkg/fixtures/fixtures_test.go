package fixtures

import (
	"context"
	"testing"

	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/persistence/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixturesValidateAndLoad(t *testing.T) {
	stores, err := Stores()
	require.NoError(t, err)
	assert.Len(t, stores, 3)

	workers, err := Workers()
	require.NoError(t, err)
	assert.Len(t, workers, 9)

	shifts, err := Shifts()
	require.NoError(t, err)
	assert.NotEmpty(t, shifts)

	publishing, err := Publishings()
	require.NoError(t, err)
	assert.NotEmpty(t, publishing.Recruitings)
	assert.NotEmpty(t, publishing.Availables)

	requests, err := Requests()
	require.NoError(t, err)
	assert.NotEmpty(t, requests)
}

func TestFixturesAreInternallyConsistent(t *testing.T) {
	stores, err := Stores()
	require.NoError(t, err)

	workers, err := Workers()
	require.NoError(t, err)

	storeIDs := make(map[string]bool, len(stores))
	for _, store := range stores {
		storeIDs[store.ID] = true
	}

	workerIDs := make(map[string]bool, len(workers))

	for _, worker := range workers {
		workerIDs[worker.ID] = true

		assert.True(t, storeIDs[worker.StoreID], "worker %s references unknown store %s", worker.ID, worker.StoreID)
	}

	shifts, err := Shifts()
	require.NoError(t, err)

	shiftIDs := make(map[string]bool, len(shifts))

	for _, shift := range shifts {
		shiftIDs[shift.ID] = true

		assert.True(t, storeIDs[shift.StoreID], "shift %s references unknown store %s", shift.ID, shift.StoreID)

		if shift.WorkerID != "" {
			assert.True(t, workerIDs[shift.WorkerID], "shift %s references unknown worker %s", shift.ID, shift.WorkerID)
		}

		if shift.WorkerID == "" && shift.SupportWorkerID == "" {
			assert.Equal(t, models.ShiftStatusShortage, shift.Status, "unstaffed shift %s must be a shortage", shift.ID)
		}
	}

	publishing, err := Publishings()
	require.NoError(t, err)

	for _, recruiting := range publishing.Recruitings {
		assert.True(t, storeIDs[recruiting.StoreID])
		assert.True(t, shiftIDs[recruiting.ShiftID])
	}

	for _, available := range publishing.Availables {
		assert.True(t, storeIDs[available.StoreID])
		assert.True(t, workerIDs[available.WorkerID])
	}
}

func TestSeedAll(t *testing.T) {
	ctx := context.Background()

	fp, err := file.NewPersistence(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, SeedAll(ctx, fp))

	stores, err := fp.Stores(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 3)

	shifts, err := fp.ShiftsForDate(ctx, "2026-08-31")
	require.NoError(t, err)
	assert.NotEmpty(t, shifts)

	publishing, err := fp.LoadPublishing(ctx)
	require.NoError(t, err)
	assert.NotNil(t, publishing.FindRecruiting("rec1"))

	request, err := fp.RequestByID(ctx, "req1")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)
}
