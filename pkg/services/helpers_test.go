package services

import (
	"context"
	"testing"
	"time"

	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/persistence/file"
	"github.com/stretchr/testify/require"
)

const testDate = "2026-08-31"

// Saitama test chain. Longitudes are identical so distances are pure
// latitude deltas: s1-s2 is 3.0 km, s1-s3 is 10.0 km, s1-s4 is 22.2 km
// (past the 15 km eligibility bound).
func testStores() []*models.Store {
	return []*models.Store{
		{ID: "s1", Name: "Urawa Station Store", Lat: 35.8600, Lng: 139.6400},
		{ID: "s2", Name: "Omiya West Exit Store", Lat: 35.8870, Lng: 139.6400},
		{ID: "s3", Name: "Kawagoe Crea Mall Store", Lat: 35.9500, Lng: 139.6400},
		{ID: "s4", Name: "Kumagaya Bypass Store", Lat: 36.0600, Lng: 139.6400},
	}
}

func testWorkers() []*models.Worker {
	return []*models.Worker{
		{ID: "w1", Name: "Sato Yuki", StoreID: "s1", Roles: []string{"hall"}, Rating: 4.0, Experience: 12},
		{ID: "w2", Name: "Tanaka Mei", StoreID: "s2", Roles: []string{"hall", "cashier"}, Rating: 4.8, Experience: 36},
		{ID: "w3", Name: "Suzuki Ren", StoreID: "s2", Roles: []string{"hall"}, Rating: 4.8, Experience: 24},
		{ID: "w4", Name: "Kobayashi Aoi", StoreID: "s2", Roles: []string{"kitchen"}, Rating: 4.5, Experience: 48},
		{ID: "w5", Name: "Takahashi Sora", StoreID: "s3", Roles: []string{"hall"}, Rating: 4.2, Experience: 18},
		{ID: "w6", Name: "Watanabe Rio", StoreID: "s4", Roles: []string{"hall"}, Rating: 5.0, Experience: 60},
	}
}

func testShifts() []*models.Shift {
	return []*models.Shift{
		{ID: "sh1", StoreID: "s1", Role: "hall", Start: "09:00", End: "17:00", Status: models.ShiftStatusShortage, Date: testDate},
		{ID: "sh2", StoreID: "s2", WorkerID: "w3", Role: "hall", Start: "10:00", End: "18:00", Status: models.ShiftStatusSurplus, Date: testDate},
		{ID: "sh3", StoreID: "s3", WorkerID: "w5", Role: "hall", Start: "09:00", End: "15:00", Status: models.ShiftStatusNormal, Date: testDate},
		{ID: "sh4", StoreID: "s2", Role: "kitchen", Start: "11:00", End: "19:00", Status: models.ShiftStatusShortage, Date: testDate},
	}
}

func newSeededPersistence(t *testing.T) *file.Persistence {
	t.Helper()

	ctx := context.Background()

	fp, err := file.NewPersistence(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fp.SeedStores(ctx, testStores()))
	require.NoError(t, fp.SeedWorkers(ctx, testWorkers()))
	require.NoError(t, fp.SeedShifts(ctx, testShifts()))

	return fp
}

func fixedNow(t *testing.T) func() time.Time {
	t.Helper()

	at, err := time.Parse(time.RFC3339, "2026-08-31T09:00:00+09:00")
	require.NoError(t, err)

	return func() time.Time { return at }
}
