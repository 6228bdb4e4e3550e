package services

import (
	"context"
	"testing"

	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	direction, err := ParseDirection("seeking-staff")
	require.NoError(t, err)
	assert.Equal(t, DirectionSeekingStaff, direction)

	direction, err = ParseDirection("offering-staff")
	require.NoError(t, err)
	assert.Equal(t, DirectionOfferingStaff, direction)

	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func openAvailable(id, storeID, workerID, role, start, end string) *models.Available {
	return &models.Available{
		ID:       id,
		StoreID:  storeID,
		WorkerID: workerID,
		ShiftID:  "sh-" + id,
		Role:     role,
		Start:    start,
		End:      end,
		Date:     testDate,
		Open:     true,
	}
}

func openRecruiting(id, storeID, role, start, end string) *models.Recruiting {
	return &models.Recruiting{
		ID:      id,
		StoreID: storeID,
		ShiftID: "sh-" + id,
		Role:    role,
		Start:   start,
		End:     end,
		Date:    testDate,
		Open:    true,
	}
}

func TestFindSeekingStaffSingleMatch(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	require.NoError(t, fp.SavePublishing(ctx, &models.Publishing{
		Availables: []*models.Available{
			openAvailable("a1", "s2", "w3", "hall", "10:00", "16:00"),
		},
	}))

	finder := NewCandidates(fp, DefaultMatchConfig())

	shift, err := fp.ShiftByID(ctx, "sh1")
	require.NoError(t, err)

	candidates, err := finder.Find(ctx, shift, DirectionSeekingStaff)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	match := candidates[0]
	assert.Equal(t, "a1", match.ID)
	assert.Equal(t, models.CandidateWorker, match.Kind)
	assert.Equal(t, "w3", match.WorkerID)
	assert.Equal(t, "Suzuki Ren", match.WorkerName)
	assert.Equal(t, "Omiya West Exit Store", match.StoreName)
	assert.InDelta(t, 3.0, match.Distance.DistanceKm, 0.001)
	assert.Equal(t, 50, match.Distance.EstimatedMinutes)
}

func TestFindSeekingStaffFilters(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	closed := openAvailable("a-closed", "s2", "w3", "hall", "09:00", "17:00")
	closed.Open = false

	require.NoError(t, fp.SavePublishing(ctx, &models.Publishing{
		Availables: []*models.Available{
			closed,
			openAvailable("a-own", "s1", "w1", "hall", "09:00", "17:00"),
			openAvailable("a-role", "s2", "w4", "kitchen", "09:00", "17:00"),
			openAvailable("a-disjoint", "s2", "w3", "hall", "17:00", "22:00"),
			openAvailable("a-far", "s4", "w6", "hall", "09:00", "17:00"),
			openAvailable("a-ghost", "s2", "w-missing", "hall", "09:00", "17:00"),
			openAvailable("a-ok", "s3", "w5", "hall", "12:00", "18:00"),
		},
	}))

	finder := NewCandidates(fp, DefaultMatchConfig())

	shift, err := fp.ShiftByID(ctx, "sh1")
	require.NoError(t, err)

	candidates, err := finder.Find(ctx, shift, DirectionSeekingStaff)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "a-ok", candidates[0].ID)
}

func TestFindSeekingStaffTouchingWindowsExcluded(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	// ends exactly when the shift starts: half-open intervals do not touch
	require.NoError(t, fp.SavePublishing(ctx, &models.Publishing{
		Availables: []*models.Available{
			openAvailable("a1", "s2", "w3", "hall", "06:00", "09:00"),
		},
	}))

	finder := NewCandidates(fp, DefaultMatchConfig())

	shift, err := fp.ShiftByID(ctx, "sh1")
	require.NoError(t, err)

	candidates, err := finder.Find(ctx, shift, DirectionSeekingStaff)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestFindSeekingStaffRanking(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	// w2 and w3 are both at s2 (3.0 km): same distance, w2 has the higher
	// experience at equal rating. w5 at s3 is farther (10.0 km) despite
	// overlapping just as well.
	require.NoError(t, fp.SavePublishing(ctx, &models.Publishing{
		Availables: []*models.Available{
			openAvailable("a-far", "s3", "w5", "hall", "09:00", "17:00"),
			openAvailable("a-junior", "s2", "w3", "hall", "09:00", "17:00"),
			openAvailable("a-senior", "s2", "w2", "hall", "09:00", "17:00"),
		},
	}))

	finder := NewCandidates(fp, DefaultMatchConfig())

	shift, err := fp.ShiftByID(ctx, "sh1")
	require.NoError(t, err)

	candidates, err := finder.Find(ctx, shift, DirectionSeekingStaff)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "a-senior", candidates[0].ID)
	assert.Equal(t, "a-junior", candidates[1].ID)
	assert.Equal(t, "a-far", candidates[2].ID)
}

func TestFindOfferingStaffNearestFirst(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	require.NoError(t, fp.SavePublishing(ctx, &models.Publishing{
		Recruitings: []*models.Recruiting{
			openRecruiting("r-kawagoe", "s3", "hall", "10:00", "16:00"),
			openRecruiting("r-omiya", "s2", "hall", "10:00", "16:00"),
		},
	}))

	finder := NewCandidates(fp, DefaultMatchConfig())

	shift, err := fp.ShiftByID(ctx, "sh2")
	require.NoError(t, err)
	shift.StoreID = "s1" // search from Urawa's perspective

	candidates, err := finder.Find(ctx, shift, DirectionOfferingStaff)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "r-omiya", candidates[0].ID)
	assert.Equal(t, models.CandidateRecruiting, candidates[0].Kind)
	assert.Equal(t, "r-kawagoe", candidates[1].ID)
}

func TestFindOfferingStaffTieBreaksByRecency(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	older := openRecruiting("r-older", "s2", "hall", "10:00", "16:00")
	older.CreatedAt = 100

	newer := openRecruiting("r-newer", "s2", "hall", "10:00", "16:00")
	newer.CreatedAt = 200

	require.NoError(t, fp.SavePublishing(ctx, &models.Publishing{
		Recruitings: []*models.Recruiting{older, newer},
	}))

	finder := NewCandidates(fp, DefaultMatchConfig())

	shift, err := fp.ShiftByID(ctx, "sh1")
	require.NoError(t, err)

	candidates, err := finder.Find(ctx, shift, DirectionOfferingStaff)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "r-newer", candidates[0].ID)
	assert.Equal(t, "r-older", candidates[1].ID)
}

func TestFindTruncatesToMaxCandidates(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	publishing := &models.Publishing{}
	for i := range 5 {
		id := string(rune('a'+i)) + "-posting"
		publishing.Recruitings = append(publishing.Recruitings,
			openRecruiting(id, "s2", "hall", "09:00", "17:00"))
	}

	require.NoError(t, fp.SavePublishing(ctx, publishing))

	finder := NewCandidates(fp, MatchConfig{MaxCandidates: 2})

	shift, err := fp.ShiftByID(ctx, "sh1")
	require.NoError(t, err)

	candidates, err := finder.Find(ctx, shift, DirectionOfferingStaff)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestFindBadShiftWindow(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	shift := &models.Shift{ID: "x", StoreID: "s1", Role: "hall", Start: "9am", End: "17:00", Date: testDate}

	finder := NewCandidates(fp, DefaultMatchConfig())

	_, err := finder.Find(ctx, shift, DirectionSeekingStaff)
	assert.ErrorIs(t, err, timeutil.ErrBadTimeFormat)
}

func TestFindUnknownStoreReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	require.NoError(t, fp.SavePublishing(ctx, &models.Publishing{
		Availables: []*models.Available{
			openAvailable("a1", "s2", "w3", "hall", "09:00", "17:00"),
		},
	}))

	shift := &models.Shift{ID: "x", StoreID: "nowhere", Role: "hall", Start: "09:00", End: "17:00", Date: testDate}

	finder := NewCandidates(fp, DefaultMatchConfig())

	candidates, err := finder.Find(ctx, shift, DirectionSeekingStaff)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
