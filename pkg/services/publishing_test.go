package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shiftmash/shiftmash/pkg/locking"
	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublishingsService(t *testing.T) (*Publishings, persistence.Persistence) {
	t.Helper()

	fp := newSeededPersistence(t)

	svc := NewPublishings(fp, locking.NewMemoryLockManager(), nil, nil, nil)
	svc.now = fixedNow(t)

	return svc, fp
}

func TestPublishRecruiting(t *testing.T) {
	ctx := context.Background()
	svc, fp := newPublishingsService(t)

	recruiting, err := svc.PublishRecruiting(ctx, "sh1", "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(recruiting.ID, "rec_"))
	assert.Equal(t, "s1", recruiting.StoreID)
	assert.Equal(t, "hall", recruiting.Role)
	assert.True(t, recruiting.Open)
	assert.Nil(t, recruiting.ApprovedAt)
	assert.Contains(t, recruiting.Message, "hall")
	assert.Contains(t, recruiting.Message, "09:00-17:00")

	publishing, err := fp.LoadPublishing(ctx)
	require.NoError(t, err)
	assert.NotNil(t, publishing.FindRecruiting(recruiting.ID))
}

func TestPublishRecruitingUnknownShift(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPublishingsService(t)

	_, err := svc.PublishRecruiting(ctx, "sh99", "")
	assert.ErrorIs(t, err, persistence.ErrShiftNotFound)
}

func TestPublishAvailable(t *testing.T) {
	ctx := context.Background()
	svc, fp := newPublishingsService(t)

	available, err := svc.PublishAvailable(ctx, "sh2", "w3", "free after lunch")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(available.ID, "avl_"))
	assert.Equal(t, "s2", available.StoreID)
	assert.Equal(t, "w3", available.WorkerID)
	assert.Equal(t, "free after lunch", available.Message)
	assert.True(t, available.Open)

	publishing, err := fp.LoadPublishing(ctx)
	require.NoError(t, err)
	assert.NotNil(t, publishing.FindAvailable(available.ID))
}

func TestPublishAvailableValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPublishingsService(t)

	// w1 works at s1, not at sh2's store
	_, err := svc.PublishAvailable(ctx, "sh2", "w1", "")
	assert.ErrorIs(t, err, ErrWorkerNotAtStore)

	// w4 is kitchen staff, sh2 is a hall shift
	_, err = svc.PublishAvailable(ctx, "sh2", "w4", "")
	assert.ErrorIs(t, err, ErrWorkerMissingRole)
}

func TestApproveRecruitingCascades(t *testing.T) {
	ctx := context.Background()
	svc, fp := newPublishingsService(t)

	recruiting, err := svc.PublishRecruiting(ctx, "sh1", "")
	require.NoError(t, err)

	require.NoError(t, svc.Approve(ctx, models.KindRecruiting, recruiting.ID, "s2"))

	publishing, err := fp.LoadPublishing(ctx)
	require.NoError(t, err)

	stored := publishing.FindRecruiting(recruiting.ID)
	require.NotNil(t, stored)
	assert.False(t, stored.Open)
	require.NotNil(t, stored.ApprovedAt)

	// w2 is the first hall-qualified worker at the approving store
	shift, err := fp.ShiftByID(ctx, "sh1")
	require.NoError(t, err)
	assert.Equal(t, models.ShiftStatusNormal, shift.Status)
	assert.Equal(t, "w2", shift.SupportWorkerID)
}

func TestApproveAvailableCascades(t *testing.T) {
	ctx := context.Background()
	svc, fp := newPublishingsService(t)

	// s2 offers w4 (kitchen); s3 approves and has no kitchen shortage, s2
	// itself does but is the publishing store. Seed a kitchen shortage at
	// the approving store instead.
	shifts := append(testShifts(), &models.Shift{
		ID: "sh5", StoreID: "s3", Role: "kitchen",
		Start: "12:00", End: "18:00", Status: models.ShiftStatusShortage, Date: testDate,
	})
	require.NoError(t, fp.SeedShifts(ctx, shifts))

	available, err := svc.PublishAvailable(ctx, "sh4", "w4", "")
	require.NoError(t, err)

	require.NoError(t, svc.Approve(ctx, models.KindAvailable, available.ID, "s3"))

	shift, err := fp.ShiftByID(ctx, "sh5")
	require.NoError(t, err)
	assert.Equal(t, models.ShiftStatusNormal, shift.Status)
	assert.Equal(t, "w4", shift.SupportWorkerID)

	// the publishing store's own shortage is untouched
	own, err := fp.ShiftByID(ctx, "sh4")
	require.NoError(t, err)
	assert.Equal(t, models.ShiftStatusShortage, own.Status)
}

func TestApproveClosedPosting(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPublishingsService(t)

	recruiting, err := svc.PublishRecruiting(ctx, "sh1", "")
	require.NoError(t, err)

	require.NoError(t, svc.Approve(ctx, models.KindRecruiting, recruiting.ID, "s2"))

	err = svc.Approve(ctx, models.KindRecruiting, recruiting.ID, "s3")
	assert.ErrorIs(t, err, ErrAlreadyClosed)
	assert.True(t, IsAlreadyResolved(err))
}

func TestApproveValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPublishingsService(t)

	err := svc.Approve(ctx, "sideways", "rec_x", "s2")
	assert.ErrorIs(t, err, ErrInvalidKind)

	err = svc.Approve(ctx, models.KindRecruiting, "rec_missing", "s2")
	assert.ErrorIs(t, err, persistence.ErrPublishingItemNotFound)

	err = svc.Approve(ctx, models.KindRecruiting, "rec_x", "s99")
	assert.ErrorIs(t, err, persistence.ErrStoreNotFound)
}

func TestConcurrentPublishingApprovalsExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPublishingsService(t)

	recruiting, err := svc.PublishRecruiting(ctx, "sh1", "")
	require.NoError(t, err)

	const approvers = 16

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)

	for range approvers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := svc.Approve(ctx, models.KindRecruiting, recruiting.ID, "s2")
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()

				return
			}

			if !errors.Is(err, ErrApprovalInProgress) && !errors.Is(err, ErrAlreadyClosed) {
				t.Errorf("unexpected approval error: %v", err)
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, wins, "exactly one concurrent approver must win")
}

func TestClosePosting(t *testing.T) {
	ctx := context.Background()
	svc, fp := newPublishingsService(t)

	available, err := svc.PublishAvailable(ctx, "sh2", "w3", "")
	require.NoError(t, err)

	require.NoError(t, svc.Close(ctx, models.KindAvailable, available.ID))

	publishing, err := fp.LoadPublishing(ctx)
	require.NoError(t, err)

	stored := publishing.FindAvailable(available.ID)
	require.NotNil(t, stored)
	assert.False(t, stored.Open)
	assert.Nil(t, stored.ApprovedAt, "a plain close never stamps an approval time")

	err = svc.Close(ctx, models.KindAvailable, available.ID)
	assert.ErrorIs(t, err, ErrAlreadyClosed)
}
