package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shiftmash/shiftmash/pkg/events"
	"github.com/shiftmash/shiftmash/pkg/eventbus"
	"github.com/shiftmash/shiftmash/pkg/geo"
	"github.com/shiftmash/shiftmash/pkg/locking"
	"github.com/shiftmash/shiftmash/pkg/mocks"
	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePublishesRequestCreated(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	bus := &mocks.MockEventBus{}
	bus.On("Publish", mock.Anything, mock.Anything, mock.MatchedBy(func(event eventbus.Event) bool {
		created, ok := event.(events.RequestCreated)

		return ok && created.ShiftID == "sh1" && created.ToStoreID == "s2"
	})).Return(nil).Once()

	svc := NewRequests(fp, locking.NewMemoryLockManager(), bus, nil, geo.DefaultConfig(), nil)

	_, err := svc.Create(ctx, CreateRequestParams{
		From: "s1", To: "s2", Type: models.RequestTypeRecruiting,
		TargetIDs: []string{"w3"}, ShiftID: "sh1",
	})
	require.NoError(t, err)

	bus.AssertExpectations(t)
}

func TestApprovePublishesInvalidatedSiblings(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	bus := &mocks.MockEventBus{}
	bus.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewRequests(fp, locking.NewMemoryLockManager(), bus, nil, geo.DefaultConfig(), nil)

	winner, err := svc.Create(ctx, CreateRequestParams{
		From: "s1", To: "s2", Type: models.RequestTypeRecruiting,
		TargetIDs: []string{"w3"}, ShiftID: "sh1",
	})
	require.NoError(t, err)

	sibling, err := svc.Create(ctx, CreateRequestParams{
		From: "s1", To: "s3", Type: models.RequestTypeRecruiting,
		TargetIDs: []string{"w5"}, ShiftID: "sh1",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, winner.ID)
	require.NoError(t, err)

	bus.AssertCalled(t, "Publish", mock.Anything, winner.ID, mock.MatchedBy(func(event eventbus.Event) bool {
		approved, ok := event.(events.RequestApproved)

		return ok && len(approved.InvalidatedIDs) == 1 && approved.InvalidatedIDs[0] == sibling.ID
	}))
}

func TestPublishFailureDoesNotFailTheOperation(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	bus := &mocks.MockEventBus{}
	bus.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable"))

	svc := NewRequests(fp, locking.NewMemoryLockManager(), bus, nil, geo.DefaultConfig(), nil)

	request, err := svc.Create(ctx, CreateRequestParams{
		From: "s1", To: "s2", Type: models.RequestTypeRecruiting,
		TargetIDs: []string{"w3"}, ShiftID: "sh1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)
}

func TestApproveLockBackendFailure(t *testing.T) {
	ctx := context.Background()
	fp := newSeededPersistence(t)

	locks := &mocks.MockLockManager{}
	locks.On("Acquire", mock.Anything, mock.Anything).
		Return(false, errors.New("redis: connection refused"))

	svc := NewRequests(fp, locks, nil, nil, geo.DefaultConfig(), nil)

	request, err := svc.Create(ctx, CreateRequestParams{
		From: "s1", To: "s2", Type: models.RequestTypeRecruiting,
		TargetIDs: []string{"w3"}, ShiftID: "sh1",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, request.ID)
	assert.ErrorContains(t, err, "connection refused")
	assert.False(t, IsConflict(err), "a backend failure is not a lock conflict")
}
