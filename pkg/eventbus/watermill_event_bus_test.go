package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/shiftmash/shiftmash/pkg/channels/gochannel"
	"github.com/shiftmash/shiftmash/pkg/eventbus"
	"github.com/shiftmash/shiftmash/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *eventbus.WatermillEventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)

	t.Cleanup(func() {
		if err := bus.Close(); err != nil {
			t.Logf("Failed to close event bus: %v", err)
		}
	})

	return bus
}

func TestPublishSubscribeRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := newTestBus(t)

	received := make(chan any, 1)

	require.NoError(t, bus.Handle(events.RequestApprovedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx))

	sent := events.RequestApproved{
		BaseEvent: events.BaseEvent{
			ID:        bus.GenerateID(),
			Type:      events.RequestApprovedEvent,
			Timestamp: time.Now().UTC(),
			StoreID:   "s2",
		},
		RequestID:      "req1",
		ShiftID:        "sh1",
		InvalidatedIDs: []string{"req2"},
	}

	require.NoError(t, bus.Publish(ctx, sent.RequestID, sent))

	select {
	case event := <-received:
		approved, ok := event.(*events.RequestApproved)
		require.True(t, ok)
		assert.Equal(t, "req1", approved.RequestID)
		assert.Equal(t, []string{"req2"}, approved.InvalidatedIDs)
		assert.Equal(t, "s2", approved.StoreID)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestUnhandledEventTypesAreSkipped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := newTestBus(t)

	received := make(chan any, 1)

	// only approvals are handled; the rejection must not reach the handler
	require.NoError(t, bus.Handle(events.RequestApprovedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx))

	rejected := events.RequestRejected{
		BaseEvent: events.BaseEvent{ID: bus.GenerateID(), Type: events.RequestRejectedEvent},
		RequestID: "req1",
		ShiftID:   "sh1",
	}

	require.NoError(t, bus.Publish(ctx, rejected.RequestID, rejected))

	select {
	case <-received:
		t.Fatal("handler received an event type it never subscribed to")
	case <-time.After(200 * time.Millisecond):
	}
}
