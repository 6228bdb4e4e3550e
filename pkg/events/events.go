// Package events defines the notifications emitted on request and publishing
// lifecycle transitions. Other store dashboards subscribe to refresh their
// inbox without waiting for the next poll.
package events

import (
	"time"

	"github.com/shiftmash/shiftmash/pkg/models"
)

type EventType string

// Topic is the single stream all exchange events are published to.
const Topic = "shiftmash.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Request lifecycle events.
	RequestCreatedEvent  EventType = "request.created"
	RequestApprovedEvent EventType = "request.approved"
	RequestRejectedEvent EventType = "request.rejected"

	// Publishing lifecycle events.
	PublishingOpenedEvent   EventType = "publishing.opened"
	PublishingApprovedEvent EventType = "publishing.approved"
	PublishingClosedEvent   EventType = "publishing.closed"

	// Timeline events.
	ShiftCoverageChangedEvent EventType = "shift.coverage_changed"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	StoreID   string    `json:"store_id,omitempty"`
}

type RequestCreated struct {
	BaseEvent

	RequestID string             `json:"request_id"`
	ShiftID   string             `json:"shift_id"`
	ToStoreID string             `json:"to_store_id"`
	Kind      models.RequestType `json:"kind"`
}

func (e RequestCreated) GetType() EventType {
	return RequestCreatedEvent
}

type RequestApproved struct {
	BaseEvent

	RequestID string `json:"request_id"`
	ShiftID   string `json:"shift_id"`
	// InvalidatedIDs lists sibling requests cancelled by this approval.
	InvalidatedIDs []string `json:"invalidated_ids,omitempty"`
}

func (e RequestApproved) GetType() EventType {
	return RequestApprovedEvent
}

type RequestRejected struct {
	BaseEvent

	RequestID string `json:"request_id"`
	ShiftID   string `json:"shift_id"`
}

func (e RequestRejected) GetType() EventType {
	return RequestRejectedEvent
}

type PublishingOpened struct {
	BaseEvent

	PublishingID string                `json:"publishing_id"`
	Kind         models.PublishingKind `json:"kind"`
	ShiftID      string                `json:"shift_id"`
	Role         string                `json:"role"`
}

func (e PublishingOpened) GetType() EventType {
	return PublishingOpenedEvent
}

type PublishingApproved struct {
	BaseEvent

	PublishingID string                `json:"publishing_id"`
	Kind         models.PublishingKind `json:"kind"`
	ShiftID      string                `json:"shift_id"`
}

func (e PublishingApproved) GetType() EventType {
	return PublishingApprovedEvent
}

type PublishingClosed struct {
	BaseEvent

	PublishingID string                `json:"publishing_id"`
	Kind         models.PublishingKind `json:"kind"`
}

func (e PublishingClosed) GetType() EventType {
	return PublishingClosedEvent
}

type ShiftCoverageChanged struct {
	BaseEvent

	ShiftID   string             `json:"shift_id"`
	OldStatus models.ShiftStatus `json:"old_status"`
	NewStatus models.ShiftStatus `json:"new_status"`
}

func (e ShiftCoverageChanged) GetType() EventType {
	return ShiftCoverageChangedEvent
}
