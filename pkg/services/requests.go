package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shiftmash/shiftmash/pkg/events"
	"github.com/shiftmash/shiftmash/pkg/eventbus"
	"github.com/shiftmash/shiftmash/pkg/geo"
	"github.com/shiftmash/shiftmash/pkg/locking"
	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/otelhelper"
	"github.com/shiftmash/shiftmash/pkg/persistence"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Requests drives the request lifecycle: pending -> approved, rejected, or
// invalid, all terminal. Approval is guarded by an advisory lock and
// cascades into shift updates and sibling invalidation.
type Requests struct {
	persistence persistence.Persistence
	locks       locking.LockManager
	eventBus    eventbus.EventPublisher // nil = no notifications
	tracer      trace.Tracer            // nil = no tracing
	travel      geo.Config
	logger      *slog.Logger
	now         func() time.Time
}

// NewRequests creates the request lifecycle service. EventBus and tracer may
// be nil.
func NewRequests(
	persistence persistence.Persistence,
	locks locking.LockManager,
	eventBus eventbus.EventPublisher,
	tracer trace.Tracer,
	travel geo.Config,
	logger *slog.Logger,
) *Requests {
	if logger == nil {
		logger = slog.Default()
	}

	return &Requests{
		persistence: persistence,
		locks:       locks,
		eventBus:    eventBus,
		tracer:      tracer,
		travel:      travel,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateRequestParams carries the fields of a new inter-store request.
type CreateRequestParams struct {
	From          string             `json:"from"            validate:"required"`
	To            string             `json:"to"              validate:"required"`
	Type          models.RequestType `json:"type"            validate:"required,oneof=recruiting dispatch"`
	TargetIDs     []string           `json:"target_ids"      validate:"required,min=1"`
	ShiftID       string             `json:"shift_id"        validate:"required"`
	TargetShiftID string             `json:"target_shift_id"`
	Message       string             `json:"message"`
}

// Create inserts a new pending request. There is deliberately no uniqueness
// check: several stores may request the same shift concurrently, and the
// race is resolved at approval time.
func (s *Requests) Create(ctx context.Context, params CreateRequestParams) (*models.Request, error) {
	if params.From == "" || params.To == "" {
		return nil, ErrStoreRequired
	}

	if params.From == params.To {
		return nil, ErrSameStore
	}

	if len(params.TargetIDs) == 0 {
		return nil, ErrNoTargets
	}

	fromStore, err := s.persistence.StoreByID(ctx, params.From)
	if err != nil {
		return nil, err
	}

	toStore, err := s.persistence.StoreByID(ctx, params.To)
	if err != nil {
		return nil, err
	}

	if _, err := s.persistence.ShiftByID(ctx, params.ShiftID); err != nil {
		return nil, err
	}

	estimate := geo.Estimate(fromStore.Location(), toStore.Location(), s.travel)

	request := &models.Request{
		ID:            "req_" + uuid.NewString(),
		From:          params.From,
		To:            params.To,
		Type:          params.Type,
		TargetIDs:     params.TargetIDs,
		ShiftID:       params.ShiftID,
		TargetShiftID: params.TargetShiftID,
		Status:        models.RequestStatusPending,
		CreatedAt:     s.now().UnixMilli(),
		Message:       params.Message,
		TravelMinutes: estimate.EstimatedMinutes,
	}

	if err := s.persistence.SaveRequest(ctx, request); err != nil {
		return nil, err
	}

	s.publish(ctx, request.ID, events.RequestCreated{
		BaseEvent: s.baseEvent(events.RequestCreatedEvent, request.From),
		RequestID: request.ID,
		ShiftID:   request.ShiftID,
		ToStoreID: request.To,
		Kind:      request.Type,
	})

	return request, nil
}

// Approve resolves a pending request in the caller's favor.
//
// The advisory lock serializes approvals of the same request id; contention
// surfaces as ErrApprovalInProgress ("already being processed", not
// necessarily already resolved). After the lock, the request is re-fetched
// and its status re-checked, so a second approver that arrives after the
// winner released the lock observes ErrAlreadyProcessed instead.
//
// Shift-level exclusivity across different request ids is best-effort: the
// invalidation cascade marks every other pending sibling for the same shift
// invalid, but two requests approved in the same narrow window can both
// reach approved before either cascade runs. See DESIGN.md.
func (s *Requests) Approve(ctx context.Context, id string) (*models.Request, error) {
	ctx, span := s.startSpan(ctx, "requests.approve", attribute.String(otelhelper.RequestIDKey, id))
	defer s.endSpan(span)

	lockKey := "approve:" + id

	acquired, err := s.locks.Acquire(ctx, lockKey)
	if err != nil {
		return nil, s.spanError(span, err)
	}

	if !acquired {
		return nil, s.spanError(span, fmt.Errorf("request %s: %w", id, ErrApprovalInProgress))
	}

	defer func() {
		if err := s.locks.Release(ctx, lockKey); err != nil {
			s.logger.WarnContext(ctx, "failed to release approval lock", "key", lockKey, "error", err)
		}
	}()

	request, err := s.persistence.RequestByID(ctx, id)
	if err != nil {
		return nil, s.spanError(span, err)
	}

	if request.Status != models.RequestStatusPending {
		return nil, s.spanError(span, fmt.Errorf("request %s is %s: %w", id, request.Status, ErrAlreadyProcessed))
	}

	approvedAt := s.now().UnixMilli()
	approved := models.RequestStatusApproved

	request, err = s.persistence.UpdateRequest(ctx, id, models.RequestPatch{
		Status:     &approved,
		ApprovedAt: &approvedAt,
	})
	if err != nil {
		return nil, s.spanError(span, err)
	}

	s.cascadeShiftUpdate(ctx, request)

	invalidated, err := s.invalidateSiblings(ctx, request)
	if err != nil {
		return nil, s.spanError(span, err)
	}

	s.publish(ctx, request.ID, events.RequestApproved{
		BaseEvent:      s.baseEvent(events.RequestApprovedEvent, request.To),
		RequestID:      request.ID,
		ShiftID:        request.ShiftID,
		InvalidatedIDs: invalidated,
	})

	return request, nil
}

// Reject marks a pending request rejected. No shift cascade and no sibling
// invalidation. Rejecting an already-rejected request is a no-op returning
// the terminal record; any other terminal state is ErrAlreadyProcessed.
func (s *Requests) Reject(ctx context.Context, id string) (*models.Request, error) {
	request, err := s.persistence.RequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch request.Status {
	case models.RequestStatusRejected:
		return request, nil
	case models.RequestStatusApproved, models.RequestStatusInvalid:
		return nil, fmt.Errorf("request %s is %s: %w", id, request.Status, ErrAlreadyProcessed)
	case models.RequestStatusPending:
	}

	resolvedAt := s.now().UnixMilli()
	rejected := models.RequestStatusRejected

	request, err = s.persistence.UpdateRequest(ctx, id, models.RequestPatch{
		Status:     &rejected,
		ApprovedAt: &resolvedAt,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, request.ID, events.RequestRejected{
		BaseEvent: s.baseEvent(events.RequestRejectedEvent, request.To),
		RequestID: request.ID,
		ShiftID:   request.ShiftID,
	})

	return request, nil
}

// ListFilter narrows List results. Zero values match everything.
type ListFilter struct {
	StoreID   string
	Direction string // "sent", "received", or "" for both
	Status    models.RequestStatus
}

// List returns requests matching the filter, newest first.
func (s *Requests) List(ctx context.Context, filter ListFilter) ([]*models.Request, error) {
	requests, err := s.persistence.Requests(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Request, 0, len(requests))

	for _, request := range requests {
		if filter.StoreID != "" {
			switch filter.Direction {
			case "sent":
				if request.From != filter.StoreID {
					continue
				}
			case "received":
				if request.To != filter.StoreID {
					continue
				}
			default:
				if request.From != filter.StoreID && request.To != filter.StoreID {
					continue
				}
			}
		}

		if filter.Status != "" && request.Status != filter.Status {
			continue
		}

		matched = append(matched, request)
	}

	sortRequestsNewestFirst(matched)

	return matched, nil
}

// cascadeShiftUpdate reflects an approval on the originating shift. A shift
// that vanished since creation is logged and skipped, matching the tolerant
// behavior of the inbox flow.
func (s *Requests) cascadeShiftUpdate(ctx context.Context, request *models.Request) {
	shift, err := s.persistence.ShiftByID(ctx, request.ShiftID)
	if err != nil {
		s.logger.WarnContext(ctx, "approved request has no shift to update",
			"request_id", request.ID, "shift_id", request.ShiftID, "error", err)

		return
	}

	normal := models.ShiftStatusNormal
	patch := models.ShiftPatch{Status: &normal}

	var notes string

	if request.Type == models.RequestTypeRecruiting {
		support := request.TargetIDs[0]
		patch.SupportWorkerID = &support
		notes = shift.Notes + " (covered by partner-store support)"
	} else {
		notes = shift.Notes + " (surplus staff dispatched to partner store)"
	}

	patch.Notes = &notes

	if _, err := s.persistence.UpdateShift(ctx, request.ShiftID, patch); err != nil {
		s.logger.ErrorContext(ctx, "failed to cascade approval to shift",
			"request_id", request.ID, "shift_id", request.ShiftID, "error", err)
	}
}

// invalidateSiblings marks every other pending request for the same shift
// invalid, guaranteeing at most one approved request per shift among the
// requests visible at this moment.
func (s *Requests) invalidateSiblings(ctx context.Context, approved *models.Request) ([]string, error) {
	requests, err := s.persistence.Requests(ctx)
	if err != nil {
		return nil, err
	}

	invalid := models.RequestStatusInvalid

	var invalidated []string

	for _, sibling := range requests {
		if sibling.ID == approved.ID || sibling.ShiftID != approved.ShiftID {
			continue
		}

		if sibling.Status != models.RequestStatusPending {
			continue
		}

		if _, err := s.persistence.UpdateRequest(ctx, sibling.ID, models.RequestPatch{Status: &invalid}); err != nil {
			return invalidated, err
		}

		invalidated = append(invalidated, sibling.ID)
	}

	return invalidated, nil
}

func (s *Requests) baseEvent(eventType events.EventType, storeID string) events.BaseEvent {
	return events.BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: s.now().UTC(),
		StoreID:   storeID,
	}
}

func (s *Requests) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.eventBus == nil {
		return
	}

	if err := s.eventBus.Publish(ctx, key, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event",
			"event_type", event.GetType(), "error", err)
	}
}

func (s *Requests) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if s.tracer == nil {
		return ctx, nil
	}

	return otelhelper.StartSpan(ctx, s.tracer, name, attrs...)
}

func (s *Requests) endSpan(span trace.Span) {
	if span != nil {
		span.End()
	}
}

func (s *Requests) spanError(span trace.Span, err error) error {
	if span != nil {
		otelhelper.SetError(span, err)
	}

	return err
}

func sortRequestsNewestFirst(requests []*models.Request) {
	for i := 1; i < len(requests); i++ {
		for j := i; j > 0 && requests[j].CreatedAt > requests[j-1].CreatedAt; j-- {
			requests[j], requests[j-1] = requests[j-1], requests[j]
		}
	}
}
