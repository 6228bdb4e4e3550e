package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shiftmash/shiftmash/pkg/events"
	"github.com/shiftmash/shiftmash/pkg/eventbus"
	"github.com/shiftmash/shiftmash/pkg/locking"
	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/otelhelper"
	"github.com/shiftmash/shiftmash/pkg/persistence"
	"github.com/shiftmash/shiftmash/pkg/timeutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Publishings manages the open marketplace of recruiting and available
// postings. A posting is open until exactly one transition closes it: an
// approval (which also stamps ApprovedAt) or an explicit close.
type Publishings struct {
	persistence persistence.Persistence
	locks       locking.LockManager
	eventBus    eventbus.EventPublisher
	tracer      trace.Tracer
	logger      *slog.Logger
	now         func() time.Time
}

// NewPublishings creates the publishing lifecycle service. EventBus and
// tracer may be nil.
func NewPublishings(
	persistence persistence.Persistence,
	locks locking.LockManager,
	eventBus eventbus.EventPublisher,
	tracer trace.Tracer,
	logger *slog.Logger,
) *Publishings {
	if logger == nil {
		logger = slog.Default()
	}

	return &Publishings{
		persistence: persistence,
		locks:       locks,
		eventBus:    eventBus,
		tracer:      tracer,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns the full publishing container.
func (s *Publishings) List(ctx context.Context) (*models.Publishing, error) {
	return s.persistence.LoadPublishing(ctx)
}

// PublishRecruiting opens a recruiting posting for a shift that needs cover.
// A blank message is filled in from the shift's role and window.
func (s *Publishings) PublishRecruiting(ctx context.Context, shiftID, message string) (*models.Recruiting, error) {
	shift, err := s.persistence.ShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	if message == "" {
		message = fmt.Sprintf("Looking for %s cover, %s-%s", shift.Role, shift.Start, shift.End)
	}

	recruiting := &models.Recruiting{
		ID:        "rec_" + uuid.NewString(),
		StoreID:   shift.StoreID,
		ShiftID:   shift.ID,
		Role:      shift.Role,
		Start:     shift.Start,
		End:       shift.End,
		Date:      shift.Date,
		Open:      true,
		CreatedAt: s.now().UnixMilli(),
		Message:   message,
	}

	publishing, err := s.persistence.LoadPublishing(ctx)
	if err != nil {
		return nil, err
	}

	publishing.Recruitings = append(publishing.Recruitings, recruiting)

	if err := s.persistence.SavePublishing(ctx, publishing); err != nil {
		return nil, err
	}

	s.publish(ctx, recruiting.ID, events.PublishingOpened{
		BaseEvent:    s.baseEvent(events.PublishingOpenedEvent, recruiting.StoreID),
		PublishingID: recruiting.ID,
		Kind:         models.KindRecruiting,
		ShiftID:      recruiting.ShiftID,
		Role:         recruiting.Role,
	})

	return recruiting, nil
}

// PublishAvailable opens an available posting offering a worker to partner
// stores. The worker must belong to the shift's store and hold the shift's
// role.
func (s *Publishings) PublishAvailable(ctx context.Context, shiftID, workerID, message string) (*models.Available, error) {
	shift, err := s.persistence.ShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	worker, err := s.persistence.WorkerByID(ctx, workerID)
	if err != nil {
		return nil, err
	}

	if worker.StoreID != shift.StoreID {
		return nil, fmt.Errorf("worker %s belongs to store %s: %w", workerID, worker.StoreID, ErrWorkerNotAtStore)
	}

	if !worker.HasRole(shift.Role) {
		return nil, fmt.Errorf("worker %s lacks role %s: %w", workerID, shift.Role, ErrWorkerMissingRole)
	}

	if message == "" {
		message = fmt.Sprintf("%s available for %s, %s-%s", worker.Name, shift.Role, shift.Start, shift.End)
	}

	available := &models.Available{
		ID:        "avl_" + uuid.NewString(),
		StoreID:   shift.StoreID,
		WorkerID:  workerID,
		ShiftID:   shift.ID,
		Role:      shift.Role,
		Start:     shift.Start,
		End:       shift.End,
		Date:      shift.Date,
		Open:      true,
		CreatedAt: s.now().UnixMilli(),
		Message:   message,
	}

	publishing, err := s.persistence.LoadPublishing(ctx)
	if err != nil {
		return nil, err
	}

	publishing.Availables = append(publishing.Availables, available)

	if err := s.persistence.SavePublishing(ctx, publishing); err != nil {
		return nil, err
	}

	s.publish(ctx, available.ID, events.PublishingOpened{
		BaseEvent:    s.baseEvent(events.PublishingOpenedEvent, available.StoreID),
		PublishingID: available.ID,
		Kind:         models.KindAvailable,
		ShiftID:      available.ShiftID,
		Role:         available.Role,
	})

	return available, nil
}

// Approve closes a posting in favor of approvingStoreID. The advisory lock
// on "approve:<kind>:<id>" makes exactly one of N concurrent approvals of
// the same posting succeed; losers see ErrApprovalInProgress while the lock
// is held, ErrAlreadyClosed after the winner persisted.
func (s *Publishings) Approve(ctx context.Context, kind models.PublishingKind, id, approvingStoreID string) error {
	if !kind.Valid() {
		return fmt.Errorf("publishing kind %q: %w", kind, ErrInvalidKind)
	}

	ctx, span := s.startSpan(ctx, "publishings.approve",
		attribute.String(otelhelper.PublishingIDKey, id),
		attribute.String(otelhelper.KindKey, string(kind)),
		attribute.String(otelhelper.StoreIDKey, approvingStoreID))
	defer s.endSpan(span)

	if _, err := s.persistence.StoreByID(ctx, approvingStoreID); err != nil {
		return s.spanError(span, err)
	}

	lockKey := fmt.Sprintf("approve:%s:%s", kind, id)

	acquired, err := s.locks.Acquire(ctx, lockKey)
	if err != nil {
		return s.spanError(span, err)
	}

	if !acquired {
		return s.spanError(span, fmt.Errorf("publishing %s: %w", id, ErrApprovalInProgress))
	}

	defer func() {
		if err := s.locks.Release(ctx, lockKey); err != nil {
			s.logger.WarnContext(ctx, "failed to release approval lock", "key", lockKey, "error", err)
		}
	}()

	publishing, err := s.persistence.LoadPublishing(ctx)
	if err != nil {
		return s.spanError(span, err)
	}

	approvedAt := s.now().UnixMilli()

	var shiftID string

	switch kind {
	case models.KindRecruiting:
		recruiting := publishing.FindRecruiting(id)
		if recruiting == nil {
			return s.spanError(span, fmt.Errorf("recruiting %s: %w", id, persistence.ErrPublishingItemNotFound))
		}

		if !recruiting.Open {
			return s.spanError(span, fmt.Errorf("recruiting %s: %w", id, ErrAlreadyClosed))
		}

		recruiting.Open = false
		recruiting.ApprovedAt = &approvedAt
		shiftID = recruiting.ShiftID

		s.cascadeRecruiting(ctx, recruiting, approvingStoreID)
	case models.KindAvailable:
		available := publishing.FindAvailable(id)
		if available == nil {
			return s.spanError(span, fmt.Errorf("available %s: %w", id, persistence.ErrPublishingItemNotFound))
		}

		if !available.Open {
			return s.spanError(span, fmt.Errorf("available %s: %w", id, ErrAlreadyClosed))
		}

		available.Open = false
		available.ApprovedAt = &approvedAt
		shiftID = available.ShiftID

		s.cascadeAvailable(ctx, available, approvingStoreID)
	}

	if err := s.persistence.SavePublishing(ctx, publishing); err != nil {
		return s.spanError(span, err)
	}

	s.publish(ctx, id, events.PublishingApproved{
		BaseEvent:    s.baseEvent(events.PublishingApprovedEvent, approvingStoreID),
		PublishingID: id,
		Kind:         kind,
		ShiftID:      shiftID,
	})

	return nil
}

// Close withdraws an open posting without an approval. No ApprovedAt, no
// shift cascade. Closing a closed posting is ErrAlreadyClosed.
func (s *Publishings) Close(ctx context.Context, kind models.PublishingKind, id string) error {
	if !kind.Valid() {
		return fmt.Errorf("publishing kind %q: %w", kind, ErrInvalidKind)
	}

	publishing, err := s.persistence.LoadPublishing(ctx)
	if err != nil {
		return err
	}

	var storeID string

	switch kind {
	case models.KindRecruiting:
		recruiting := publishing.FindRecruiting(id)
		if recruiting == nil {
			return fmt.Errorf("recruiting %s: %w", id, persistence.ErrPublishingItemNotFound)
		}

		if !recruiting.Open {
			return fmt.Errorf("recruiting %s: %w", id, ErrAlreadyClosed)
		}

		recruiting.Open = false
		storeID = recruiting.StoreID
	case models.KindAvailable:
		available := publishing.FindAvailable(id)
		if available == nil {
			return fmt.Errorf("available %s: %w", id, persistence.ErrPublishingItemNotFound)
		}

		if !available.Open {
			return fmt.Errorf("available %s: %w", id, ErrAlreadyClosed)
		}

		available.Open = false
		storeID = available.StoreID
	}

	if err := s.persistence.SavePublishing(ctx, publishing); err != nil {
		return err
	}

	s.publish(ctx, id, events.PublishingClosed{
		BaseEvent:    s.baseEvent(events.PublishingClosedEvent, storeID),
		PublishingID: id,
		Kind:         kind,
	})

	return nil
}

// cascadeRecruiting covers the recruiting store's shift with the first
// worker at the approving store who holds the posted role. No qualified
// worker is logged and skipped: the posting still closes, staffing is
// settled manually.
func (s *Publishings) cascadeRecruiting(ctx context.Context, recruiting *models.Recruiting, approvingStoreID string) {
	workers, err := s.persistence.Workers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load workers for recruiting cascade",
			"recruiting_id", recruiting.ID, "error", err)

		return
	}

	var support *models.Worker

	for _, worker := range workers {
		if worker.StoreID == approvingStoreID && worker.HasRole(recruiting.Role) {
			support = worker

			break
		}
	}

	if support == nil {
		s.logger.WarnContext(ctx, "approving store has no worker for posted role",
			"recruiting_id", recruiting.ID, "store_id", approvingStoreID, "role", recruiting.Role)

		return
	}

	shift, err := s.persistence.ShiftByID(ctx, recruiting.ShiftID)
	if err != nil {
		s.logger.WarnContext(ctx, "recruiting posting has no shift to update",
			"recruiting_id", recruiting.ID, "shift_id", recruiting.ShiftID, "error", err)

		return
	}

	normal := models.ShiftStatusNormal
	notes := shift.Notes + " (covered by partner-store support)"

	if _, err := s.persistence.UpdateShift(ctx, shift.ID, models.ShiftPatch{
		Status:          &normal,
		SupportWorkerID: &support.ID,
		Notes:           &notes,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to cascade recruiting approval to shift",
			"recruiting_id", recruiting.ID, "shift_id", shift.ID, "error", err)
	}
}

// cascadeAvailable assigns the offered worker to the first shortage shift at
// the approving store matching the posting's date, role, and window. No
// matching shortage is logged and skipped.
func (s *Publishings) cascadeAvailable(ctx context.Context, available *models.Available, approvingStoreID string) {
	shifts, err := s.persistence.ShiftsForDate(ctx, available.Date)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load shifts for available cascade",
			"available_id", available.ID, "error", err)

		return
	}

	for _, shift := range shifts {
		if shift.StoreID != approvingStoreID {
			continue
		}

		if shift.Status != models.ShiftStatusShortage || shift.Role != available.Role {
			continue
		}

		overlaps, err := timeutil.Overlaps(shift.Window(), available.Window())
		if err != nil || !overlaps {
			continue
		}

		normal := models.ShiftStatusNormal
		notes := shift.Notes + " (covered by partner-store support)"

		if _, err := s.persistence.UpdateShift(ctx, shift.ID, models.ShiftPatch{
			Status:          &normal,
			SupportWorkerID: &available.WorkerID,
			Notes:           &notes,
		}); err != nil {
			s.logger.ErrorContext(ctx, "failed to cascade available approval to shift",
				"available_id", available.ID, "shift_id", shift.ID, "error", err)
		}

		return
	}

	s.logger.WarnContext(ctx, "approving store has no matching shortage shift",
		"available_id", available.ID, "store_id", approvingStoreID,
		"date", available.Date, "role", available.Role)
}

func (s *Publishings) baseEvent(eventType events.EventType, storeID string) events.BaseEvent {
	return events.BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: s.now().UTC(),
		StoreID:   storeID,
	}
}

func (s *Publishings) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.eventBus == nil {
		return
	}

	if err := s.eventBus.Publish(ctx, key, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event",
			"event_type", event.GetType(), "error", err)
	}
}

func (s *Publishings) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if s.tracer == nil {
		return ctx, nil
	}

	return otelhelper.StartSpan(ctx, s.tracer, name, attrs...)
}

func (s *Publishings) endSpan(span trace.Span) {
	if span != nil {
		span.End()
	}
}

func (s *Publishings) spanError(span trace.Span, err error) error {
	if span != nil {
		otelhelper.SetError(span, err)
	}

	return err
}
