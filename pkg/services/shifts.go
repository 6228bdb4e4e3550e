package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shiftmash/shiftmash/pkg/events"
	"github.com/shiftmash/shiftmash/pkg/eventbus"
	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/persistence"
	"github.com/shiftmash/shiftmash/pkg/timeutil"
)

// Coverage is the required headcount per role for one store. Roles absent
// from the table default to one.
type Coverage map[string]int

// Required returns the headcount the table demands for a role.
func (c Coverage) Required(role string) int {
	if c == nil {
		return 1
	}

	if n, ok := c[role]; ok && n > 0 {
		return n
	}

	return 1
}

// Shifts reclassifies shift coverage and aggregates per-store summaries.
// Matching never calls it; it runs from the classifier daemon or an explicit
// reclassify call.
type Shifts struct {
	persistence persistence.Persistence
	eventBus    eventbus.EventPublisher
	coverage    map[string]Coverage // by store id
	logger      *slog.Logger
	now         func() time.Time
}

// NewShifts creates the classifier service. EventBus may be nil; coverage
// may be nil for all-default headcounts.
func NewShifts(
	persistence persistence.Persistence,
	eventBus eventbus.EventPublisher,
	coverage map[string]Coverage,
	logger *slog.Logger,
) *Shifts {
	if logger == nil {
		logger = slog.Default()
	}

	return &Shifts{
		persistence: persistence,
		eventBus:    eventBus,
		coverage:    coverage,
		logger:      logger,
		now:         time.Now,
	}
}

// Classify derives the coverage status of one shift given the rest of its
// store's day. An unstaffed shift is a shortage. A staffed shift whose
// role/window overlap group exceeds the required headcount is a surplus.
func (s *Shifts) Classify(shift *models.Shift, dayShifts []*models.Shift) models.ShiftStatus {
	if shift.WorkerID == "" && shift.SupportWorkerID == "" {
		return models.ShiftStatusShortage
	}

	required := s.coverage[shift.StoreID].Required(shift.Role)
	staffed := 0

	for _, other := range dayShifts {
		if other.StoreID != shift.StoreID || other.Role != shift.Role {
			continue
		}

		if other.WorkerID == "" && other.SupportWorkerID == "" {
			continue
		}

		overlaps, err := timeutil.Overlaps(shift.Window(), other.Window())
		if err != nil || !overlaps {
			continue
		}

		staffed++
	}

	if staffed > required {
		return models.ShiftStatusSurplus
	}

	return models.ShiftStatusNormal
}

// Reclassify recomputes the status of every shift on the given date and
// persists the ones that changed, emitting a coverage event per transition.
// It returns the number of shifts updated.
func (s *Shifts) Reclassify(ctx context.Context, date string) (int, error) {
	shifts, err := s.persistence.ShiftsForDate(ctx, date)
	if err != nil {
		return 0, err
	}

	updated := 0

	for _, shift := range shifts {
		status := s.Classify(shift, shifts)
		if status == shift.Status {
			continue
		}

		oldStatus := shift.Status

		if _, err := s.persistence.UpdateShift(ctx, shift.ID, models.ShiftPatch{Status: &status}); err != nil {
			return updated, err
		}

		updated++

		s.logger.InfoContext(ctx, "shift coverage changed",
			"shift_id", shift.ID, "store_id", shift.StoreID,
			"old_status", oldStatus, "new_status", status)

		s.publish(ctx, shift.ID, events.ShiftCoverageChanged{
			BaseEvent: events.BaseEvent{
				ID:        uuid.NewString(),
				Type:      events.ShiftCoverageChangedEvent,
				Timestamp: s.now().UTC(),
				StoreID:   shift.StoreID,
			},
			ShiftID:   shift.ID,
			OldStatus: oldStatus,
			NewStatus: status,
		})
	}

	return updated, nil
}

// Summary aggregates one store's day for the dashboard header.
func (s *Shifts) Summary(ctx context.Context, storeID, date string) (*models.ShiftSummary, error) {
	shifts, err := s.persistence.ShiftsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	summary := &models.ShiftSummary{}

	for _, shift := range shifts {
		if shift.StoreID != storeID {
			continue
		}

		summary.TotalShifts++

		switch shift.Status {
		case models.ShiftStatusShortage:
			summary.ShortageCount++
		case models.ShiftStatusSurplus:
			summary.SurplusCount++
		case models.ShiftStatusNormal:
			summary.NormalCount++
		}
	}

	requests, err := s.persistence.Requests(ctx)
	if err != nil {
		return nil, err
	}

	for _, request := range requests {
		if request.Status != models.RequestStatusPending {
			continue
		}

		if request.From == storeID || request.To == storeID {
			summary.PendingRequests++
		}
	}

	return summary, nil
}

func (s *Shifts) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.eventBus == nil {
		return
	}

	if err := s.eventBus.Publish(ctx, key, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event",
			"event_type", event.GetType(), "error", err)
	}
}
