package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/persistence"
)

const demoPartnerLimit = 2

// Demo seeds reciprocal postings from partner stores so a freshly seeded
// environment has matches to browse. Strictly a demo aid, never part of the
// exchange flow.
type Demo struct {
	persistence persistence.Persistence
	logger      *slog.Logger
	now         func() time.Time
}

// NewDemo creates the demo posting generator.
func NewDemo(persistence persistence.Persistence, logger *slog.Logger) *Demo {
	if logger == nil {
		logger = slog.Default()
	}

	return &Demo{
		persistence: persistence,
		logger:      logger,
		now:         time.Now,
	}
}

// GenerateAvailablesForRecruiting opens one available posting per partner
// store (up to two) mirroring the recruiting posting's role, window, and
// date, linked back via MatchedFromRecruitingID. A missing recruiting id, a
// partner with no qualified worker, and an already-generated counterpart are
// all quiet no-ops. Returns the postings created.
func (d *Demo) GenerateAvailablesForRecruiting(ctx context.Context, recruitingID string) ([]*models.Available, error) {
	publishing, err := d.persistence.LoadPublishing(ctx)
	if err != nil {
		return nil, err
	}

	recruiting := publishing.FindRecruiting(recruitingID)
	if recruiting == nil {
		d.logger.DebugContext(ctx, "no recruiting posting to mirror", "recruiting_id", recruitingID)

		return nil, nil
	}

	stores, err := d.persistence.Stores(ctx)
	if err != nil {
		return nil, err
	}

	workers, err := d.persistence.Workers(ctx)
	if err != nil {
		return nil, err
	}

	var created []*models.Available

	for _, store := range stores {
		if store.ID == recruiting.StoreID || len(created) == demoPartnerLimit {
			continue
		}

		if d.hasGeneratedAvailable(publishing, recruitingID, store.ID) {
			continue
		}

		worker := firstWorkerWithRole(workers, store.ID, recruiting.Role)
		if worker == nil {
			continue
		}

		available := &models.Available{
			ID:                      fmt.Sprintf("avl_demo_%s_%s", recruitingID, store.ID),
			StoreID:                 store.ID,
			WorkerID:                worker.ID,
			ShiftID:                 recruiting.ShiftID,
			Role:                    recruiting.Role,
			Start:                   recruiting.Start,
			End:                     recruiting.End,
			Date:                    recruiting.Date,
			Open:                    true,
			CreatedAt:               d.now().UnixMilli(),
			Message:                 fmt.Sprintf("%s can help with %s", worker.Name, recruiting.Role),
			MatchedFromRecruitingID: recruitingID,
		}

		publishing.Availables = append(publishing.Availables, available)
		created = append(created, available)
	}

	if len(created) == 0 {
		return nil, nil
	}

	if err := d.persistence.SavePublishing(ctx, publishing); err != nil {
		return nil, err
	}

	return created, nil
}

// GenerateRecruitingsForAvailable is the mirror image: partner stores open
// recruiting postings matching an available posting's role, window, and
// date, linked via MatchedFromAvailableID.
func (d *Demo) GenerateRecruitingsForAvailable(ctx context.Context, availableID string) ([]*models.Recruiting, error) {
	publishing, err := d.persistence.LoadPublishing(ctx)
	if err != nil {
		return nil, err
	}

	available := publishing.FindAvailable(availableID)
	if available == nil {
		d.logger.DebugContext(ctx, "no available posting to mirror", "available_id", availableID)

		return nil, nil
	}

	stores, err := d.persistence.Stores(ctx)
	if err != nil {
		return nil, err
	}

	var created []*models.Recruiting

	for _, store := range stores {
		if store.ID == available.StoreID || len(created) == demoPartnerLimit {
			continue
		}

		if d.hasGeneratedRecruiting(publishing, availableID, store.ID) {
			continue
		}

		recruiting := &models.Recruiting{
			ID:                     fmt.Sprintf("rec_demo_%s_%s", availableID, store.ID),
			StoreID:                store.ID,
			ShiftID:                available.ShiftID,
			Role:                   available.Role,
			Start:                  available.Start,
			End:                    available.End,
			Date:                   available.Date,
			Open:                   true,
			CreatedAt:              d.now().UnixMilli(),
			Message:                fmt.Sprintf("%s needs %s cover, %s-%s", store.Name, available.Role, available.Start, available.End),
			MatchedFromAvailableID: availableID,
		}

		publishing.Recruitings = append(publishing.Recruitings, recruiting)
		created = append(created, recruiting)
	}

	if len(created) == 0 {
		return nil, nil
	}

	if err := d.persistence.SavePublishing(ctx, publishing); err != nil {
		return nil, err
	}

	return created, nil
}

func (d *Demo) hasGeneratedAvailable(publishing *models.Publishing, recruitingID, storeID string) bool {
	for _, a := range publishing.Availables {
		if a.MatchedFromRecruitingID == recruitingID && a.StoreID == storeID {
			return true
		}
	}

	return false
}

func (d *Demo) hasGeneratedRecruiting(publishing *models.Publishing, availableID, storeID string) bool {
	for _, r := range publishing.Recruitings {
		if r.MatchedFromAvailableID == availableID && r.StoreID == storeID {
			return true
		}
	}

	return false
}

func firstWorkerWithRole(workers []*models.Worker, storeID, role string) *models.Worker {
	for _, worker := range workers {
		if worker.StoreID == storeID && worker.HasRole(role) {
			return worker
		}
	}

	return nil
}
