package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shiftmash/shiftmash/pkg/geo"
	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/persistence"
	"github.com/shiftmash/shiftmash/pkg/timeutil"
)

// Direction selects which publishing collection a search scans.
type Direction string

const (
	// DirectionSeekingStaff searches Available postings: the shift is
	// understaffed and needs a worker from another store.
	DirectionSeekingStaff Direction = "seeking-staff"

	// DirectionOfferingStaff searches Recruiting postings: the shift has
	// surplus staff to lend to another store's opening.
	DirectionOfferingStaff Direction = "offering-staff"
)

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionSeekingStaff, DirectionOfferingStaff:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Candidates searches the publishing collections for compatible postings at
// other stores. Every search re-fetches; nothing is cached across calls.
type Candidates struct {
	persistence persistence.Persistence
	config      MatchConfig
}

// NewCandidates creates a candidate finder.
func NewCandidates(persistence persistence.Persistence, config MatchConfig) *Candidates {
	return &Candidates{
		persistence: persistence,
		config:      config.withDefaults(),
	}
}

// Find returns ranked candidates for a shift. The filter pipeline is applied
// in order, short-circuiting: posting open, different store, exact role
// match, window overlap, distance within bound. Zero matches is an empty
// slice, not an error.
func (c *Candidates) Find(ctx context.Context, shift *models.Shift, direction Direction) ([]*models.Candidate, error) {
	if _, err := timeutil.ToMinutes(shift.Start); err != nil {
		return nil, err
	}

	if _, err := timeutil.ToMinutes(shift.End); err != nil {
		return nil, err
	}

	stores, err := c.persistence.Stores(ctx)
	if err != nil {
		return nil, err
	}

	currentStore := storeByID(stores, shift.StoreID)
	if currentStore == nil {
		return []*models.Candidate{}, nil
	}

	publishing, err := c.persistence.LoadPublishing(ctx)
	if err != nil {
		return nil, err
	}

	switch direction {
	case DirectionSeekingStaff:
		workers, err := c.persistence.Workers(ctx)
		if err != nil {
			return nil, err
		}

		return c.findAvailableWorkers(shift, currentStore, stores, workers, publishing.Availables), nil
	case DirectionOfferingStaff:
		return c.findRecruitingOpenings(shift, currentStore, stores, publishing.Recruitings), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}
}

// findAvailableWorkers matches a shortage shift against staff-for-loan
// postings from other stores.
func (c *Candidates) findAvailableWorkers(
	shift *models.Shift,
	currentStore *models.Store,
	stores []*models.Store,
	workers []*models.Worker,
	availables []*models.Available,
) []*models.Candidate {
	candidates := make([]*models.Candidate, 0, len(availables))

	for _, available := range availables {
		if !available.Open {
			continue
		}

		if available.StoreID == shift.StoreID {
			continue
		}

		if available.Role != shift.Role {
			continue
		}

		if !c.windowsOverlap(shift, available.Window()) {
			continue
		}

		worker := workerByID(workers, available.WorkerID)
		store := storeByID(stores, available.StoreID)

		if worker == nil || store == nil {
			continue
		}

		distance := geo.Estimate(currentStore.Location(), store.Location(), c.config.Travel)
		if distance.DistanceKm > c.config.MaxDistanceKm {
			continue
		}

		candidates = append(candidates, &models.Candidate{
			ID:         available.ID,
			Kind:       models.CandidateWorker,
			WorkerID:   worker.ID,
			WorkerName: worker.Name,
			StoreID:    store.ID,
			StoreName:  store.Name,
			Role:       available.Role,
			Start:      available.Start,
			End:        available.End,
			Rating:     worker.Rating,
			Experience: worker.Experience,
			Avatar:     worker.Avatar,
			Distance:   distance,
			Message:    available.Message,
			CreatedAt:  available.CreatedAt,
		})
	}

	// distance ascending, then rating and experience descending
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]

		if a.Distance.DistanceKm != b.Distance.DistanceKm {
			return a.Distance.DistanceKm < b.Distance.DistanceKm
		}

		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}

		return a.Experience > b.Experience
	})

	return c.truncate(candidates)
}

// findRecruitingOpenings matches a surplus shift against help-wanted
// postings from other stores.
func (c *Candidates) findRecruitingOpenings(
	shift *models.Shift,
	currentStore *models.Store,
	stores []*models.Store,
	recruitings []*models.Recruiting,
) []*models.Candidate {
	candidates := make([]*models.Candidate, 0, len(recruitings))

	for _, recruiting := range recruitings {
		if !recruiting.Open {
			continue
		}

		if recruiting.StoreID == shift.StoreID {
			continue
		}

		if recruiting.Role != shift.Role {
			continue
		}

		if !c.windowsOverlap(shift, recruiting.Window()) {
			continue
		}

		store := storeByID(stores, recruiting.StoreID)
		if store == nil {
			continue
		}

		distance := geo.Estimate(currentStore.Location(), store.Location(), c.config.Travel)
		if distance.DistanceKm > c.config.MaxDistanceKm {
			continue
		}

		candidates = append(candidates, &models.Candidate{
			ID:        recruiting.ID,
			Kind:      models.CandidateRecruiting,
			StoreID:   store.ID,
			StoreName: store.Name,
			Role:      recruiting.Role,
			Start:     recruiting.Start,
			End:       recruiting.End,
			Distance:  distance,
			Message:   recruiting.Message,
			CreatedAt: recruiting.CreatedAt,
		})
	}

	// distance ascending, then newest posting first
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]

		if a.Distance.DistanceKm != b.Distance.DistanceKm {
			return a.Distance.DistanceKm < b.Distance.DistanceKm
		}

		return a.CreatedAt > b.CreatedAt
	})

	return c.truncate(candidates)
}

// windowsOverlap is the sole time-compatibility predicate. A posting with a
// malformed window simply fails the filter.
func (c *Candidates) windowsOverlap(shift *models.Shift, window timeutil.Range) bool {
	overlaps, err := timeutil.Overlaps(shift.Window(), window)
	if err != nil {
		return false
	}

	return overlaps
}

func (c *Candidates) truncate(candidates []*models.Candidate) []*models.Candidate {
	if len(candidates) > c.config.MaxCandidates {
		return candidates[:c.config.MaxCandidates]
	}

	return candidates
}

func storeByID(stores []*models.Store, id string) *models.Store {
	for _, store := range stores {
		if store.ID == id {
			return store
		}
	}

	return nil
}

func workerByID(workers []*models.Worker, id string) *models.Worker {
	for _, worker := range workers {
		if worker.ID == id {
			return worker
		}
	}

	return nil
}
