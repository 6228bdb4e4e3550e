package redis

import (
	"context"
	"fmt"

	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/persistence"
)

// Stores returns the store reference data.
func (rp *Persistence) Stores(ctx context.Context) ([]*models.Store, error) {
	var stores []*models.Store
	if err := rp.readKey(ctx, "Stores", storesKey, &stores); err != nil {
		return nil, err
	}

	return stores, nil
}

// StoreByID returns one store by id.
func (rp *Persistence) StoreByID(ctx context.Context, id string) (*models.Store, error) {
	stores, err := rp.Stores(ctx)
	if err != nil {
		return nil, err
	}

	for _, store := range stores {
		if store.ID == id {
			return store, nil
		}
	}

	return nil, fmt.Errorf("store %s: %w", id, persistence.ErrStoreNotFound)
}

// Workers returns the worker reference data.
func (rp *Persistence) Workers(ctx context.Context) ([]*models.Worker, error) {
	var workers []*models.Worker
	if err := rp.readKey(ctx, "Workers", workersKey, &workers); err != nil {
		return nil, err
	}

	return workers, nil
}

// WorkerByID returns one worker by id.
func (rp *Persistence) WorkerByID(ctx context.Context, id string) (*models.Worker, error) {
	workers, err := rp.Workers(ctx)
	if err != nil {
		return nil, err
	}

	for _, worker := range workers {
		if worker.ID == id {
			return worker, nil
		}
	}

	return nil, fmt.Errorf("worker %s: %w", id, persistence.ErrWorkerNotFound)
}

func (rp *Persistence) readShifts(ctx context.Context) ([]*models.Shift, error) {
	var shifts []*models.Shift
	if err := rp.readKey(ctx, "Shifts", shiftsKey, &shifts); err != nil {
		return nil, err
	}

	return shifts, nil
}

// ShiftsForDate returns all shifts on one day, across stores.
func (rp *Persistence) ShiftsForDate(ctx context.Context, date string) ([]*models.Shift, error) {
	shifts, err := rp.readShifts(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Shift, 0, len(shifts))

	for _, shift := range shifts {
		if shift.Date == date {
			matched = append(matched, shift)
		}
	}

	return matched, nil
}

// ShiftByID returns one shift by id.
func (rp *Persistence) ShiftByID(ctx context.Context, id string) (*models.Shift, error) {
	shifts, err := rp.readShifts(ctx)
	if err != nil {
		return nil, err
	}

	for _, shift := range shifts {
		if shift.ID == id {
			return shift, nil
		}
	}

	return nil, fmt.Errorf("shift %s: %w", id, persistence.ErrShiftNotFound)
}

// UpdateShift applies a patch to one shift and rewrites the collection.
func (rp *Persistence) UpdateShift(ctx context.Context, id string, patch models.ShiftPatch) (*models.Shift, error) {
	shifts, err := rp.readShifts(ctx)
	if err != nil {
		return nil, err
	}

	for _, shift := range shifts {
		if shift.ID != id {
			continue
		}

		patch.Apply(shift)

		if err := rp.writeKey(ctx, "UpdateShift", shiftsKey, shifts); err != nil {
			return nil, err
		}

		return shift, nil
	}

	return nil, fmt.Errorf("shift %s: %w", id, persistence.ErrShiftNotFound)
}

// LoadPublishing reads the whole publishing container.
func (rp *Persistence) LoadPublishing(ctx context.Context) (*models.Publishing, error) {
	publishing := &models.Publishing{
		Recruitings: []*models.Recruiting{},
		Availables:  []*models.Available{},
	}

	if err := rp.readKey(ctx, "LoadPublishing", publishingsKey, publishing); err != nil {
		return nil, err
	}

	return publishing, nil
}

// SavePublishing rewrites the whole publishing container.
func (rp *Persistence) SavePublishing(ctx context.Context, publishing *models.Publishing) error {
	return rp.writeKey(ctx, "SavePublishing", publishingsKey, publishing)
}

func (rp *Persistence) readRequests(ctx context.Context) ([]*models.Request, error) {
	var requests []*models.Request
	if err := rp.readKey(ctx, "Requests", requestsKey, &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

// Requests returns every request record.
func (rp *Persistence) Requests(ctx context.Context) ([]*models.Request, error) {
	return rp.readRequests(ctx)
}

// RequestByID returns one request by id.
func (rp *Persistence) RequestByID(ctx context.Context, id string) (*models.Request, error) {
	requests, err := rp.readRequests(ctx)
	if err != nil {
		return nil, err
	}

	for _, request := range requests {
		if request.ID == id {
			return request, nil
		}
	}

	return nil, fmt.Errorf("request %s: %w", id, persistence.ErrRequestNotFound)
}

// SaveRequest appends a new request, or replaces one with the same id.
func (rp *Persistence) SaveRequest(ctx context.Context, request *models.Request) error {
	requests, err := rp.readRequests(ctx)
	if err != nil {
		return err
	}

	replaced := false

	for i, existing := range requests {
		if existing.ID == request.ID {
			requests[i] = request
			replaced = true

			break
		}
	}

	if !replaced {
		requests = append(requests, request)
	}

	return rp.writeKey(ctx, "SaveRequest", requestsKey, requests)
}

// UpdateRequest applies a patch to one request and rewrites the collection.
func (rp *Persistence) UpdateRequest(ctx context.Context, id string, patch models.RequestPatch) (*models.Request, error) {
	requests, err := rp.readRequests(ctx)
	if err != nil {
		return nil, err
	}

	for _, request := range requests {
		if request.ID != id {
			continue
		}

		patch.Apply(request)

		if err := rp.writeKey(ctx, "UpdateRequest", requestsKey, requests); err != nil {
			return nil, err
		}

		return request, nil
	}

	return nil, fmt.Errorf("request %s: %w", id, persistence.ErrRequestNotFound)
}

// SeedStores replaces the store reference collection.
func (rp *Persistence) SeedStores(ctx context.Context, stores []*models.Store) error {
	return rp.writeKey(ctx, "SeedStores", storesKey, stores)
}

// SeedWorkers replaces the worker reference collection.
func (rp *Persistence) SeedWorkers(ctx context.Context, workers []*models.Worker) error {
	return rp.writeKey(ctx, "SeedWorkers", workersKey, workers)
}

// SeedShifts replaces the shift collection.
func (rp *Persistence) SeedShifts(ctx context.Context, shifts []*models.Shift) error {
	return rp.writeKey(ctx, "SeedShifts", shiftsKey, shifts)
}
