package file

import (
	"context"
	"fmt"

	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/persistence"
)

// Stores returns the store reference data.
func (fp *Persistence) Stores(_ context.Context) ([]*models.Store, error) {
	var stores []*models.Store
	if err := fp.readCollection("Stores", storesFile, &stores); err != nil {
		return nil, err
	}

	return stores, nil
}

// StoreByID returns one store by id.
func (fp *Persistence) StoreByID(ctx context.Context, id string) (*models.Store, error) {
	stores, err := fp.Stores(ctx)
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
func (fp *Persistence) Workers(_ context.Context) ([]*models.Worker, error) {
	var workers []*models.Worker
	if err := fp.readCollection("Workers", workersFile, &workers); err != nil {
		return nil, err
	}

	return workers, nil
}

// WorkerByID returns one worker by id.
func (fp *Persistence) WorkerByID(ctx context.Context, id string) (*models.Worker, error) {
	workers, err := fp.Workers(ctx)
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

// SeedStores replaces the store reference collection.
func (fp *Persistence) SeedStores(_ context.Context, stores []*models.Store) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	return fp.writeCollection("SeedStores", storesFile, stores)
}

// SeedWorkers replaces the worker reference collection.
func (fp *Persistence) SeedWorkers(_ context.Context, workers []*models.Worker) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	return fp.writeCollection("SeedWorkers", workersFile, workers)
}
