// Package persistence provides the data storage abstraction for shifts,
// publishing postings, and inter-store requests.
package persistence

import (
	"context"

	"github.com/shiftmash/shiftmash/pkg/models"
)

// Persistence is the core's only boundary to storage. Stores and workers are
// read-only reference data; shifts, the publishing container, and requests
// are owned by the backing store and re-fetched on every operation. No
// implementation caches authoritative state across operations.
type Persistence interface {
	Stores(ctx context.Context) ([]*models.Store, error)
	StoreByID(ctx context.Context, id string) (*models.Store, error)
	Workers(ctx context.Context) ([]*models.Worker, error)
	WorkerByID(ctx context.Context, id string) (*models.Worker, error)

	ShiftsForDate(ctx context.Context, date string) ([]*models.Shift, error)
	ShiftByID(ctx context.Context, id string) (*models.Shift, error)
	UpdateShift(ctx context.Context, id string, patch models.ShiftPatch) (*models.Shift, error)

	// LoadPublishing and SavePublishing move the whole container; both are
	// atomic from the caller's perspective. Concurrent writers may still
	// race across load/save, which the lock layer narrows.
	LoadPublishing(ctx context.Context) (*models.Publishing, error)
	SavePublishing(ctx context.Context, publishing *models.Publishing) error

	Requests(ctx context.Context) ([]*models.Request, error)
	RequestByID(ctx context.Context, id string) (*models.Request, error)
	SaveRequest(ctx context.Context, request *models.Request) error
	UpdateRequest(ctx context.Context, id string, patch models.RequestPatch) (*models.Request, error)

	// Seed writers replace whole reference collections; used by the seeding
	// CLI only, never by the matching core.
	SeedStores(ctx context.Context, stores []*models.Store) error
	SeedWorkers(ctx context.Context, workers []*models.Worker) error
	SeedShifts(ctx context.Context, shifts []*models.Shift) error

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
