package file

import (
	"context"
	"fmt"

	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/persistence"
)

func (fp *Persistence) readRequests() ([]*models.Request, error) {
	var requests []*models.Request
	if err := fp.readCollection("Requests", requestsFile, &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

// Requests returns every request record.
func (fp *Persistence) Requests(_ context.Context) ([]*models.Request, error) {
	return fp.readRequests()
}

// RequestByID returns one request by id.
func (fp *Persistence) RequestByID(_ context.Context, id string) (*models.Request, error) {
	requests, err := fp.readRequests()
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

// SaveRequest appends a new request, or replaces an existing one with the
// same id.
func (fp *Persistence) SaveRequest(_ context.Context, request *models.Request) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	requests, err := fp.readRequests()
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

	return fp.writeCollection("SaveRequest", requestsFile, requests)
}

// UpdateRequest applies a patch to one request and rewrites the collection.
func (fp *Persistence) UpdateRequest(_ context.Context, id string, patch models.RequestPatch) (*models.Request, error) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	requests, err := fp.readRequests()
	if err != nil {
		return nil, err
	}

	for _, request := range requests {
		if request.ID != id {
			continue
		}

		patch.Apply(request)

		if err := fp.writeCollection("UpdateRequest", requestsFile, requests); err != nil {
			return nil, err
		}

		return request, nil
	}

	return nil, fmt.Errorf("request %s: %w", id, persistence.ErrRequestNotFound)
}
