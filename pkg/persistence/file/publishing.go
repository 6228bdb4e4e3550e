package file

import (
	"context"

	"github.com/shiftmash/shiftmash/pkg/models"
)

// LoadPublishing reads the whole publishing container. An absent file yields
// an empty container, matching a fresh deployment with no postings yet.
func (fp *Persistence) LoadPublishing(_ context.Context) (*models.Publishing, error) {
	publishing := &models.Publishing{
		Recruitings: []*models.Recruiting{},
		Availables:  []*models.Available{},
	}

	if err := fp.readCollection("LoadPublishing", publishingsFile, publishing); err != nil {
		return nil, err
	}

	return publishing, nil
}

// SavePublishing rewrites the whole publishing container.
func (fp *Persistence) SavePublishing(_ context.Context, publishing *models.Publishing) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	return fp.writeCollection("SavePublishing", publishingsFile, publishing)
}
