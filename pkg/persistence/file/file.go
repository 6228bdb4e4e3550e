// Package file provides file-based persistence: each collection is one JSON
// document under a root directory, the moral equivalent of the browser
// localStorage the dashboard originally persisted to.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shiftmash/shiftmash/pkg/persistence"
)

const (
	storesFile      = "stores.json"
	workersFile     = "workers.json"
	shiftsFile      = "shifts.json"
	publishingsFile = "publishings.json"
	requestsFile    = "requests.json"
)

// Persistence implements persistence.Persistence on the file system.
// Collections are rewritten wholesale on every mutation; saves go through a
// temp file and rename so no partial write is ever observable. The mutex
// serializes writers within this process only — cross-process exclusivity is
// the lock manager's job, not this layer's.
type Persistence struct {
	root string
	mu   sync.Mutex
}

// NewPersistence creates file persistence rooted at the given directory,
// accepting either a plain path or a file:// URL.
func NewPersistence(root string) (*Persistence, error) {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	if err := os.MkdirAll(cleanRoot, 0o755); err != nil {
		return nil, persistence.NewStorageError("NewPersistence", cleanRoot, err)
	}

	return &Persistence{root: cleanRoot}, nil
}

// Close performs any necessary cleanup. Nothing to do for files.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// readCollection unmarshals one collection document into out. A missing file
// leaves out untouched, so absent collections read as empty.
func (fp *Persistence) readCollection(op, name string, out any) error {
	data, err := os.ReadFile(filepath.Join(fp.root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return persistence.NewStorageError(op, name, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return persistence.NewStorageError(op, name, err)
	}

	return nil
}

// writeCollection marshals a collection and swaps it into place atomically.
func (fp *Persistence) writeCollection(op, name string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return persistence.NewStorageError(op, name, err)
	}

	target := filepath.Join(fp.root, name)

	tmp, err := os.CreateTemp(fp.root, name+".tmp-*")
	if err != nil {
		return persistence.NewStorageError(op, name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return persistence.NewStorageError(op, name, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return persistence.NewStorageError(op, name, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())

		return persistence.NewStorageError(op, name, err)
	}

	return nil
}
