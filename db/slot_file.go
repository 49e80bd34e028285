package db

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// fileEnvelope wraps the slot blob with its version on disk.
type fileEnvelope struct {
	Version int64           `json:"version"`
	Data    json.RawMessage `json:"data"`
}

type fileSlot struct {
	mu   sync.Mutex
	path string
}

// NewFileSlot returns a Slot stored as a single JSON file. Writes go to a
// temp file and rename into place so a crash never leaves a torn blob.
func NewFileSlot(dir, key string) (Slot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating slot directory")
	}
	return &fileSlot{path: filepath.Join(dir, key+".json")}, nil
}

func (f *fileSlot) Read(_ context.Context) ([]byte, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readLocked()
}

func (f *fileSlot) readLocked() ([]byte, int64, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, errors.Wrap(err, "reading slot file")
	}
	var env fileEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, 0, errors.Wrap(err, "slot file holds malformed data")
	}
	return env.Data, env.Version, nil
}

func (f *fileSlot) Write(_ context.Context, data []byte, expectedVersion int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, current, err := f.readLocked()
	if err != nil {
		return err
	}
	if current != expectedVersion {
		return ErrVersionConflict
	}

	raw, err := json.Marshal(fileEnvelope{Version: expectedVersion + 1, Data: data})
	if err != nil {
		return errors.Wrap(err, "serializing slot envelope")
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrap(err, "writing slot temp file")
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errors.Wrap(err, "replacing slot file")
	}
	return nil
}

func (f *fileSlot) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing slot file")
	}
	return nil
}
