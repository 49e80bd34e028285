package db

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// ErrVersionConflict is returned by Slot.Write when the slot changed since
// the caller read it. Callers re-read and retry.
var ErrVersionConflict = errors.New("slot version conflict")

// Slot is a single keyed storage cell holding one serialized blob. Reports
// persist as one JSON array in one slot; every write replaces the whole
// blob. Writes are compare-and-swap on the slot version so concurrent
// writers can't silently drop each other's updates.
//
// Read reports a missing slot as (nil, 0, nil) rather than an error: an
// unprovisioned slot means an empty store, not a failure.
type Slot interface {
	Read(ctx context.Context) (data []byte, version int64, err error)
	Write(ctx context.Context, data []byte, expectedVersion int64) error
	Clear(ctx context.Context) error
}

type memSlot struct {
	mu      sync.Mutex
	data    []byte
	version int64
}

// NewMemSlot returns an in-memory Slot. Used in tests and as a scratch
// store; contents do not survive the process.
func NewMemSlot() Slot {
	return &memSlot{}
}

func (m *memSlot) Read(_ context.Context) ([]byte, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, 0, nil
	}
	cp := make([]byte, len(m.data))
	copy(cp, m.data)
	return cp, m.version, nil
}

func (m *memSlot) Write(_ context.Context, data []byte, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.version != expectedVersion {
		return ErrVersionConflict
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.data = cp
	m.version++
	return nil
}

func (m *memSlot) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.version = 0
	return nil
}
