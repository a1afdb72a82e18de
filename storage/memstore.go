package storage

import (
	"context"
	"sync"
)

// MemStore implements Store in memory. Used by tests and demos.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory content store.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

// Put stores data and returns its content id.
func (ms *MemStore) Put(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyContent
	}

	contentID := ContentID(data)

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.blobs[contentID]; !ok {
		stored := make([]byte, len(data))
		copy(stored, data)
		ms.blobs[contentID] = stored
	}
	return contentID, nil
}

// Get retrieves data by content id.
func (ms *MemStore) Get(ctx context.Context, contentID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateContentID(contentID); err != nil {
		return nil, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	data, ok := ms.blobs[contentID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Has checks whether content exists for the given id.
func (ms *MemStore) Has(ctx context.Context, contentID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validateContentID(contentID); err != nil {
		return false, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	_, ok := ms.blobs[contentID]
	return ok, nil
}

// Size returns the size in bytes of the stored content.
func (ms *MemStore) Size(ctx context.Context, contentID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := validateContentID(contentID); err != nil {
		return 0, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	data, ok := ms.blobs[contentID]
	if !ok {
		return 0, ErrNotFound
	}
	return int64(len(data)), nil
}

// Len returns the number of distinct blobs stored.
func (ms *MemStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.blobs)
}
