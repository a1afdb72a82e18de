package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store using the local filesystem.
// Blobs are stored at: {baseDir}/{contentID[:2]}/{contentID}
// The first two hex chars are used as a subdirectory for sharding.
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a new file-based content store.
// The directory is created if it does not exist.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, ErrInvalidBaseDir
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	return &FileStore{
		baseDir: baseDir,
	}, nil
}

// blobPath returns the full file path for a content id.
func (fs *FileStore) blobPath(contentID string) string {
	return filepath.Join(fs.baseDir, contentID[:2], contentID)
}

// Put stores data and returns its content id. Re-putting identical bytes
// is a no-op that returns the same id.
func (fs *FileStore) Put(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyContent
	}

	contentID := ContentID(data)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := fs.blobPath(contentID)
	if _, err := os.Stat(path); err == nil {
		return contentID, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	return contentID, nil
}

// Get retrieves data by content id.
func (fs *FileStore) Get(ctx context.Context, contentID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateContentID(contentID); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.blobPath(contentID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	return data, nil
}

// Has checks whether content exists for the given id.
func (fs *FileStore) Has(ctx context.Context, contentID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validateContentID(contentID); err != nil {
		return false, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, err := os.Stat(fs.blobPath(contentID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	return true, nil
}

// Size returns the size in bytes of the stored content.
func (fs *FileStore) Size(ctx context.Context, contentID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := validateContentID(contentID); err != nil {
		return 0, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	info, err := os.Stat(fs.blobPath(contentID))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	return info.Size(), nil
}
