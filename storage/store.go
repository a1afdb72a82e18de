// Package storage provides content-addressed storage for encrypted file
// blobs. Content ids are assigned by the store and are deterministic in
// content: putting byte-identical data twice yields the same id and does
// not duplicate the blob.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// ContentIDLen is the length of a hex-encoded content id (SHA256 output).
const ContentIDLen = 64

// Store is the capability interface for a content-addressable blob store.
// Implementations may be local or remote; the registration pipeline only
// ever sees opaque content ids.
type Store interface {
	// Put stores data and returns its content id.
	Put(ctx context.Context, data []byte) (string, error)

	// Get retrieves data by content id.
	Get(ctx context.Context, contentID string) ([]byte, error)

	// Has checks whether content exists for the given id.
	Has(ctx context.Context, contentID string) (bool, error)

	// Size returns the size in bytes of the stored content.
	Size(ctx context.Context, contentID string) (int64, error)
}

// ContentID computes the content id for data: hex-encoded SHA256.
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// validateContentID checks that id is a well-formed content id.
func validateContentID(contentID string) error {
	if len(contentID) != ContentIDLen {
		return ErrInvalidContentID
	}
	if _, err := hex.DecodeString(contentID); err != nil {
		return ErrInvalidContentID
	}
	return nil
}
