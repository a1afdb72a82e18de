// Package ledger defines the ledger service contract for the encrypted file
// registry, together with the on-ledger state machine it commits to: an
// owner-rooted access control state (allow-list plus emergency pause) and
// per-identity append-only file record sequences.
//
// State-changing calls carry the caller's identity and commit atomically in
// submission order. Read-only calls never mutate state. File records are
// immutable once committed; indices are 0-based, stable, and never reused.
package ledger

import (
	"context"

	"github.com/secstore/libsecstore-go/identity"
)

// FileRecord is a committed registration: an immutable binding of a content
// id, display name, wrapped content-encryption key, commit timestamp, and
// visibility flag to the identity that registered it.
type FileRecord struct {
	ContentID  string
	FileName   string
	WrappedKey string
	Timestamp  int64 // Unix seconds, ledger-assigned at commit time
	IsPublic   bool
}

// PublicFileView is the unprivileged projection of a FileRecord.
// It never carries the wrapped key.
type PublicFileView struct {
	ContentID string
	FileName  string
	Timestamp int64
}

// Receipt describes a committed state-changing call.
type Receipt struct {
	// TxID is an opaque commit identifier.
	TxID string

	// Timestamp is the ledger-assigned commit time in Unix seconds.
	Timestamp int64

	// Index is the record index assigned by RegisterFile; zero for other calls.
	Index uint64
}

// Service is the primary interface for ledger interaction. State-changing
// calls require a caller identity and return a Receipt once committed.
type Service interface {
	// RegisterFile appends a file record to the caller's sequence.
	// Rejected with ErrPaused while the ledger is paused (checked before
	// authorization) and with ErrUnauthorized if the caller is neither
	// owner nor allow-listed. The receipt carries the new record's index.
	RegisterFile(ctx context.Context, caller identity.Address, contentID, fileName, wrappedKey string, isPublic bool) (*Receipt, error)

	// AddAllowedUser adds target to the allow-list. Owner only; idempotent.
	AddAllowedUser(ctx context.Context, caller, target identity.Address) (*Receipt, error)

	// Pause halts all registrations. Owner only.
	// Pausing an already-paused ledger fails with ErrInvalidState.
	Pause(ctx context.Context, caller identity.Address) (*Receipt, error)

	// Unpause resumes registrations. Owner only.
	// Unpausing a running ledger fails with ErrInvalidState.
	Unpause(ctx context.Context, caller identity.Address) (*Receipt, error)

	// FileCount returns the number of records the caller has registered.
	FileCount(ctx context.Context, caller identity.Address) (uint64, error)

	// File returns the caller's record at index, including the wrapped key.
	// There is no cross-identity private read. Fails with ErrNotFound for
	// an out-of-range index.
	File(ctx context.Context, caller identity.Address, index uint64) (*FileRecord, error)

	// PublicFile returns the public view of owner's record at index, for
	// any caller. Fails with ErrNotFound both for an out-of-range index
	// and for a private record; the two cases are indistinguishable.
	PublicFile(ctx context.Context, owner identity.Address, index uint64) (*PublicFileView, error)

	// IsAllowed reports allow-list membership, independent of owner status.
	IsAllowed(ctx context.Context, id identity.Address) (bool, error)

	// Owner returns the ledger's owner identity.
	Owner(ctx context.Context) (identity.Address, error)
}

// Public returns the unprivileged projection of a record.
func (r *FileRecord) Public() *PublicFileView {
	return &PublicFileView{
		ContentID: r.ContentID,
		FileName:  r.FileName,
		Timestamp: r.Timestamp,
	}
}
