package ledger

import "github.com/secstore/libsecstore-go/identity"

// Registry holds per-identity append-only file record sequences. Indices are
// 0-based and stable: a sequence only ever grows, and only by a registration
// committed by its owning identity. No locking of its own; the enclosing
// ledger serializes calls.
type Registry struct {
	files map[identity.Address][]FileRecord
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{files: make(map[identity.Address][]FileRecord)}
}

// Append adds a record to owner's sequence and returns its index.
func (r *Registry) Append(owner identity.Address, rec FileRecord) uint64 {
	r.files[owner] = append(r.files[owner], rec)
	return uint64(len(r.files[owner]) - 1)
}

// Count returns the length of owner's sequence. Zero for unknown identities.
func (r *Registry) Count(owner identity.Address) uint64 {
	return uint64(len(r.files[owner]))
}

// Record returns a copy of owner's record at index, wrapped key included.
func (r *Registry) Record(owner identity.Address, index uint64) (*FileRecord, error) {
	seq := r.files[owner]
	if index >= uint64(len(seq)) {
		return nil, ErrNotFound
	}
	rec := seq[index]
	return &rec, nil
}

// PublicRecord returns the public view of owner's record at index.
// A private record and a missing index fail identically with ErrNotFound.
func (r *Registry) PublicRecord(owner identity.Address, index uint64) (*PublicFileView, error) {
	rec, err := r.Record(owner, index)
	if err != nil {
		return nil, err
	}
	if !rec.IsPublic {
		return nil, ErrNotFound
	}
	return rec.Public(), nil
}
