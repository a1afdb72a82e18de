package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/secstore/libsecstore-go/identity"
)

// Local is an in-process Service backed by in-memory state. A single mutex
// serializes state-changing calls, providing the ledger's atomic-commit
// guarantee: two concurrent registrations from the same identity can never
// claim the same record index.
type Local struct {
	mu       sync.RWMutex
	access   *AccessControl
	registry *Registry
	now      func() int64
}

// Compile-time interface check.
var _ Service = (*Local)(nil)

// NewLocal creates an in-memory ledger owned by owner.
func NewLocal(owner identity.Address) (*Local, error) {
	if owner.IsZero() {
		return nil, ErrEmptyIdentity
	}
	return &Local{
		access:   NewAccessControl(owner),
		registry: NewRegistry(),
		now:      func() int64 { return time.Now().Unix() },
	}, nil
}

// SetClock overrides the commit timestamp source. Test hook.
func (l *Local) SetClock(now func() int64) { l.now = now }

// RegisterFile appends a file record to the caller's sequence.
func (l *Local) RegisterFile(ctx context.Context, caller identity.Address, contentID, fileName, wrappedKey string, isPublic bool) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if caller.IsZero() {
		return nil, ErrEmptyIdentity
	}
	if contentID == "" {
		return nil, ErrEmptyContentID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Pause takes priority over the authorization check.
	if l.access.Paused() {
		return nil, ErrPaused
	}
	if !l.access.IsAuthorizedToRegister(caller) {
		return nil, ErrUnauthorized
	}

	ts := l.now()
	index := l.registry.Append(caller, FileRecord{
		ContentID:  contentID,
		FileName:   fileName,
		WrappedKey: wrappedKey,
		Timestamp:  ts,
		IsPublic:   isPublic,
	})

	return &Receipt{TxID: uuid.NewString(), Timestamp: ts, Index: index}, nil
}

// AddAllowedUser adds target to the allow-list. Owner only; idempotent.
func (l *Local) AddAllowedUser(ctx context.Context, caller, target identity.Address) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.access.AddAllowedUser(caller, target); err != nil {
		return nil, err
	}
	return &Receipt{TxID: uuid.NewString(), Timestamp: l.now()}, nil
}

// Pause halts all registrations. Owner only.
func (l *Local) Pause(ctx context.Context, caller identity.Address) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.access.Pause(caller); err != nil {
		return nil, err
	}
	return &Receipt{TxID: uuid.NewString(), Timestamp: l.now()}, nil
}

// Unpause resumes registrations. Owner only.
func (l *Local) Unpause(ctx context.Context, caller identity.Address) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.access.Unpause(caller); err != nil {
		return nil, err
	}
	return &Receipt{TxID: uuid.NewString(), Timestamp: l.now()}, nil
}

// FileCount returns the number of records the caller has registered.
func (l *Local) FileCount(ctx context.Context, caller identity.Address) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.registry.Count(caller), nil
}

// File returns the caller's record at index, including the wrapped key.
func (l *Local) File(ctx context.Context, caller identity.Address, index uint64) (*FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.registry.Record(caller, index)
}

// PublicFile returns the public view of owner's record at index.
func (l *Local) PublicFile(ctx context.Context, owner identity.Address, index uint64) (*PublicFileView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.registry.PublicRecord(owner, index)
}

// IsAllowed reports allow-list membership.
func (l *Local) IsAllowed(ctx context.Context, id identity.Address) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.access.IsAllowed(id), nil
}

// Owner returns the ledger's owner identity.
func (l *Local) Owner(ctx context.Context) (identity.Address, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.access.Owner(), nil
}
