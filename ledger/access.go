package ledger

import "github.com/secstore/libsecstore-go/identity"

// AccessControl is the admin state gating registration: an immutable owner,
// an allow-list of additional registrants, and the emergency pause flag.
// It performs no locking of its own; the enclosing ledger serializes calls.
type AccessControl struct {
	owner   identity.Address
	allowed map[identity.Address]struct{}
	paused  bool
}

// NewAccessControl creates the admin state with owner fixed for its lifetime,
// an empty allow-list, and the pause flag cleared.
func NewAccessControl(owner identity.Address) *AccessControl {
	return &AccessControl{
		owner:   owner,
		allowed: make(map[identity.Address]struct{}),
	}
}

// Owner returns the owning identity.
func (a *AccessControl) Owner() identity.Address { return a.owner }

// Paused reports whether registrations are paused.
func (a *AccessControl) Paused() bool { return a.paused }

// IsAllowed reports allow-list membership. The owner is never a member;
// owner authorization bypasses the list entirely.
func (a *AccessControl) IsAllowed(id identity.Address) bool {
	_, ok := a.allowed[id]
	return ok
}

// IsAuthorizedToRegister reports whether id may register files:
// the owner always may, everyone else needs allow-list membership.
func (a *AccessControl) IsAuthorizedToRegister(id identity.Address) bool {
	return id == a.owner || a.IsAllowed(id)
}

// AddAllowedUser adds target to the allow-list. Owner only. Adding an
// already-present identity, or the owner itself, is a no-op.
func (a *AccessControl) AddAllowedUser(caller, target identity.Address) error {
	if caller != a.owner {
		return ErrUnauthorized
	}
	if target.IsZero() {
		return ErrEmptyIdentity
	}
	if target == a.owner {
		return nil
	}
	a.allowed[target] = struct{}{}
	return nil
}

// Pause sets the pause flag. Owner only; pausing twice is ErrInvalidState.
func (a *AccessControl) Pause(caller identity.Address) error {
	if caller != a.owner {
		return ErrUnauthorized
	}
	if a.paused {
		return ErrInvalidState
	}
	a.paused = true
	return nil
}

// Unpause clears the pause flag. Owner only; unpausing a running ledger
// is ErrInvalidState.
func (a *AccessControl) Unpause(caller identity.Address) error {
	if caller != a.owner {
		return ErrUnauthorized
	}
	if !a.paused {
		return ErrInvalidState
	}
	a.paused = false
	return nil
}

// AllowedList returns the allow-list members in unspecified order.
func (a *AccessControl) AllowedList() []identity.Address {
	out := make([]identity.Address, 0, len(a.allowed))
	for id := range a.allowed {
		out = append(out, id)
	}
	return out
}
