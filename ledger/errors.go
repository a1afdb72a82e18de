package ledger

import "errors"

var (
	// ErrUnauthorized indicates the caller lacks owner or allow-list privilege.
	ErrUnauthorized = errors.New("ledger: caller not authorized")

	// ErrPaused indicates a state-changing call while registrations are paused.
	ErrPaused = errors.New("ledger: registrations are paused")

	// ErrNotFound indicates a read of a record that does not exist or,
	// for public reads, is not public. The two are indistinguishable.
	ErrNotFound = errors.New("ledger: file record not found")

	// ErrInvalidState indicates a pause/unpause that would not change state.
	ErrInvalidState = errors.New("ledger: invalid pause state transition")

	// ErrEmptyContentID indicates a registration with no content id.
	ErrEmptyContentID = errors.New("ledger: content id is empty")

	// ErrEmptyIdentity indicates a call with a zero caller or target identity.
	ErrEmptyIdentity = errors.New("ledger: identity is empty")

	// ErrOwnerMismatch indicates a durable ledger opened with a different
	// owner than the one it was created with.
	ErrOwnerMismatch = errors.New("ledger: owner does not match stored owner")

	// ErrUnavailable indicates the ledger service is unreachable.
	ErrUnavailable = errors.New("ledger: service unavailable")
)
