package vault

import "errors"

var (
	// ErrNilStore indicates an engine constructed without a content store.
	ErrNilStore = errors.New("vault: content store is nil")

	// ErrNilLedger indicates an engine constructed without a ledger service.
	ErrNilLedger = errors.New("vault: ledger service is nil")

	// ErrEmptyCaller indicates an engine constructed without a caller identity.
	ErrEmptyCaller = errors.New("vault: caller identity is empty")

	// ErrMissingContentKey indicates a pipeline run without a content-encryption key.
	ErrMissingContentKey = errors.New("vault: content-encryption key is required")

	// ErrMissingWrapKey indicates a pipeline run without a key-wrapping key.
	ErrMissingWrapKey = errors.New("vault: key-wrapping key is required")

	// ErrNilPending indicates a resume with no pending registration.
	ErrNilPending = errors.New("vault: pending registration is nil")

	// ErrVerificationFailed indicates the post-upload fetch-and-decrypt check
	// did not reproduce the registered plaintext.
	ErrVerificationFailed = errors.New("vault: content verification failed")
)
