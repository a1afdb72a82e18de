package envelope

import "errors"

var (
	// ErrInvalidKeyLen indicates a key that is not exactly 32 bytes.
	ErrInvalidKeyLen = errors.New("envelope: key must be 32 bytes")

	// ErrInvalidCiphertext indicates ciphertext too short to contain nonce and tag.
	ErrInvalidCiphertext = errors.New("envelope: invalid ciphertext")

	// ErrDecryptionFailed indicates an authentication or decryption failure.
	ErrDecryptionFailed = errors.New("envelope: decryption failed")

	// ErrInvalidWrappedKey indicates a wrapped key string that is not valid base64.
	ErrInvalidWrappedKey = errors.New("envelope: invalid wrapped key encoding")

	// ErrHKDFFailure indicates a key derivation failure.
	ErrHKDFFailure = errors.New("envelope: HKDF key derivation failed")

	// ErrEmptyPassphrase indicates passphrase-based derivation with an empty passphrase.
	ErrEmptyPassphrase = errors.New("envelope: passphrase is empty")
)
