package envelope

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

const (
	// HKDFInfo is the constant info string used in HKDF-SHA256 key derivation.
	HKDFInfo = "secstore-file-encryption"

	// Argon2id parameters for passphrase-derived keys.
	Argon2Time        = 3
	Argon2Memory      = 64 * 1024 // 64 MB
	Argon2Parallelism = 4

	// SaltLen is the recommended salt length in bytes.
	SaltLen = 16
)

// NewKey returns a fresh random 32-byte symmetric key.
func NewKey() ([]byte, error) {
	key := make([]byte, KeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("envelope: random key generation failed: %w", err)
	}
	return key, nil
}

// NewSalt returns a fresh random 16-byte salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("envelope: random salt generation failed: %w", err)
	}
	return salt, nil
}

// DeriveKey derives a 32-byte key from secret material using HKDF-SHA256.
// The derivation is deterministic in (secret, salt).
func DeriveKey(secret, salt []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: secret is empty", ErrHKDFFailure)
	}

	hkdfReader := hkdf.New(sha256.New, secret, salt, []byte(HKDFInfo))
	key := make([]byte, KeyLen)
	if _, err := io.ReadFull(hkdfReader, key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHKDFFailure, err)
	}
	return key, nil
}

// PassphraseKey derives a 32-byte key from a passphrase using Argon2id.
// The same (passphrase, salt) pair always yields the same key.
func PassphraseKey(passphrase string, salt []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	key := argon2.IDKey([]byte(passphrase), salt, Argon2Time, Argon2Memory, Argon2Parallelism, KeyLen)
	return key, nil
}
