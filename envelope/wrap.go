package envelope

import (
	"encoding/base64"
	"fmt"
)

// WrapKey encrypts a content-encryption key under a key-wrapping key and
// returns it base64-encoded for storage in a ledger record.
func WrapKey(contentKey, wrapKey []byte) (string, error) {
	if len(contentKey) != KeyLen {
		return "", fmt.Errorf("%w: content key is %d bytes", ErrInvalidKeyLen, len(contentKey))
	}
	sealed, err := Encrypt(contentKey, wrapKey)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// UnwrapKey reverses WrapKey, recovering the content-encryption key.
func UnwrapKey(wrapped string, wrapKey []byte) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWrappedKey, err)
	}
	contentKey, err := Decrypt(sealed, wrapKey)
	if err != nil {
		return nil, err
	}
	if len(contentKey) != KeyLen {
		return nil, fmt.Errorf("%w: unwrapped key is %d bytes", ErrInvalidKeyLen, len(contentKey))
	}
	return contentKey, nil
}
