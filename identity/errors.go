package identity

import "errors"

var (
	// ErrNilPublicKey indicates an address derivation from a nil key.
	ErrNilPublicKey = errors.New("identity: public key is nil")
)
