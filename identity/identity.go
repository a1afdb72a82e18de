// Package identity defines the opaque caller identifiers used throughout
// the ledger and registration pipeline.
//
// An Address is derived from a secp256k1 public key the same way a
// pay-to-pubkey-hash address is: base58check over the hash of the
// compressed public key. Addresses are exact-match comparable and no two
// distinct keys map to the same address.
package identity

import (
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
)

// Address is an opaque, comparable caller identifier.
// The zero value ("") is not a valid address.
type Address string

// String returns the base58check form of the address.
func (a Address) String() string { return string(a) }

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool { return a == "" }

// Keypair bundles a private key with its derived address.
type Keypair struct {
	PrivateKey *ec.PrivateKey
	Address    Address
}

// FromPublicKey derives the address for a public key.
func FromPublicKey(pub *ec.PublicKey) (Address, error) {
	if pub == nil {
		return "", ErrNilPublicKey
	}
	addr, err := script.NewAddressFromPublicKey(pub, true)
	if err != nil {
		return "", fmt.Errorf("identity: derive address: %w", err)
	}
	return Address(addr.AddressString), nil
}

// NewKeypair generates a fresh random keypair and its address.
func NewKeypair() (*Keypair, error) {
	priv, err := ec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("identity: generate key: %w", err)
	}
	addr, err := FromPublicKey(priv.PubKey())
	if err != nil {
		return nil, err
	}
	return &Keypair{PrivateKey: priv, Address: addr}, nil
}
