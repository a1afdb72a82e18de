package identity

import (
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeypair(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)
	require.NotNil(t, kp.PrivateKey)
	assert.False(t, kp.Address.IsZero())
}

func TestFromPublicKey_Deterministic(t *testing.T) {
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)

	a1, err := FromPublicKey(priv.PubKey())
	require.NoError(t, err)
	a2, err := FromPublicKey(priv.PubKey())
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
}

func TestFromPublicKey_DistinctKeys(t *testing.T) {
	seen := make(map[Address]bool)
	for i := 0; i < 10; i++ {
		kp, err := NewKeypair()
		require.NoError(t, err)
		assert.False(t, seen[kp.Address], "address collision")
		seen[kp.Address] = true
	}
}

func TestFromPublicKey_Nil(t *testing.T) {
	_, err := FromPublicKey(nil)
	assert.ErrorIs(t, err, ErrNilPublicKey)
}

func TestAddress_String(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)
	assert.Equal(t, string(kp.Address), kp.Address.String())
	assert.NotEmpty(t, kp.Address.String())
}
