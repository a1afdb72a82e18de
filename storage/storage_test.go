package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// ContentID
// ---------------------------------------------------------------------------

func TestContentID_Deterministic(t *testing.T) {
	data := []byte("some ciphertext bytes")
	assert.Equal(t, ContentID(data), ContentID(data))
}

func TestContentID_MatchesSHA256(t *testing.T) {
	data := []byte("hello")
	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), ContentID(data))
}

func TestContentID_DistinctContent(t *testing.T) {
	assert.NotEqual(t, ContentID([]byte("a")), ContentID([]byte("b")))
}

// ---------------------------------------------------------------------------
// Store implementations (shared behavior)
// ---------------------------------------------------------------------------

func testStores(t *testing.T) map[string]Store {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return map[string]Store{
		"FileStore": fs,
		"MemStore":  NewMemStore(),
	}
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			data := []byte("encrypted blob")
			id, err := s.Put(ctx, data)
			require.NoError(t, err)
			assert.Len(t, id, ContentIDLen)

			got, err := s.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestStore_PutIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			data := []byte("same bytes")
			id1, err := s.Put(ctx, data)
			require.NoError(t, err)
			id2, err := s.Put(ctx, data)
			require.NoError(t, err)
			assert.Equal(t, id1, id2)
		})
	}
}

func TestStore_PutEmpty(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Put(ctx, nil)
			assert.ErrorIs(t, err, ErrEmptyContent)
		})
	}
}

func TestStore_GetNotFound(t *testing.T) {
	ctx := context.Background()
	missing := ContentID([]byte("never stored"))
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, missing)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_InvalidContentID(t *testing.T) {
	ctx := context.Background()
	bad := []string{"", "abc", strings.Repeat("z", ContentIDLen)}
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range bad {
				_, err := s.Get(ctx, id)
				assert.ErrorIs(t, err, ErrInvalidContentID, "id=%q", id)
			}
		})
	}
}

func TestStore_Has(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			id, err := s.Put(ctx, []byte("present"))
			require.NoError(t, err)

			ok, err := s.Has(ctx, id)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = s.Has(ctx, ContentID([]byte("absent")))
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_Size(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			data := []byte("12345")
			id, err := s.Put(ctx, data)
			require.NoError(t, err)

			n, err := s.Size(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, int64(len(data)), n)

			_, err = s.Size(ctx, ContentID([]byte("absent")))
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Put(ctx, []byte("data"))
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestNewFileStore_EmptyDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.ErrorIs(t, err, ErrInvalidBaseDir)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fs1, err := NewFileStore(dir)
	require.NoError(t, err)
	id, err := fs1.Put(ctx, []byte("durable"))
	require.NoError(t, err)

	fs2, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := fs2.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), got)
}
