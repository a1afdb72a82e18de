package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltLedger_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	b, err := OpenBoltLedger(path, testOwner)
	require.NoError(t, err)

	_, err = b.AddAllowedUser(ctx, testOwner, testUser)
	require.NoError(t, err)
	rcpt, err := b.RegisterFile(ctx, testUser, "cid-1", "a.txt", "wk-1", true)
	require.NoError(t, err)
	_, err = b.Pause(ctx, testOwner)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	b2, err := OpenBoltLedger(path, testOwner)
	require.NoError(t, err)
	defer b2.Close()

	ok, err := b2.IsAllowed(ctx, testUser)
	require.NoError(t, err)
	assert.True(t, ok)

	rec, err := b2.File(ctx, testUser, rcpt.Index)
	require.NoError(t, err)
	assert.Equal(t, "cid-1", rec.ContentID)
	assert.Equal(t, "wk-1", rec.WrappedKey)
	assert.Equal(t, rcpt.Timestamp, rec.Timestamp)

	// Pause flag survives reopen too.
	_, err = b2.RegisterFile(ctx, testUser, "cid-2", "b.txt", "wk-2", true)
	assert.ErrorIs(t, err, ErrPaused)
}

func TestOpenBoltLedger_OwnerMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	b, err := OpenBoltLedger(path, testOwner)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	_, err = OpenBoltLedger(path, testOther)
	assert.ErrorIs(t, err, ErrOwnerMismatch)
}

func TestOpenBoltLedger_EmptyOwner(t *testing.T) {
	_, err := OpenBoltLedger(filepath.Join(t.TempDir(), "ledger.db"), "")
	assert.ErrorIs(t, err, ErrEmptyIdentity)
}

func TestBoltLedger_SetClock(t *testing.T) {
	ctx := context.Background()
	b, err := OpenBoltLedger(filepath.Join(t.TempDir(), "ledger.db"), testOwner)
	require.NoError(t, err)
	defer b.Close()

	b.SetClock(func() int64 { return 1234567890 })

	rcpt, err := b.RegisterFile(ctx, testOwner, "cid", "f.txt", "wk", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1234567890), rcpt.Timestamp)

	rec, err := b.File(ctx, testOwner, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1234567890), rec.Timestamp)
}
