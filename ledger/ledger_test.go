package ledger

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secstore/libsecstore-go/identity"
)

// newServices builds one ledger of each implementation, all owned by owner.
func newServices(t *testing.T, owner identity.Address) map[string]Service {
	t.Helper()

	local, err := NewLocal(owner)
	require.NoError(t, err)

	bolt, err := OpenBoltLedger(t.TempDir()+"/ledger.db", owner)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bolt.Close() })

	return map[string]Service{
		"Local": local,
		"Bolt":  bolt,
	}
}

func register(t *testing.T, svc Service, caller identity.Address, contentID string, isPublic bool) *Receipt {
	t.Helper()
	rcpt, err := svc.RegisterFile(context.Background(), caller, contentID, contentID+".txt", "wrapped-"+contentID, isPublic)
	require.NoError(t, err)
	return rcpt
}

// ---------------------------------------------------------------------------
// Registration gating
// ---------------------------------------------------------------------------

func TestService_InitialFileCountZero(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []identity.Address{testOwner, testUser, testOther} {
				n, err := svc.FileCount(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, uint64(0), n)
			}
		})
	}
}

func TestService_OwnerRegisters(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			rcpt := register(t, svc, testOwner, "cid-1", true)
			assert.Equal(t, uint64(0), rcpt.Index)
			assert.NotEmpty(t, rcpt.TxID)
			assert.Greater(t, rcpt.Timestamp, int64(0))

			n, err := svc.FileCount(ctx, testOwner)
			require.NoError(t, err)
			assert.Equal(t, uint64(1), n)
		})
	}
}

func TestService_UnauthorizedCallerRejected(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			// Repeated attempts never succeed and never leave state behind.
			for i := 0; i < 3; i++ {
				_, err := svc.RegisterFile(ctx, testOther, "cid", "f.txt", "wk", false)
				assert.ErrorIs(t, err, ErrUnauthorized)
			}
			n, err := svc.FileCount(ctx, testOther)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), n)
		})
	}
}

func TestService_AllowListedUserRegisters(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddAllowedUser(ctx, testOwner, testUser)
			require.NoError(t, err)

			ok, err := svc.IsAllowed(ctx, testUser)
			require.NoError(t, err)
			assert.True(t, ok)

			rcpt := register(t, svc, testUser, "cid-u", false)
			assert.Equal(t, uint64(0), rcpt.Index)

			n, err := svc.FileCount(ctx, testUser)
			require.NoError(t, err)
			assert.Equal(t, uint64(1), n)
		})
	}
}

func TestService_AddAllowedUser_NonOwnerRejected(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddAllowedUser(ctx, testUser, testOther)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestService_PausedRejectsEveryone(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddAllowedUser(ctx, testOwner, testUser)
			require.NoError(t, err)
			_, err = svc.Pause(ctx, testOwner)
			require.NoError(t, err)

			// Pause takes priority: even the owner is rejected with ErrPaused,
			// and so is an unauthorized caller.
			for _, caller := range []identity.Address{testOwner, testUser, testOther} {
				_, err := svc.RegisterFile(ctx, caller, "cid", "f.txt", "wk", true)
				assert.ErrorIs(t, err, ErrPaused, "caller=%s", caller)

				n, err := svc.FileCount(ctx, caller)
				require.NoError(t, err)
				assert.Equal(t, uint64(0), n)
			}
		})
	}
}

func TestService_PauseTransitions(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Unpause(ctx, testOwner)
			assert.ErrorIs(t, err, ErrInvalidState)

			_, err = svc.Pause(ctx, testOwner)
			require.NoError(t, err)
			_, err = svc.Pause(ctx, testOwner)
			assert.ErrorIs(t, err, ErrInvalidState)

			_, err = svc.Pause(ctx, testUser)
			assert.ErrorIs(t, err, ErrUnauthorized)

			_, err = svc.Unpause(ctx, testOwner)
			require.NoError(t, err)
		})
	}
}

func TestService_RetryAfterUnpause_SingleRecord(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Pause(ctx, testOwner)
			require.NoError(t, err)

			_, err = svc.RegisterFile(ctx, testOwner, "cid-r", "r.txt", "wk", true)
			assert.ErrorIs(t, err, ErrPaused)

			_, err = svc.Unpause(ctx, testOwner)
			require.NoError(t, err)

			rcpt := register(t, svc, testOwner, "cid-r", true)
			assert.Equal(t, uint64(0), rcpt.Index)

			// Exactly one record; the failed attempt left nothing behind.
			n, err := svc.FileCount(ctx, testOwner)
			require.NoError(t, err)
			assert.Equal(t, uint64(1), n)
		})
	}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

func TestService_IndicesStableAndOrdered(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				rcpt := register(t, svc, testOwner, fmt.Sprintf("cid-%d", i), i%2 == 0)
				assert.Equal(t, uint64(i), rcpt.Index)
			}
			for i := 0; i < 5; i++ {
				rec, err := svc.File(ctx, testOwner, uint64(i))
				require.NoError(t, err)
				assert.Equal(t, fmt.Sprintf("cid-%d", i), rec.ContentID)
			}
		})
	}
}

func TestService_File_OutOfRange(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			register(t, svc, testOwner, "cid-1", true)

			_, err := svc.File(ctx, testOwner, 1)
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = svc.File(ctx, testOwner, 100)
			assert.ErrorIs(t, err, ErrNotFound)

			// Reads are caller-scoped: another identity sees nothing at index 0.
			_, err = svc.File(ctx, testUser, 0)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestService_PublicFile(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			rcpt, err := svc.RegisterFile(ctx, testOwner, "cid-pub", "greeting.txt", "wrapped-key", true)
			require.NoError(t, err)
			register(t, svc, testOwner, "cid-priv", false)

			view, err := svc.PublicFile(ctx, testOwner, 0)
			require.NoError(t, err)
			assert.Equal(t, "cid-pub", view.ContentID)
			assert.Equal(t, "greeting.txt", view.FileName)
			assert.Equal(t, rcpt.Timestamp, view.Timestamp)

			// Private record and out-of-range index are indistinguishable.
			_, errPrivate := svc.PublicFile(ctx, testOwner, 1)
			_, errMissing := svc.PublicFile(ctx, testOwner, 7)
			assert.ErrorIs(t, errPrivate, ErrNotFound)
			assert.ErrorIs(t, errMissing, ErrNotFound)
			assert.Equal(t, errMissing, errPrivate)
		})
	}
}

func TestService_FileIncludesWrappedKey_PublicViewDoesNot(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			_, err := svc.RegisterFile(ctx, testOwner, "cid", "greeting.txt", "the-wrapped-key", true)
			require.NoError(t, err)

			rec, err := svc.File(ctx, testOwner, 0)
			require.NoError(t, err)
			assert.Equal(t, "the-wrapped-key", rec.WrappedKey)
			assert.Greater(t, rec.Timestamp, int64(0))

			// PublicFileView has no key field at all; spot-check the values.
			view, err := svc.PublicFile(ctx, testOwner, 0)
			require.NoError(t, err)
			assert.Equal(t, rec.ContentID, view.ContentID)
			assert.Equal(t, rec.FileName, view.FileName)
		})
	}
}

func TestService_Owner(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			owner, err := svc.Owner(ctx)
			require.NoError(t, err)
			assert.Equal(t, testOwner, owner)
		})
	}
}

func TestService_IsAllowed_OwnerNotMember(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			ok, err := svc.IsAllowed(ctx, testOwner)
			require.NoError(t, err)
			assert.False(t, ok, "owner is implicitly authorized, never allow-listed")
		})
	}
}

// ---------------------------------------------------------------------------
// Argument validation
// ---------------------------------------------------------------------------

func TestService_RegisterFile_Validation(t *testing.T) {
	ctx := context.Background()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			_, err := svc.RegisterFile(ctx, "", "cid", "f.txt", "wk", true)
			assert.ErrorIs(t, err, ErrEmptyIdentity)

			_, err = svc.RegisterFile(ctx, testOwner, "", "f.txt", "wk", true)
			assert.ErrorIs(t, err, ErrEmptyContentID)
		})
	}
}

func TestService_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			_, err := svc.RegisterFile(ctx, testOwner, "cid", "f.txt", "wk", true)
			assert.ErrorIs(t, err, context.Canceled)
			_, err = svc.FileCount(ctx, testOwner)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

// ---------------------------------------------------------------------------
// Concurrency
// ---------------------------------------------------------------------------

func TestService_ConcurrentRegistrations_UniqueIndices(t *testing.T) {
	ctx := context.Background()
	const n = 32
	for name, svc := range newServices(t, testOwner) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			indices := make(chan uint64, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					rcpt, err := svc.RegisterFile(ctx, testOwner, fmt.Sprintf("cid-%d", i), "f.txt", "wk", false)
					if assert.NoError(t, err) {
						indices <- rcpt.Index
					}
				}(i)
			}
			wg.Wait()
			close(indices)

			seen := make(map[uint64]bool)
			for idx := range indices {
				assert.False(t, seen[idx], "index %d claimed twice", idx)
				seen[idx] = true
			}
			assert.Len(t, seen, n)

			count, err := svc.FileCount(ctx, testOwner)
			require.NoError(t, err)
			assert.Equal(t, uint64(n), count)
		})
	}
}
