package ledger

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/secstore/libsecstore-go/identity"
)

var (
	bucketMeta    = []byte("meta")
	bucketAllowed = []byte("allowed")
	bucketFiles   = []byte("files")

	metaKeyOwner  = []byte("owner")
	metaKeyPaused = []byte("paused")
)

// BoltLedger is a durable Service backed by a bbolt database. bbolt's
// single-writer transactions provide commit serialization, so concurrent
// registrations from one identity can never claim the same record index.
type BoltLedger struct {
	db  *bbolt.DB
	now func() int64
}

// Compile-time interface check.
var _ Service = (*BoltLedger)(nil)

// OpenBoltLedger opens or creates the ledger database at dbPath. On first
// open the ledger is bound to owner for its lifetime; reopening with a
// different owner fails with ErrOwnerMismatch.
func OpenBoltLedger(dbPath string, owner identity.Address) (*BoltLedger, error) {
	if owner.IsZero() {
		return nil, ErrEmptyIdentity
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketMeta, bucketAllowed, bucketFiles} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("ledger: create bucket %q: %w", name, err)
			}
		}
		meta := tx.Bucket(bucketMeta)
		stored := meta.Get(metaKeyOwner)
		if stored == nil {
			return meta.Put(metaKeyOwner, []byte(owner))
		}
		if !bytes.Equal(stored, []byte(owner)) {
			return ErrOwnerMismatch
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltLedger{
		db:  db,
		now: func() int64 { return time.Now().Unix() },
	}, nil
}

// Close closes the underlying database.
func (b *BoltLedger) Close() error { return b.db.Close() }

// SetClock overrides the commit timestamp source. Test hook.
func (b *BoltLedger) SetClock(now func() int64) { b.now = now }

// indexKey encodes a record index as an 8-byte big-endian key so bucket
// iteration order matches registration order.
func indexKey(i uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, i)
	return k
}

// encodeRecord serializes a file record using gob encoding.
func encodeRecord(rec *FileRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, fmt.Errorf("ledger: encode record: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeRecord deserializes a gob-encoded file record.
func decodeRecord(data []byte) (*FileRecord, error) {
	var rec FileRecord
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("ledger: decode record: %w", err)
	}
	return &rec, nil
}

// paused reads the pause flag within a transaction.
func paused(tx *bbolt.Tx) bool {
	v := tx.Bucket(bucketMeta).Get(metaKeyPaused)
	return len(v) == 1 && v[0] == 1
}

// storedOwner reads the owner within a transaction.
func storedOwner(tx *bbolt.Tx) identity.Address {
	return identity.Address(tx.Bucket(bucketMeta).Get(metaKeyOwner))
}

// isAllowed reads allow-list membership within a transaction.
func isAllowed(tx *bbolt.Tx, id identity.Address) bool {
	return tx.Bucket(bucketAllowed).Get([]byte(id)) != nil
}

// RegisterFile appends a file record to the caller's sequence.
func (b *BoltLedger) RegisterFile(ctx context.Context, caller identity.Address, contentID, fileName, wrappedKey string, isPublic bool) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if caller.IsZero() {
		return nil, ErrEmptyIdentity
	}
	if contentID == "" {
		return nil, ErrEmptyContentID
	}

	var rcpt *Receipt
	err := b.db.Update(func(tx *bbolt.Tx) error {
		// Pause takes priority over the authorization check.
		if paused(tx) {
			return ErrPaused
		}
		owner := storedOwner(tx)
		if caller != owner && !isAllowed(tx, caller) {
			return ErrUnauthorized
		}

		seq, err := tx.Bucket(bucketFiles).CreateBucketIfNotExists([]byte(caller))
		if err != nil {
			return fmt.Errorf("ledger: create sequence bucket: %w", err)
		}

		ts := b.now()
		index := seqLen(seq)
		data, err := encodeRecord(&FileRecord{
			ContentID:  contentID,
			FileName:   fileName,
			WrappedKey: wrappedKey,
			Timestamp:  ts,
			IsPublic:   isPublic,
		})
		if err != nil {
			return err
		}
		if err := seq.Put(indexKey(index), data); err != nil {
			return fmt.Errorf("ledger: put record: %w", err)
		}

		rcpt = &Receipt{TxID: uuid.NewString(), Timestamp: ts, Index: index}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rcpt, nil
}

// seqLen returns the next index for a sequence bucket: one past the highest
// committed index. Indices are dense, so this equals the record count.
func seqLen(seq *bbolt.Bucket) uint64 {
	k, _ := seq.Cursor().Last()
	if k == nil {
		return 0
	}
	return binary.BigEndian.Uint64(k) + 1
}

// AddAllowedUser adds target to the allow-list. Owner only; idempotent.
func (b *BoltLedger) AddAllowedUser(ctx context.Context, caller, target identity.Address) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rcpt *Receipt
	err := b.db.Update(func(tx *bbolt.Tx) error {
		owner := storedOwner(tx)
		if caller != owner {
			return ErrUnauthorized
		}
		if target.IsZero() {
			return ErrEmptyIdentity
		}
		if target != owner {
			if err := tx.Bucket(bucketAllowed).Put([]byte(target), []byte{}); err != nil {
				return fmt.Errorf("ledger: put allowed user: %w", err)
			}
		}
		rcpt = &Receipt{TxID: uuid.NewString(), Timestamp: b.now()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rcpt, nil
}

// Pause halts all registrations. Owner only.
func (b *BoltLedger) Pause(ctx context.Context, caller identity.Address) (*Receipt, error) {
	return b.setPaused(ctx, caller, true)
}

// Unpause resumes registrations. Owner only.
func (b *BoltLedger) Unpause(ctx context.Context, caller identity.Address) (*Receipt, error) {
	return b.setPaused(ctx, caller, false)
}

func (b *BoltLedger) setPaused(ctx context.Context, caller identity.Address, want bool) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rcpt *Receipt
	err := b.db.Update(func(tx *bbolt.Tx) error {
		if caller != storedOwner(tx) {
			return ErrUnauthorized
		}
		if paused(tx) == want {
			return ErrInvalidState
		}
		v := []byte{0}
		if want {
			v = []byte{1}
		}
		if err := tx.Bucket(bucketMeta).Put(metaKeyPaused, v); err != nil {
			return fmt.Errorf("ledger: put pause flag: %w", err)
		}
		rcpt = &Receipt{TxID: uuid.NewString(), Timestamp: b.now()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rcpt, nil
}

// FileCount returns the number of records the caller has registered.
func (b *BoltLedger) FileCount(ctx context.Context, caller identity.Address) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count uint64
	err := b.db.View(func(tx *bbolt.Tx) error {
		seq := tx.Bucket(bucketFiles).Bucket([]byte(caller))
		if seq != nil {
			count = seqLen(seq)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// File returns the caller's record at index, including the wrapped key.
func (b *BoltLedger) File(ctx context.Context, caller identity.Address, index uint64) (*FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec *FileRecord
	err := b.db.View(func(tx *bbolt.Tx) error {
		seq := tx.Bucket(bucketFiles).Bucket([]byte(caller))
		if seq == nil {
			return ErrNotFound
		}
		data := seq.Get(indexKey(index))
		if data == nil {
			return ErrNotFound
		}
		var err error
		rec, err = decodeRecord(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// PublicFile returns the public view of owner's record at index. A private
// record and a missing index fail identically with ErrNotFound.
func (b *BoltLedger) PublicFile(ctx context.Context, owner identity.Address, index uint64) (*PublicFileView, error) {
	rec, err := b.File(ctx, owner, index)
	if err != nil {
		return nil, err
	}
	if !rec.IsPublic {
		return nil, ErrNotFound
	}
	return rec.Public(), nil
}

// IsAllowed reports allow-list membership.
func (b *BoltLedger) IsAllowed(ctx context.Context, id identity.Address) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var ok bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		ok = isAllowed(tx, id)
		return nil
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Owner returns the ledger's owner identity.
func (b *BoltLedger) Owner(ctx context.Context) (identity.Address, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var owner identity.Address
	err := b.db.View(func(tx *bbolt.Tx) error {
		owner = storedOwner(tx)
		return nil
	})
	if err != nil {
		return "", err
	}
	return owner, nil
}
