package vault

import (
	"context"

	"github.com/secstore/libsecstore-go/envelope"
	"github.com/secstore/libsecstore-go/ledger"
)

// Fetch retrieves and decrypts a file the engine's caller registered.
// The wrapped key stored in the ledger record is unwrapped with wrapKey and
// the recovered content key decrypts the stored blob.
func (e *Engine) Fetch(ctx context.Context, index uint64, wrapKey []byte) ([]byte, *ledger.FileRecord, error) {
	if len(wrapKey) == 0 {
		return nil, nil, ErrMissingWrapKey
	}

	rec, err := e.Ledger.File(ctx, e.Caller, index)
	if err != nil {
		return nil, nil, err
	}

	blob, err := e.Store.Get(ctx, rec.ContentID)
	if err != nil {
		return nil, nil, err
	}

	contentKey, err := envelope.UnwrapKey(rec.WrappedKey, wrapKey)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := envelope.Decrypt(blob, contentKey)
	if err != nil {
		return nil, nil, err
	}

	return plaintext, rec, nil
}
