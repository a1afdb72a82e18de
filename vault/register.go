package vault

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/secstore/libsecstore-go/envelope"
)

// Step identifies a stage of the registration pipeline.
type Step int

const (
	StepEncrypt Step = iota + 1
	StepUpload
	StepWrapKey
	StepRegister
	StepVerify
)

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepEncrypt:
		return "encrypt"
	case StepUpload:
		return "upload"
	case StepWrapKey:
		return "wrap-key"
	case StepRegister:
		return "register"
	case StepVerify:
		return "verify"
	default:
		return "unknown"
	}
}

// StepError reports which pipeline stage failed. When the upload had already
// succeeded, Pending carries the reusable content id so the caller can retry
// from the wrap step via Resume instead of re-uploading.
type StepError struct {
	Step    Step
	Err     error
	Pending *Pending
}

func (e *StepError) Error() string {
	return fmt.Sprintf("vault: %s step failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Pending snapshots a registration whose ciphertext is already in the
// content store but whose ledger commit has not succeeded. The content id is
// reusable: re-putting identical bytes would yield the same id anyway.
type Pending struct {
	ContentID string
	FileName  string
	IsPublic  bool

	// Checksum is SHA256 of the plaintext, kept so a resumed registration
	// can still run the verify step without the original bytes in hand.
	Checksum [sha256.Size]byte
}

// RegisterOpts holds per-registration parameters. Key material is supplied
// per call; the engine never retains it.
type RegisterOpts struct {
	FileName string
	IsPublic bool

	// ContentKey encrypts the plaintext (32 bytes).
	ContentKey []byte

	// WrapKey encrypts ContentKey for on-ledger storage (32 bytes).
	WrapKey []byte

	// SkipVerify disables the post-registration fetch-and-decrypt check.
	SkipVerify bool
}

// Result holds the outcome of a committed registration.
type Result struct {
	ContentID string
	Index     uint64
	TxID      string
}

// RegisterNewFile runs the full pipeline for plaintext:
//
//	encrypt -> upload -> wrap key -> register -> verify
//
// Encryption is randomized, so registering the same plaintext twice stores
// two distinct blobs. Ledger rejections (ledger.ErrPaused,
// ledger.ErrUnauthorized) propagate unchanged inside a StepError.
//
// If the verify step fails after the ledger commit succeeded, the committed
// Result is returned alongside the error: the record exists, only the
// readback check failed.
func (e *Engine) RegisterNewFile(ctx context.Context, plaintext []byte, opts *RegisterOpts) (*Result, error) {
	if err := checkOpts(opts); err != nil {
		return nil, err
	}

	ciphertext, err := envelope.Encrypt(plaintext, opts.ContentKey)
	if err != nil {
		return nil, &StepError{Step: StepEncrypt, Err: err}
	}

	contentID, err := e.Store.Put(ctx, ciphertext)
	if err != nil {
		return nil, &StepError{Step: StepUpload, Err: err}
	}

	e.logger().WithFields(logrus.Fields{
		"content_id": contentID,
		"file_name":  opts.FileName,
		"size":       len(ciphertext),
	}).Debug("ciphertext uploaded")

	pending := &Pending{
		ContentID: contentID,
		FileName:  opts.FileName,
		IsPublic:  opts.IsPublic,
		Checksum:  sha256.Sum256(plaintext),
	}
	return e.Resume(ctx, pending, opts)
}

// Resume retries a registration from the wrap step using the content id of
// an earlier successful upload. The FileName and IsPublic fields of pending
// take precedence over those in opts.
func (e *Engine) Resume(ctx context.Context, pending *Pending, opts *RegisterOpts) (*Result, error) {
	if pending == nil {
		return nil, ErrNilPending
	}
	if err := checkOpts(opts); err != nil {
		return nil, err
	}

	wrapped, err := envelope.WrapKey(opts.ContentKey, opts.WrapKey)
	if err != nil {
		return nil, &StepError{Step: StepWrapKey, Err: err, Pending: pending}
	}

	rcpt, err := e.Ledger.RegisterFile(ctx, e.Caller, pending.ContentID, pending.FileName, wrapped, pending.IsPublic)
	if err != nil {
		return nil, &StepError{Step: StepRegister, Err: err, Pending: pending}
	}

	e.logger().WithFields(logrus.Fields{
		"content_id": pending.ContentID,
		"index":      rcpt.Index,
		"tx_id":      rcpt.TxID,
	}).Info("file registered")

	result := &Result{ContentID: pending.ContentID, Index: rcpt.Index, TxID: rcpt.TxID}

	if !opts.SkipVerify {
		if err := e.verify(ctx, pending, opts.ContentKey); err != nil {
			return result, &StepError{Step: StepVerify, Err: err, Pending: pending}
		}
	}

	return result, nil
}

// verify fetches the stored blob, decrypts it with the content key, and
// checks the plaintext checksum. Mismatches are reported, never retried.
func (e *Engine) verify(ctx context.Context, pending *Pending, contentKey []byte) error {
	blob, err := e.Store.Get(ctx, pending.ContentID)
	if err != nil {
		return fmt.Errorf("%w: fetch: %w", ErrVerificationFailed, err)
	}
	plaintext, err := envelope.Decrypt(blob, contentKey)
	if err != nil {
		return fmt.Errorf("%w: decrypt: %w", ErrVerificationFailed, err)
	}
	sum := sha256.Sum256(plaintext)
	if !bytes.Equal(sum[:], pending.Checksum[:]) {
		return fmt.Errorf("%w: checksum mismatch", ErrVerificationFailed)
	}
	return nil
}

func checkOpts(opts *RegisterOpts) error {
	if opts == nil || len(opts.ContentKey) == 0 {
		return ErrMissingContentKey
	}
	if len(opts.WrapKey) == 0 {
		return ErrMissingWrapKey
	}
	return nil
}
