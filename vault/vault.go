// Package vault implements the client-side registration pipeline: encrypt a
// file, upload the ciphertext to the content store, wrap the content key,
// commit the registration to the ledger, and verify the stored blob.
//
// The upload and the ledger commit are two independent systems; the pipeline
// makes no attempt at cross-system atomicity. A registration that fails
// after upload leaves an unreferenced blob in the content store (harmless in
// a content-addressed model) and can be resumed from the wrap step without
// re-uploading.
package vault

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/secstore/libsecstore-go/identity"
	"github.com/secstore/libsecstore-go/ledger"
	"github.com/secstore/libsecstore-go/storage"
)

// Engine runs registration pipelines on behalf of a single caller identity.
// Independent files may be registered concurrently; the engine holds no
// per-registration state.
type Engine struct {
	Store  storage.Store
	Ledger ledger.Service
	Caller identity.Address

	log *logrus.Logger
}

// New creates an engine for caller. Logging is discarded unless SetLogger
// is called.
func New(store storage.Store, svc ledger.Service, caller identity.Address) (*Engine, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if svc == nil {
		return nil, ErrNilLedger
	}
	if caller.IsZero() {
		return nil, ErrEmptyCaller
	}

	return &Engine{
		Store:  store,
		Ledger: svc,
		Caller: caller,
	}, nil
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(log *logrus.Logger) {
	if log != nil {
		e.log = log
	}
}

// discardLog is the default sink until SetLogger is called.
var discardLog = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (e *Engine) logger() *logrus.Logger {
	if e.log == nil {
		return discardLog
	}
	return e.log
}
