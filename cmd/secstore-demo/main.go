// Command secstore-demo walks through the full registration flow against an
// in-memory ledger and content store: the owner registers a public file, an
// allow-listed user registers a private one, and an outsider is rejected.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/secstore/libsecstore-go/envelope"
	"github.com/secstore/libsecstore-go/identity"
	"github.com/secstore/libsecstore-go/ledger"
	"github.com/secstore/libsecstore-go/storage"
	"github.com/secstore/libsecstore-go/vault"
)

func main() {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)

	if err := run(log); err != nil {
		log.WithError(err).Fatal("demo failed")
	}
}

func run(log *logrus.Logger) error {
	ctx := context.Background()

	owner, err := identity.NewKeypair()
	if err != nil {
		return err
	}
	user, err := identity.NewKeypair()
	if err != nil {
		return err
	}
	outsider, err := identity.NewKeypair()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"owner": owner.Address,
		"user":  user.Address,
	}).Info("identities created")

	store := storage.NewMemStore()
	lgr, err := ledger.NewLocal(owner.Address)
	if err != nil {
		return err
	}

	contentKey, err := envelope.NewKey()
	if err != nil {
		return err
	}
	wrapKey, err := envelope.NewKey()
	if err != nil {
		return err
	}

	// Owner registers a public greeting.
	engine, err := vault.New(store, lgr, owner.Address)
	if err != nil {
		return err
	}
	engine.SetLogger(log)

	res, err := engine.RegisterNewFile(ctx, []byte("Hello, blockchain!"), &vault.RegisterOpts{
		FileName:   "greeting.txt",
		IsPublic:   true,
		ContentKey: contentKey,
		WrapKey:    wrapKey,
	})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"content_id": res.ContentID,
		"index":      res.Index,
		"tx_id":      res.TxID,
	}).Info("owner registered public file")

	// Anyone can read the public view; it carries no key material.
	view, err := lgr.PublicFile(ctx, owner.Address, res.Index)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file_name":  view.FileName,
		"content_id": view.ContentID,
		"timestamp":  view.Timestamp,
	}).Info("public view readable by any caller")

	// The owner's private read recovers the plaintext end to end.
	plaintext, _, err := engine.Fetch(ctx, res.Index, wrapKey)
	if err != nil {
		return err
	}
	log.WithField("plaintext", string(plaintext)).Info("owner decrypted file")

	// Allow-list the user, skipping the admin call if already present.
	allowed, err := lgr.IsAllowed(ctx, user.Address)
	if err != nil {
		return err
	}
	if !allowed {
		if _, err := lgr.AddAllowedUser(ctx, owner.Address, user.Address); err != nil {
			return err
		}
		log.WithField("user", user.Address).Info("user allow-listed")
	}

	userEngine, err := vault.New(store, lgr, user.Address)
	if err != nil {
		return err
	}
	userEngine.SetLogger(log)

	if _, err := userEngine.RegisterNewFile(ctx, []byte("user's private notes"), &vault.RegisterOpts{
		FileName:   "notes.txt",
		IsPublic:   false,
		ContentKey: contentKey,
		WrapKey:    wrapKey,
	}); err != nil {
		return err
	}
	log.Info("allow-listed user registered private file")

	// An outsider is always rejected and leaves no trace.
	outsiderEngine, err := vault.New(store, lgr, outsider.Address)
	if err != nil {
		return err
	}
	if _, err := outsiderEngine.RegisterNewFile(ctx, []byte("should fail"), &vault.RegisterOpts{
		FileName:   "forbidden.txt",
		ContentKey: contentKey,
		WrapKey:    wrapKey,
	}); err == nil {
		log.Error("outsider registration unexpectedly succeeded")
		os.Exit(1)
	} else {
		log.WithError(err).Info("outsider rejected as expected")
	}

	// Emergency pause blocks everyone, including the owner.
	if _, err := lgr.Pause(ctx, owner.Address); err != nil {
		return err
	}
	if _, err := engine.RegisterNewFile(ctx, []byte("blocked"), &vault.RegisterOpts{
		FileName:   "blocked.txt",
		ContentKey: contentKey,
		WrapKey:    wrapKey,
	}); err != nil {
		log.WithError(err).Info("registration blocked while paused")
	}
	if _, err := lgr.Unpause(ctx, owner.Address); err != nil {
		return err
	}
	log.Info("ledger unpaused, demo complete")

	return nil
}
