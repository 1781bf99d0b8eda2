package vault

import (
	"bytes"
	"crypto/rand"
	"time"

	"github.com/vaultenv/vaultenv/internal/artifact"
	"github.com/vaultenv/vaultenv/internal/audit"
	vcrypto "github.com/vaultenv/vaultenv/internal/crypto"
	kerrors "github.com/vaultenv/vaultenv/internal/errors"
	"github.com/vaultenv/vaultenv/internal/identity"
)

// Engine wraps one identity.Store and one artifact.Backend and exposes
// the seven vault operations. It holds no state of its own between calls:
// every method reads whatever it needs from Identity and Backend and
// writes back what changed.
type Engine struct {
	Identity identity.Store
	Backend  artifact.Backend
}

// ShareResult reports the outcome of Share, including the idempotent
// already-shared case.
type ShareResult struct {
	Fingerprint   string
	Label         string
	AlreadyShared bool
}

func generateDEK() ([32]byte, error) {
	var dek [32]byte
	_, err := rand.Read(dek[:])
	return dek, err
}

func (e Engine) loadRecipients() (RecipientsDocument, error) {
	data, err := e.Backend.LoadRecipients()
	if err != nil {
		return RecipientsDocument{}, err
	}
	return unmarshalRecipients(data)
}

func (e Engine) saveRecipients(doc RecipientsDocument) error {
	data, err := marshalRecipients(doc)
	if err != nil {
		return err
	}
	return e.Backend.SaveRecipients(data)
}

// unwrapCallerDEK unlocks the identity, locates the caller's recipient
// record, and unwraps that record's DEK. Every mutating operation and Get
// share this sequence.
func (e Engine) unwrapCallerDEK(password []byte, doc RecipientsDocument) (dek [32]byte, callerFingerprint string, err error) {
	privateKey, _, err := e.Identity.Unlock(password)
	if err != nil {
		return dek, "", err
	}

	pub, err := e.Identity.PublicKey()
	if err != nil {
		return dek, "", err
	}
	callerFingerprint = vcrypto.Fingerprint(pub)

	record, ok := doc.Recipients[callerFingerprint]
	if !ok {
		return dek, callerFingerprint, kerrors.ErrNoAccess
	}

	wrapped, err := decodeWrappedDEK(record.WrappedDEK)
	if err != nil {
		return dek, callerFingerprint, err
	}
	plainDEK, err := vcrypto.Open(wrapped, privateKey)
	if err != nil {
		return dek, callerFingerprint, err
	}
	if len(plainDEK) != 32 {
		return dek, callerFingerprint, kerrors.ErrIntegrity
	}
	copy(dek[:], plainDEK)

	return dek, callerFingerprint, nil
}

// InitVault creates a fresh vault: a new DEK, the encrypted plaintext,
// and a recipients document containing only the caller at dek_version 1.
// It fails with ErrAlreadyExists if the target already holds a vault and
// overwrite is false.
func (e Engine) InitVault(password, plaintext []byte, overwrite bool) error {
	lock, err := artifact.AcquireLock(e.Backend.Root())
	if err != nil {
		return err
	}
	defer lock.Unlock()

	exists, err := e.Backend.Exists()
	if err != nil {
		return err
	}
	if exists && !overwrite {
		return kerrors.ErrAlreadyExists
	}

	privateKey, _, err := e.Identity.Unlock(password)
	if err != nil {
		return err
	}
	_ = privateKey

	pub, err := e.Identity.PublicKey()
	if err != nil {
		return err
	}
	fingerprint := vcrypto.Fingerprint(pub)

	config, err := e.Identity.Config()
	if err != nil {
		return err
	}

	dek, err := generateDEK()
	if err != nil {
		return err
	}

	ciphertext, err := vcrypto.Encrypt(plaintext, dek)
	if err != nil {
		return err
	}

	wrapped, err := vcrypto.Seal(dek[:], pub)
	if err != nil {
		return err
	}

	doc := RecipientsDocument{
		DEKVersion: 1,
		Recipients: map[string]RecipientRecord{
			fingerprint: {
				Label:      config.DeviceLabel,
				PublicKey:  encodeKey(pub),
				WrappedDEK: encodeWrappedDEK(wrapped),
				AddedAt:    time.Now().UTC(),
			},
		},
	}

	if err := e.Backend.SavePayload(ciphertext); err != nil {
		return err
	}
	if err := e.saveRecipients(doc); err != nil {
		return err
	}
	if err := e.touchMeta(time.Now().UTC()); err != nil {
		return err
	}

	audit.Log(e.Backend.Root(), audit.Entry{
		Fingerprint: fingerprint,
		DeviceLabel: config.DeviceLabel,
		Operation:   "init-vault",
		VaultName:   e.Backend.Name(),
		DEKVersion:  doc.DEKVersion,
	})
	return nil
}

// Put replaces the vault's content. If the vault does not yet exist it
// behaves exactly like InitVault. Otherwise it rotates the DEK, rewraps
// it for every existing recipient, and bumps dek_version.
func (e Engine) Put(password, plaintext []byte) error {
	exists, err := e.Backend.Exists()
	if err != nil {
		return err
	}
	if !exists {
		return e.InitVault(password, plaintext, false)
	}

	lock, err := artifact.AcquireLock(e.Backend.Root())
	if err != nil {
		return err
	}
	defer lock.Unlock()

	doc, err := e.loadRecipients()
	if err != nil {
		return err
	}

	_, callerFingerprint, err := e.unwrapCallerDEK(password, doc)
	if err != nil {
		return err
	}

	config, err := e.Identity.Config()
	if err != nil {
		return err
	}

	newDEK, err := generateDEK()
	if err != nil {
		return err
	}
	ciphertext, err := vcrypto.Encrypt(plaintext, newDEK)
	if err != nil {
		return err
	}

	newRecipients := make(map[string]RecipientRecord, len(doc.Recipients))
	for fingerprint, record := range doc.Recipients {
		pub, err := decodeKey(record.PublicKey)
		if err != nil {
			return err
		}
		wrapped, err := vcrypto.Seal(newDEK[:], pub)
		if err != nil {
			return err
		}
		newRecipients[fingerprint] = RecipientRecord{
			Label:      record.Label,
			PublicKey:  record.PublicKey,
			WrappedDEK: encodeWrappedDEK(wrapped),
			AddedAt:    record.AddedAt,
		}
	}

	newDoc := RecipientsDocument{DEKVersion: doc.DEKVersion + 1, Recipients: newRecipients}

	if err := e.Backend.SavePayload(ciphertext); err != nil {
		return err
	}
	if err := e.saveRecipients(newDoc); err != nil {
		return err
	}
	if err := e.touchMeta(time.Now().UTC()); err != nil {
		return err
	}

	audit.Log(e.Backend.Root(), audit.Entry{
		Fingerprint: callerFingerprint,
		DeviceLabel: config.DeviceLabel,
		Operation:   "put",
		VaultName:   e.Backend.Name(),
		DEKVersion:  newDoc.DEKVersion,
	})
	return nil
}

// Get unlocks the identity, unwraps the caller's DEK, and decrypts the
// payload. It never writes.
func (e Engine) Get(password []byte) ([]byte, error) {
	doc, err := e.loadRecipients()
	if err != nil {
		return nil, err
	}

	dek, _, err := e.unwrapCallerDEK(password, doc)
	if err != nil {
		return nil, err
	}

	payload, err := e.Backend.LoadPayload()
	if err != nil {
		return nil, err
	}

	return vcrypto.Decrypt(payload, dek)
}

// Share adds recipientPublicKey (base64, 32 raw bytes) as a new recipient
// of the current DEK. It is idempotent: if the fingerprint is already
// present, it reports the existing label without touching dek_version.
func (e Engine) Share(password []byte, recipientPublicKeyB64, label string) (ShareResult, error) {
	lock, err := artifact.AcquireLock(e.Backend.Root())
	if err != nil {
		return ShareResult{}, err
	}
	defer lock.Unlock()

	recipientPub, err := decodeKey(recipientPublicKeyB64)
	if err != nil {
		return ShareResult{}, err
	}
	fingerprint := vcrypto.Fingerprint(recipientPub)

	doc, err := e.loadRecipients()
	if err != nil {
		return ShareResult{}, err
	}

	if existing, ok := doc.Recipients[fingerprint]; ok {
		return ShareResult{Fingerprint: fingerprint, Label: existing.Label, AlreadyShared: true}, nil
	}

	dek, callerFingerprint, err := e.unwrapCallerDEK(password, doc)
	if err != nil {
		return ShareResult{}, err
	}

	config, err := e.Identity.Config()
	if err != nil {
		return ShareResult{}, err
	}

	wrapped, err := vcrypto.Seal(dek[:], recipientPub)
	if err != nil {
		return ShareResult{}, err
	}

	if label == "" {
		label = fingerprint[:8]
	}

	doc.Recipients[fingerprint] = RecipientRecord{
		Label:      label,
		PublicKey:  encodeKey(recipientPub),
		WrappedDEK: encodeWrappedDEK(wrapped),
		AddedAt:    time.Now().UTC(),
	}

	if err := e.saveRecipients(doc); err != nil {
		return ShareResult{}, err
	}

	audit.Log(e.Backend.Root(), audit.Entry{
		Fingerprint:       callerFingerprint,
		DeviceLabel:       config.DeviceLabel,
		Operation:         "share",
		VaultName:         e.Backend.Name(),
		TargetFingerprint: fingerprint,
		TargetLabel:       label,
		DEKVersion:        doc.DEKVersion,
	})
	return ShareResult{Fingerprint: fingerprint, Label: label}, nil
}

// Revoke removes fingerprint from the recipients document and rotates
// the DEK so the revoked recipient's old wrapped DEK cannot decrypt
// future content.
func (e Engine) Revoke(password []byte, fingerprint string) error {
	lock, err := artifact.AcquireLock(e.Backend.Root())
	if err != nil {
		return err
	}
	defer lock.Unlock()

	doc, err := e.loadRecipients()
	if err != nil {
		return err
	}

	callerFingerprint, err := e.Identity.FingerprintOf()
	if err != nil {
		return err
	}
	if fingerprint == callerFingerprint {
		return kerrors.ErrSelfRevoke
	}
	if _, ok := doc.Recipients[fingerprint]; !ok {
		return kerrors.ErrNotARecipient
	}

	dek, _, err := e.unwrapCallerDEK(password, doc)
	if err != nil {
		return err
	}

	config, err := e.Identity.Config()
	if err != nil {
		return err
	}
	revokedLabel := doc.Recipients[fingerprint].Label

	payload, err := e.Backend.LoadPayload()
	if err != nil {
		return err
	}
	plaintext, err := vcrypto.Decrypt(payload, dek)
	if err != nil {
		return err
	}

	newDEK, err := generateDEK()
	if err != nil {
		return err
	}
	ciphertext, err := vcrypto.Encrypt(plaintext, newDEK)
	if err != nil {
		return err
	}

	newRecipients := make(map[string]RecipientRecord, len(doc.Recipients)-1)
	for fp, record := range doc.Recipients {
		if fp == fingerprint {
			continue
		}
		pub, err := decodeKey(record.PublicKey)
		if err != nil {
			return err
		}
		wrapped, err := vcrypto.Seal(newDEK[:], pub)
		if err != nil {
			return err
		}
		newRecipients[fp] = RecipientRecord{
			Label:      record.Label,
			PublicKey:  record.PublicKey,
			WrappedDEK: encodeWrappedDEK(wrapped),
			AddedAt:    record.AddedAt,
		}
	}

	newDoc := RecipientsDocument{DEKVersion: doc.DEKVersion + 1, Recipients: newRecipients}

	if err := e.Backend.SavePayload(ciphertext); err != nil {
		return err
	}
	if err := e.saveRecipients(newDoc); err != nil {
		return err
	}
	if err := e.touchMeta(time.Now().UTC()); err != nil {
		return err
	}

	audit.Log(e.Backend.Root(), audit.Entry{
		Fingerprint:       callerFingerprint,
		DeviceLabel:       config.DeviceLabel,
		Operation:         "revoke",
		VaultName:         e.Backend.Name(),
		TargetFingerprint: fingerprint,
		TargetLabel:       revokedLabel,
		DEKVersion:        newDoc.DEKVersion,
	})
	return nil
}

// Edit composes Get, apply, and Put. A byte-equal result short-circuits
// before any write, leaving dek_version unchanged.
func (e Engine) Edit(password []byte, apply func([]byte) ([]byte, error)) error {
	plaintext, err := e.Get(password)
	if err != nil {
		return err
	}

	edited, err := apply(plaintext)
	if err != nil {
		return err
	}

	if bytes.Equal(plaintext, edited) {
		return nil
	}

	return e.Put(password, edited)
}

// Recipients is a pure read: it never unlocks the identity, since
// fingerprints and labels carry no secret material.
func (e Engine) Recipients() (RecipientsList, error) {
	doc, err := e.loadRecipients()
	if err != nil {
		return RecipientsList{}, err
	}

	callerFingerprint, err := e.Identity.FingerprintOf()
	if err != nil {
		return RecipientsList{}, err
	}

	entries := make([]Entry, 0, len(doc.Recipients))
	for _, fp := range sortedFingerprints(doc) {
		record := doc.Recipients[fp]
		entries = append(entries, Entry{
			Fingerprint: fp,
			Label:       record.Label,
			PublicKey:   record.PublicKey,
			AddedAt:     record.AddedAt,
			IsCaller:    fp == callerFingerprint,
		})
	}

	return RecipientsList{DEKVersion: doc.DEKVersion, Entries: entries}, nil
}
