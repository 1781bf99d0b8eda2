// Package vault implements the vault engine: init-vault, put, get, share,
// revoke, edit, and recipients, all operating on an identity.Store and an
// artifact.Backend. It owns the DEK-rotation and recipient-wrapping
// policy; it never touches raw filesystem paths directly.
package vault

import (
	"encoding/base64"
	"encoding/json"
	"sort"
	"time"

	kerrors "github.com/vaultenv/vaultenv/internal/errors"
)

// RecipientRecord is one entry in a RecipientsDocument.
type RecipientRecord struct {
	Label      string    `json:"label"`
	PublicKey  string    `json:"publicKey"`
	WrappedDEK string    `json:"wrappedDEK"`
	AddedAt    time.Time `json:"addedAt"`
}

// RecipientsDocument is the canonical, sorted-key form of recipients.json.
type RecipientsDocument struct {
	DEKVersion uint64                     `json:"dek_version"`
	Recipients map[string]RecipientRecord `json:"recipients"`
}

// Entry is the caller-facing shape returned by Engine.Recipients: it flags
// whether each record belongs to the current caller.
type Entry struct {
	Fingerprint string
	Label       string
	PublicKey   string
	AddedAt     time.Time
	IsCaller    bool
}

// RecipientsList is the pure-read result of Engine.Recipients.
type RecipientsList struct {
	DEKVersion uint64
	Entries    []Entry
}

// encodeKey base64-encodes a raw 32-byte public key.
func encodeKey(key [32]byte) string {
	return base64.StdEncoding.EncodeToString(key[:])
}

// decodeKey reverses encodeKey, failing with ErrInvalidPublicKey unless
// the decoded value is exactly 32 bytes.
func decodeKey(encoded string) ([32]byte, error) {
	var key [32]byte
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return key, kerrors.ErrInvalidPublicKey
	}
	if len(raw) != 32 {
		return key, kerrors.ErrInvalidPublicKey
	}
	copy(key[:], raw)
	return key, nil
}

// decodeWrappedDEK base64-decodes a stored wrappedDEK. It does not
// validate length: Seal/Open's own length checks catch truncation.
func decodeWrappedDEK(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, kerrors.ErrIntegrity
	}
	return raw, nil
}

func encodeWrappedDEK(sealed []byte) string {
	return base64.StdEncoding.EncodeToString(sealed)
}

// marshalRecipients renders doc as canonical JSON: sorted map keys, so
// serial re-encodes of an unchanged document produce byte-identical
// output regardless of map iteration order.
func marshalRecipients(doc RecipientsDocument) ([]byte, error) {
	// encoding/json's Marshal documents that map[string]T keys are sorted
	// before being written, so this already satisfies the stable-ordering
	// requirement without an explicit sort here.
	ordered := struct {
		DEKVersion uint64                     `json:"dek_version"`
		Recipients map[string]RecipientRecord `json:"recipients"`
	}{
		DEKVersion: doc.DEKVersion,
		Recipients: doc.Recipients,
	}

	return json.MarshalIndent(ordered, "", "  ")
}

func unmarshalRecipients(data []byte) (RecipientsDocument, error) {
	var doc RecipientsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return RecipientsDocument{}, kerrors.ErrIntegrity
	}
	if doc.Recipients == nil {
		doc.Recipients = map[string]RecipientRecord{}
	}
	return doc, nil
}

// sortedFingerprints returns the document's recipient fingerprints in
// ascending order.
func sortedFingerprints(doc RecipientsDocument) []string {
	fingerprints := make([]string, 0, len(doc.Recipients))
	for fp := range doc.Recipients {
		fingerprints = append(fingerprints, fp)
	}
	sort.Strings(fingerprints)
	return fingerprints
}
