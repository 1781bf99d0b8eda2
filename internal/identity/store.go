// Package identity persists one device's long-term keypair and exposes
// the password-gated unlock procedure. It owns identity material
// exclusively: the vault engine borrows a Store to unwrap DEKs but never
// reaches into its files directly.
package identity

import (
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/nacl/box"

	"github.com/vaultenv/vaultenv/internal/artifact"
	vcrypto "github.com/vaultenv/vaultenv/internal/crypto"
	kerrors "github.com/vaultenv/vaultenv/internal/errors"
)

// minPasswordRunes is the spec's minimum password length, counted in code
// points rather than bytes so multi-byte passphrases aren't penalized.
const minPasswordRunes = 8

// Store is a device identity rooted at a single directory:
//
//	<root>/config.json
//	<root>/identity/private.key
//	<root>/identity/public.key
//	<root>/identity/salt
type Store struct {
	Root string
}

func (s Store) identityDir() string   { return filepath.Join(s.Root, "identity") }
func (s Store) configPath() string    { return filepath.Join(s.Root, "config.json") }
func (s Store) privateKeyPath() string { return filepath.Join(s.identityDir(), "private.key") }
func (s Store) publicKeyPath() string  { return filepath.Join(s.identityDir(), "public.key") }
func (s Store) saltPath() string       { return filepath.Join(s.identityDir(), "salt") }

// Exists reports whether this identity has already been initialized.
func (s Store) Exists() (bool, error) {
	_, err := os.Stat(s.configPath())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Initialize generates a fresh Curve25519 keypair and salt, derives a key
// from password under the current KDF parameters, seals the private key
// with it, and writes all four files atomically with 0600/0700 modes.
//
// Returns ErrAlreadyInitialized if the identity already exists, and
// ErrBadPassword if password is shorter than 8 code points.
func (s Store) Initialize(password []byte, deviceLabel string) error {
	exists, err := s.Exists()
	if err != nil {
		return err
	}
	if exists {
		return kerrors.ErrAlreadyInitialized
	}
	if utf8.RuneCount(password) < minPasswordRunes {
		return kerrors.ErrBadPassword
	}

	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return err
	}

	derivedKey, err := vcrypto.DeriveKey(password, salt, vcrypto.CurrentParams)
	if err != nil {
		return err
	}

	sealedPrivate, err := vcrypto.Encrypt(priv[:], derivedKey)
	if err != nil {
		return err
	}

	fingerprint := vcrypto.Fingerprint(*pub)
	config := DeviceConfig{
		CreatedAt:   time.Now().UTC(),
		DeviceLabel: deviceLabel,
		Fingerprint: fingerprint,
	}
	configBytes, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.identityDir(), 0700); err != nil {
		return err
	}

	if err := artifact.WriteFileAtomic(s.saltPath(), salt[:], 0600); err != nil {
		return err
	}
	if err := artifact.WriteFileAtomic(s.publicKeyPath(), pub[:], 0600); err != nil {
		return err
	}
	if err := artifact.WriteFileAtomic(s.privateKeyPath(), sealedPrivate, 0600); err != nil {
		return err
	}
	if err := artifact.WriteFileAtomic(s.configPath(), configBytes, 0600); err != nil {
		return err
	}

	return nil
}

// Unlock derives the password key and opens the sealed private key. It
// tries CurrentParams first, then LegacyParams; a LegacyParams success
// sets upgradeRecommended so the caller can surface a non-fatal advisory.
// Unlock never writes to disk.
//
// Both a wrong password and a corrupted sealed-key file return
// ErrBadCredentials: the two are intentionally indistinguishable.
func (s Store) Unlock(password []byte) (privateKey [32]byte, upgradeRecommended bool, err error) {
	salt, sealedPrivate, err := s.readSealedMaterial()
	if err != nil {
		return privateKey, false, err
	}

	if key, ok := s.tryUnseal(password, salt, sealedPrivate, vcrypto.CurrentParams); ok {
		return key, false, nil
	}
	if key, ok := s.tryUnseal(password, salt, sealedPrivate, vcrypto.LegacyParams); ok {
		return key, true, nil
	}

	return privateKey, false, kerrors.ErrBadCredentials
}

func (s Store) tryUnseal(password []byte, salt [16]byte, sealed []byte, params vcrypto.KDFParams) ([32]byte, bool) {
	var key [32]byte

	derivedKey, err := vcrypto.DeriveKey(password, salt, params)
	if err != nil {
		return key, false
	}

	plaintext, err := vcrypto.Decrypt(sealed, derivedKey)
	if err != nil || len(plaintext) != 32 {
		return key, false
	}

	copy(key[:], plaintext)
	return key, true
}

func (s Store) readSealedMaterial() (salt [16]byte, sealedPrivate []byte, err error) {
	exists, err := s.Exists()
	if err != nil {
		return salt, nil, err
	}
	if !exists {
		return salt, nil, kerrors.ErrNoIdentity
	}

	saltBytes, err := os.ReadFile(s.saltPath())
	if err != nil {
		return salt, nil, err
	}
	if len(saltBytes) != 16 {
		return salt, nil, kerrors.ErrBadCredentials
	}
	copy(salt[:], saltBytes)

	sealedPrivate, err = os.ReadFile(s.privateKeyPath())
	if err != nil {
		return salt, nil, err
	}

	return salt, sealedPrivate, nil
}

// PublicKey reads the device's public key. Unauthenticated: it never
// touches the password-sealed private key.
func (s Store) PublicKey() ([32]byte, error) {
	var pub [32]byte

	exists, err := s.Exists()
	if err != nil {
		return pub, err
	}
	if !exists {
		return pub, kerrors.ErrNoIdentity
	}

	data, err := os.ReadFile(s.publicKeyPath())
	if err != nil {
		return pub, err
	}
	if len(data) != 32 {
		return pub, kerrors.ErrIntegrity
	}
	copy(pub[:], data)
	return pub, nil
}

// FingerprintOf returns the fingerprint of this device's public key.
func (s Store) FingerprintOf() (string, error) {
	pub, err := s.PublicKey()
	if err != nil {
		return "", err
	}
	return vcrypto.Fingerprint(pub), nil
}

// Config reads the device's read-only config.json record.
func (s Store) Config() (DeviceConfig, error) {
	exists, err := s.Exists()
	if err != nil {
		return DeviceConfig{}, err
	}
	if !exists {
		return DeviceConfig{}, kerrors.ErrNoIdentity
	}

	data, err := os.ReadFile(s.configPath())
	if err != nil {
		return DeviceConfig{}, err
	}

	var cfg DeviceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DeviceConfig{}, err
	}
	return cfg, nil
}
