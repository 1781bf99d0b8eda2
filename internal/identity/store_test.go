package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vaultenv/vaultenv/internal/artifact"
	vcrypto "github.com/vaultenv/vaultenv/internal/crypto"
	kerrors "github.com/vaultenv/vaultenv/internal/errors"
)

func newStore(t *testing.T) Store {
	t.Helper()
	return Store{Root: t.TempDir()}
}

func TestStore_InitializeThenUnlock(t *testing.T) {
	s := newStore(t)

	if err := s.Initialize([]byte("correct-horse"), "laptop"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	_, upgrade, err := s.Unlock([]byte("correct-horse"))
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if upgrade {
		t.Fatal("upgradeRecommended should be false for a freshly initialized identity")
	}

	if _, err := s.PublicKey(); err != nil {
		t.Fatalf("PublicKey: %v", err)
	}
}

func TestStore_PublicKeyMatchesUnlockedPrivate(t *testing.T) {
	s := newStore(t)
	if err := s.Initialize([]byte("correct-horse"), "laptop"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	priv, _, err := s.Unlock([]byte("correct-horse"))
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	pub, err := s.PublicKey()
	if err != nil {
		t.Fatalf("PublicKey: %v", err)
	}

	message := []byte("round trip")
	sealed, err := vcrypto.Seal(message, pub)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	opened, err := vcrypto.Open(sealed, priv)
	if err != nil {
		t.Fatalf("Open with unlocked private key: %v", err)
	}
	if string(opened) != string(message) {
		t.Fatalf("round trip mismatch: got %q", opened)
	}
}

func TestStore_Initialize_AlreadyInitialized(t *testing.T) {
	s := newStore(t)
	if err := s.Initialize([]byte("correct-horse"), "laptop"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	err := s.Initialize([]byte("correct-horse"), "laptop")
	if err != kerrors.ErrAlreadyInitialized {
		t.Fatalf("got %v, want ErrAlreadyInitialized", err)
	}
}

func TestStore_Initialize_BadPassword(t *testing.T) {
	s := newStore(t)
	err := s.Initialize([]byte("short"), "laptop")
	if err != kerrors.ErrBadPassword {
		t.Fatalf("got %v, want ErrBadPassword", err)
	}
}

func TestStore_Unlock_WrongPassword(t *testing.T) {
	s := newStore(t)
	if err := s.Initialize([]byte("correct-horse"), "laptop"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	_, _, err := s.Unlock([]byte("wrong-password"))
	if err != kerrors.ErrBadCredentials {
		t.Fatalf("got %v, want ErrBadCredentials", err)
	}
}

func TestStore_Unlock_NoIdentity(t *testing.T) {
	s := newStore(t)
	_, _, err := s.Unlock([]byte("correct-horse"))
	if err != kerrors.ErrNoIdentity {
		t.Fatalf("got %v, want ErrNoIdentity", err)
	}
}

func TestStore_Unlock_LegacyParametersUpgradeAdvisory(t *testing.T) {
	s := newStore(t)
	if err := s.Initialize([]byte("correct-horse"), "laptop"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	salt, sealedPrivate, err := s.readSealedMaterial()
	if err != nil {
		t.Fatalf("readSealedMaterial: %v", err)
	}

	legacyKey, err := vcrypto.DeriveKey([]byte("correct-horse"), salt, vcrypto.LegacyParams)
	if err != nil {
		t.Fatalf("DeriveKey legacy: %v", err)
	}

	currentKey, err := vcrypto.DeriveKey([]byte("correct-horse"), salt, vcrypto.CurrentParams)
	if err != nil {
		t.Fatalf("DeriveKey current: %v", err)
	}
	plaintext, err := vcrypto.Decrypt(sealedPrivate, currentKey)
	if err != nil {
		t.Fatalf("Decrypt with current key: %v", err)
	}

	legacySealed, err := vcrypto.Encrypt(plaintext, legacyKey)
	if err != nil {
		t.Fatalf("Encrypt under legacy key: %v", err)
	}
	if err := artifact.WriteFileAtomic(s.privateKeyPath(), legacySealed, 0600); err != nil {
		t.Fatalf("rewrite sealed private key: %v", err)
	}

	_, upgrade, err := s.Unlock([]byte("correct-horse"))
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if !upgrade {
		t.Fatal("expected upgradeRecommended after falling back to legacy parameters")
	}
}

func TestStore_Config(t *testing.T) {
	s := newStore(t)
	if err := s.Initialize([]byte("correct-horse"), "laptop"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	cfg, err := s.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.DeviceLabel != "laptop" {
		t.Fatalf("got device label %q, want laptop", cfg.DeviceLabel)
	}
	if cfg.Fingerprint == "" {
		t.Fatal("expected non-empty fingerprint")
	}

	fp, err := s.FingerprintOf()
	if err != nil {
		t.Fatalf("FingerprintOf: %v", err)
	}
	if fp != cfg.Fingerprint {
		t.Fatalf("FingerprintOf() = %q, Config().Fingerprint = %q", fp, cfg.Fingerprint)
	}
}

func TestStore_FilePermissions(t *testing.T) {
	s := newStore(t)
	if err := s.Initialize([]byte("correct-horse"), "laptop"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	for _, path := range []string{s.configPath(), s.privateKeyPath(), s.publicKeyPath(), s.saltPath()} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat(%s): %v", path, err)
		}
		if info.Mode().Perm() != 0600 {
			t.Fatalf("%s: mode = %v, want 0600", path, info.Mode().Perm())
		}
	}

	dirInfo, err := os.Stat(filepath.Join(s.Root, "identity"))
	if err != nil {
		t.Fatalf("Stat(identity dir): %v", err)
	}
	if dirInfo.Mode().Perm() != 0700 {
		t.Fatalf("identity dir mode = %v, want 0700", dirInfo.Mode().Perm())
	}
}
