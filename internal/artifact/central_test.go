package artifact

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCentralBackend_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "repos", "team-prod")
	b := CentralBackend{Dir: dir, name: "team-prod"}

	exists, err := b.Exists()
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("expected backend to not exist before any save")
	}

	if err := b.SavePayload([]byte("ciphertext")); err != nil {
		t.Fatalf("SavePayload: %v", err)
	}
	if err := b.SaveRecipients([]byte(`{"dekVersion":1}`)); err != nil {
		t.Fatalf("SaveRecipients: %v", err)
	}

	exists, err = b.Exists()
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatal("expected backend to exist after SavePayload")
	}

	payload, err := b.LoadPayload()
	if err != nil {
		t.Fatalf("LoadPayload: %v", err)
	}
	if string(payload) != "ciphertext" {
		t.Fatalf("LoadPayload() = %q", payload)
	}

	_, hasMeta, err := b.LoadMeta()
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if hasMeta {
		t.Fatal("expected no meta.json before SaveMeta")
	}

	if err := b.SaveMeta([]byte(`{}`)); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	_, hasMeta, err = b.LoadMeta()
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if !hasMeta {
		t.Fatal("expected meta.json after SaveMeta")
	}
}

func TestCentralBackend_ModesAndAtomicity(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "repos", "team-prod")
	b := CentralBackend{Dir: dir, name: "team-prod"}

	if err := b.SavePayload([]byte("v1")); err != nil {
		t.Fatalf("SavePayload: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, payloadFile))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}

	dirInfo, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat dir: %v", err)
	}
	if dirInfo.Mode().Perm() != 0700 {
		t.Fatalf("dir mode = %v, want 0700", dirInfo.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != payloadFile {
			t.Fatalf("unexpected leftover file after atomic write: %s", e.Name())
		}
	}

	if err := b.SavePayload([]byte("v2")); err != nil {
		t.Fatalf("SavePayload overwrite: %v", err)
	}
	payload, err := b.LoadPayload()
	if err != nil {
		t.Fatalf("LoadPayload: %v", err)
	}
	if string(payload) != "v2" {
		t.Fatalf("LoadPayload() = %q, want v2", payload)
	}
}
