package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vaultenv/vaultenv/internal/identity"
)

func TestCheck_FlagsLoosePermissions(t *testing.T) {
	root := t.TempDir()
	identityRoot := filepath.Join(root, "identity")

	store := identity.Store{Root: identityRoot}
	if err := store.Initialize([]byte("correct horse battery staple"), "laptop"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	privateKeyPath := filepath.Join(identityRoot, "identity", "private.key")
	if err := os.Chmod(privateKeyPath, 0644); err != nil {
		t.Fatalf("Chmod: %v", err)
	}

	report, err := Check(identityRoot, "")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	found := false
	for _, issue := range report.Issues {
		if issue.Path == privateKeyPath {
			found = true
			if issue.FixMode != 0600 {
				t.Fatalf("FixMode = %v, want 0600", issue.FixMode)
			}
		}
	}
	if !found {
		t.Fatal("expected an issue for the loosened private key mode")
	}
}

func TestCheck_CleanIdentityHasNoIssues(t *testing.T) {
	root := t.TempDir()
	identityRoot := filepath.Join(root, "identity")

	store := identity.Store{Root: identityRoot}
	if err := store.Initialize([]byte("correct horse battery staple"), "laptop"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	report, err := Check(identityRoot, "")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("Issues = %+v, want none", report.Issues)
	}
}

func TestFix_TightensModeAndNeverLoosens(t *testing.T) {
	root := t.TempDir()
	identityRoot := filepath.Join(root, "identity")

	store := identity.Store{Root: identityRoot}
	if err := store.Initialize([]byte("correct horse battery staple"), "laptop"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	privateKeyPath := filepath.Join(identityRoot, "identity", "private.key")
	if err := os.Chmod(privateKeyPath, 0666); err != nil {
		t.Fatalf("Chmod: %v", err)
	}

	report, err := Check(identityRoot, "")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	result, err := Fix(report)
	if err != nil {
		t.Fatalf("Fix: %v", err)
	}
	if len(result.Applied) == 0 {
		t.Fatal("expected at least one fix applied")
	}

	info, err := os.Stat(privateKeyPath)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestCheck_WarnsOnMissingGitignore(t *testing.T) {
	projectDir := t.TempDir()
	report, err := Check(t.TempDir(), projectDir)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	found := false
	for _, w := range report.Warnings {
		if w == "no .gitignore found; plaintext .env files may be committed" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Warnings = %v, want a missing-.gitignore warning", report.Warnings)
	}
}

func TestCheck_AcceptsGoodGitignore(t *testing.T) {
	projectDir := t.TempDir()
	content := "*.env\n*.env.*\n!*.enc\n"
	if err := os.WriteFile(filepath.Join(projectDir, ".gitignore"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	report, err := Check(t.TempDir(), projectDir)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	for _, w := range report.Warnings {
		if w == ".gitignore does not exclude *.env" || w == ".gitignore does not exclude *.env.*" {
			t.Fatalf("unexpected warning: %s", w)
		}
	}
}
