// Package doctor implements the integrity checker: it walks the identity
// root and an optional project-local vault, asserting file and directory
// modes, listing the KDF parameter sets an identity may be sealed under, and
// checking that a project's .gitignore excludes plaintext .env files.
package doctor

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vaultenv/vaultenv/internal/artifact"
	vcrypto "github.com/vaultenv/vaultenv/internal/crypto"
)

// maxDirMode and maxFileMode are the loosest permissions doctor accepts
// before flagging an issue: directories at 0700, sensitive files at 0600.
const (
	maxDirMode  = 0700
	maxFileMode = 0600
)

// Issue is one mode, parameter, or configuration problem doctor found.
type Issue struct {
	Path     string
	Message  string
	FixMode  os.FileMode // zero if not auto-fixable
	IsDir    bool
	Fixable  bool
}

// Report is the structured result of Check.
type Report struct {
	Issues      []Issue
	Warnings    []string
	KDFInEffect string
}

// gitignorePatterns are the plaintext-.env patterns a project's
// .gitignore should exclude.
var gitignorePatterns = []string{"*.env", "*.env.*"}

// ignoredExceptions are patterns doctor expects to see re-allowed
// (typically via a leading "!") so encrypted artifacts stay tracked.
var ignoredExceptions = []string{"*.enc", "*.kanuka"}

// Check walks identityRoot and, if projectDir is non-empty, that
// project's .env-vault/ and .gitignore.
func Check(identityRoot, projectDir string) (Report, error) {
	report := Report{}

	if err := checkIdentityRoot(identityRoot, &report); err != nil {
		return report, err
	}

	if projectDir != "" {
		if err := checkProjectVault(projectDir, &report); err != nil {
			return report, err
		}
		if err := checkGitignore(projectDir, &report); err != nil {
			return report, err
		}
	}

	return report, nil
}

func checkIdentityRoot(identityRoot string, report *Report) error {
	exists, err := dirExists(identityRoot)
	if err != nil {
		return err
	}
	if !exists {
		report.Warnings = append(report.Warnings, "identity has not been initialized")
		return nil
	}

	if err := assertMode(identityRoot, true, maxDirMode, report); err != nil {
		return err
	}

	identityDir := filepath.Join(identityRoot, "identity")
	if err := assertMode(identityDir, true, maxDirMode, report); err != nil {
		return err
	}

	sensitiveFiles := []string{
		filepath.Join(identityRoot, "config.json"),
		filepath.Join(identityDir, "private.key"),
		filepath.Join(identityDir, "public.key"),
		filepath.Join(identityDir, "salt"),
	}
	for _, path := range sensitiveFiles {
		if err := assertMode(path, false, maxFileMode, report); err != nil {
			return err
		}
	}

	saltBytes, err := os.ReadFile(filepath.Join(identityDir, "salt"))
	if err == nil && len(saltBytes) == 16 {
		report.KDFInEffect = classifyKDF()
	}

	reposDir := filepath.Join(identityRoot, "repos")
	names, err := artifact.List(identityRoot)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := checkVaultDir(filepath.Join(reposDir, name), report); err != nil {
			return err
		}
	}

	return nil
}

// classifyKDF cannot recover the exact KDF parameters a sealed private
// key was created under without the password, so it reports the
// parameter set names doctor knows about for the operator's awareness
// rather than attempting to unseal anything.
func classifyKDF() string {
	return "current=" + vcrypto.CurrentParams.Name + " legacy=" + vcrypto.LegacyParams.Name
}

func checkProjectVault(projectDir string, report *Report) error {
	vaultDir := filepath.Join(projectDir, ".env-vault")
	exists, err := dirExists(vaultDir)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return checkVaultDir(vaultDir, report)
}

func checkVaultDir(dir string, report *Report) error {
	if err := assertMode(dir, true, maxDirMode, report); err != nil {
		return err
	}
	for _, name := range []string{"secrets.enc", "recipients.json", "meta.json"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := assertMode(path, false, maxFileMode, report); err != nil {
			return err
		}
	}
	return nil
}

func assertMode(path string, isDir bool, max os.FileMode, report *Report) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() != isDir {
		return nil
	}

	perm := info.Mode().Perm()
	if perm&^max != 0 {
		report.Issues = append(report.Issues, Issue{
			Path:    path,
			Message: "permissions too permissive",
			FixMode: max,
			IsDir:   isDir,
			Fixable: true,
		})
	}
	return nil
}

func checkGitignore(projectDir string, report *Report) error {
	path := filepath.Join(projectDir, ".gitignore")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		report.Warnings = append(report.Warnings, "no .gitignore found; plaintext .env files may be committed")
		return nil
	}
	if err != nil {
		return err
	}

	lines := splitLines(string(data))
	for _, pattern := range gitignorePatterns {
		if !containsPattern(lines, pattern) {
			report.Warnings = append(report.Warnings, ".gitignore does not exclude "+pattern)
		}
	}
	for _, exception := range ignoredExceptions {
		if isExcluded(lines, exception) {
			report.Warnings = append(report.Warnings, ".gitignore appears to exclude "+exception+", which would hide encrypted artifacts from version control")
		}
	}

	return nil
}

// containsPattern reports whether one of the .gitignore lines equals
// pattern exactly. Equivalent but differently written rules (for example
// ".env" or "**/*.env") are not recognized.
func containsPattern(lines []string, pattern string) bool {
	for _, line := range lines {
		if line == pattern {
			return true
		}
	}
	return false
}

// isExcluded reports whether a non-negated .gitignore line would match
// the representative exception pattern (e.g. "*.enc" matching a rule
// like "*.enc" without a leading "!").
func isExcluded(lines []string, exceptionPattern string) bool {
	sample := "secrets" + exceptionPattern[1:] // "*.enc" -> "secrets.enc"
	for _, line := range lines {
		if len(line) == 0 || line[0] == '!' || line[0] == '#' {
			continue
		}
		matched, err := doublestar.Match(line, sample)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, trimCR(s[start:i]))
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, trimCR(s[start:]))
	}
	return lines
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}

func dirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
