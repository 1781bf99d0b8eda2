// Package artifact abstracts the two physical vault layouts — a central,
// per-name root under the identity directory, and a per-project
// ".env-vault/" directory — behind one Backend interface, plus the
// atomic-write and naming helpers both layouts share.
package artifact

import (
	"path/filepath"
	"regexp"
	"strings"

	kerrors "github.com/vaultenv/vaultenv/internal/errors"
)

// Backend is the storage surface a vault.Engine operates against. Every
// method is a plain file read/write; the engine supplies the encryption
// and the canonical encoding.
type Backend interface {
	// Exists reports whether this backend already holds secrets.enc.
	Exists() (bool, error)

	LoadPayload() ([]byte, error)
	SavePayload([]byte) error

	LoadRecipients() ([]byte, error)
	SaveRecipients([]byte) error

	// LoadMeta reports false if meta.json is absent; that is not an error.
	LoadMeta() ([]byte, bool, error)
	SaveMeta([]byte) error

	// Root is the backend's directory, used for locking and display.
	Root() string

	// Name is the vault's display name, used by the audit log.
	Name() string
}

// nameRE is the central-backend naming rule from the filesystem layout:
// one leading alphanumeric, then up to 99 alphanumerics/dot/underscore/
// hyphen.
var nameRE = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,99}$`)

// ValidateName enforces the central-backend naming rule: it must match
// nameRE, must not be "." or "..", must not contain a path separator, and
// must not contain the sequence "..".
func ValidateName(name string) error {
	if name == "." || name == ".." {
		return kerrors.ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) {
		return kerrors.ErrInvalidName
	}
	if strings.Contains(name, "..") {
		return kerrors.ErrInvalidName
	}
	if !nameRE.MatchString(name) {
		return kerrors.ErrInvalidName
	}
	return nil
}

// Resolve returns the Backend for name: "." selects the local backend
// rooted at the current working directory's .env-vault/, anything else is
// validated and selects the central backend at
// <identityRoot>/repos/<name>/.
func Resolve(identityRoot, cwd, name string) (Backend, error) {
	if name == "." {
		return LocalBackend{Dir: filepath.Join(cwd, ".env-vault")}, nil
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return CentralBackend{Dir: filepath.Join(identityRoot, "repos", name), name: name}, nil
}
