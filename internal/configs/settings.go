// Package configs computes the on-disk path layout and holds the small
// set of CLI-local preferences that sit outside the spec-mandated vault
// artifacts (identity files, recipients documents, encrypted payloads).
package configs

import (
	"os"
	"path/filepath"
)

// Paths is the resolved directory layout for one host user.
type Paths struct {
	// IdentityRoot is "<identity root>" from the filesystem layout: it
	// holds config.json, identity/, and repos/.
	IdentityRoot string

	// ReposRoot is IdentityRoot/repos, the central backend's parent
	// directory.
	ReposRoot string

	// ConfigDir holds vaultenv's own CLI preferences (config.toml),
	// distinct from the identity's config.json.
	ConfigDir string
}

// DefaultPaths computes the standard layout: $XDG_DATA_HOME/vaultenv (or
// ~/.local/share/vaultenv) for identity material, and the OS user config
// directory for CLI preferences.
func DefaultPaths() (Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, err
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, err
	}

	identityRoot := filepath.Join(dataDir, "vaultenv")
	return Paths{
		IdentityRoot: identityRoot,
		ReposRoot:    filepath.Join(identityRoot, "repos"),
		ConfigDir:    filepath.Join(configDir, "vaultenv"),
	}, nil
}
